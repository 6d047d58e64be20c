//go:build !windows

package launcher

func runElevated(string) error {
	return ErrElevationUnsupported
}
