//go:build windows

package launcher

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// runElevated asks the shell to open target with the "runas" verb, which
// raises the elevation prompt.
func runElevated(target string) error {
	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return err
	}
	dir, err := windows.UTF16PtrFromString(filepath.Dir(target))
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(0, verb, file, nil, dir, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("ShellExecute runas: %w", err)
	}
	return nil
}
