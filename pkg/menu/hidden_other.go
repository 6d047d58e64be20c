//go:build !windows

package menu

import "os"

func hiddenAttr(os.FileInfo) bool {
	return false
}
