//go:build windows

package shell

import (
	"image"
	"syscall"

	"github.com/lxn/win"
)

// MessageBox shows a modal message box and returns once it is dismissed.
func MessageBox(title, message string) {
	t, _ := syscall.UTF16PtrFromString(title)
	m, _ := syscall.UTF16PtrFromString(message)
	win.MessageBox(0, m, t, win.MB_OK|win.MB_ICONINFORMATION|win.MB_TOPMOST|win.MB_SETFOREGROUND)
}

func CursorPos() image.Point {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return image.Point{}
	}
	return image.Pt(int(pt.X), int(pt.Y))
}

// ModifierDown reports whether k is currently held.
func ModifierDown(k Key) bool {
	vk := int32(win.VK_SHIFT)
	if k == KeyCtrl {
		vk = int32(win.VK_CONTROL)
	}
	return win.GetKeyState(vk) < 0
}

// ScreenSize returns the primary display resolution.
func ScreenSize() image.Point {
	return image.Pt(int(win.GetSystemMetrics(win.SM_CXSCREEN)), int(win.GetSystemMetrics(win.SM_CYSCREEN)))
}
