//go:build windows

package shell

import (
	"fmt"
	"image"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/manifold/shortcuttray/pkg/icon"
)

var (
	shell32                    = windows.NewLazySystemDLL("shell32.dll")
	procExtractIconExW         = shell32.NewProc("ExtractIconExW")
	procExtractAssociatedIconW = shell32.NewProc("ExtractAssociatedIconW")
)

func (Extractor) ExtractSmall(location string, index int) (image.Image, error) {
	p, err := syscall.UTF16PtrFromString(location)
	if err != nil {
		return nil, err
	}
	var small win.HICON
	n, _, callErr := procExtractIconExW.Call(
		uintptr(unsafe.Pointer(p)),
		uintptr(index),
		0,
		uintptr(unsafe.Pointer(&small)),
		1,
	)
	if n == 0 || small == 0 {
		return nil, fmt.Errorf("ExtractIconEx %s,%d: %w", location, index, errnoOr(callErr, icon.ErrNoIcon))
	}
	return fromHICON(small)
}

func (Extractor) FileIcon(path string) (image.Image, error) {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	var fi win.SHFILEINFO
	if win.SHGetFileInfo(p, 0, &fi, uint32(unsafe.Sizeof(fi)), win.SHGFI_ICON|win.SHGFI_SMALLICON) == 0 || fi.HIcon == 0 {
		return nil, fmt.Errorf("SHGetFileInfo %s: %w", path, icon.ErrNoIcon)
	}
	return fromHICON(fi.HIcon)
}

func (Extractor) AssociatedIcon(path string) (image.Image, error) {
	var buf [windows.MAX_PATH]uint16
	src, err := syscall.UTF16FromString(path)
	if err != nil {
		return nil, err
	}
	if len(src) > len(buf) {
		return nil, fmt.Errorf("path too long: %s", path)
	}
	copy(buf[:], src)
	var index uint16
	h, _, callErr := procExtractAssociatedIconW.Call(
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&index)),
	)
	if h == 0 {
		return nil, fmt.Errorf("ExtractAssociatedIcon %s: %w", path, errnoOr(callErr, icon.ErrNoIcon))
	}
	return fromHICON(win.HICON(h))
}

// fromHICON copies an icon into an RGBA image and destroys the handle.
func fromHICON(h win.HICON) (image.Image, error) {
	defer win.DestroyIcon(h)

	var ii win.ICONINFO
	if !win.GetIconInfo(h, &ii) {
		return nil, fmt.Errorf("GetIconInfo: %w", icon.ErrNoIcon)
	}
	defer win.DeleteObject(win.HGDIOBJ(ii.HbmMask))
	if ii.HbmColor == 0 {
		return nil, fmt.Errorf("monochrome icon: %w", icon.ErrNoIcon)
	}
	defer win.DeleteObject(win.HGDIOBJ(ii.HbmColor))

	var bm win.BITMAP
	if win.GetObject(win.HGDIOBJ(ii.HbmColor), unsafe.Sizeof(bm), unsafe.Pointer(&bm)) == 0 {
		return nil, fmt.Errorf("GetObject: %w", icon.ErrNoIcon)
	}
	w, h32 := int(bm.BmWidth), int(bm.BmHeight)

	hdc := win.GetDC(0)
	defer win.ReleaseDC(0, hdc)

	color, err := dibits(hdc, ii.HbmColor, w, h32)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h32))
	hasAlpha := false
	for i := 0; i < w*h32; i++ {
		b, g, r, a := color[i*4], color[i*4+1], color[i*4+2], color[i*4+3]
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = r, g, b, a
		if a != 0 {
			hasAlpha = true
		}
	}
	if !hasAlpha {
		mask, err := dibits(hdc, ii.HbmMask, w, h32)
		if err != nil {
			return nil, err
		}
		for i := 0; i < w*h32; i++ {
			// black mask pixels are opaque
			if mask[i*4] == 0 {
				img.Pix[i*4+3] = 0xff
			}
		}
	}
	return img, nil
}

func dibits(hdc win.HDC, bmp win.HBITMAP, w, h int) ([]byte, error) {
	var bi win.BITMAPINFO
	bi.BmiHeader.BiSize = uint32(unsafe.Sizeof(bi.BmiHeader))
	bi.BmiHeader.BiWidth = int32(w)
	bi.BmiHeader.BiHeight = -int32(h)
	bi.BmiHeader.BiPlanes = 1
	bi.BmiHeader.BiBitCount = 32
	bi.BmiHeader.BiCompression = win.BI_RGB

	buf := make([]byte, w*h*4)
	if win.GetDIBits(hdc, bmp, 0, uint32(h), &buf[0], &bi, win.DIB_RGB_COLORS) == 0 {
		return nil, fmt.Errorf("GetDIBits: %w", icon.ErrNoIcon)
	}
	return buf, nil
}

func errnoOr(err error, fallback error) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return errno
	}
	return fallback
}
