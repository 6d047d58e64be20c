//go:build windows

package shell

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/manifold/shortcuttray/pkg/icon"
)

const sFalse = 1

// ReadLink opens path with WScript.Shell.CreateShortcut and reads its
// TargetPath and IconLocation.
func (ScriptHost) ReadLink(path string) (icon.Link, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			return icon.Link{}, fmt.Errorf("CoInitializeEx: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return icon.Link{}, fmt.Errorf("CreateObject(WScript.Shell): %w", err)
	}
	defer unknown.Release()

	wsh, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return icon.Link{}, fmt.Errorf("QueryInterface: %w", err)
	}
	defer wsh.Release()

	v, err := oleutil.CallMethod(wsh, "CreateShortcut", path)
	if err != nil {
		return icon.Link{}, fmt.Errorf("CreateShortcut %s: %w", path, err)
	}
	sc := v.ToIDispatch()
	defer sc.Release()

	target, err := oleutil.GetProperty(sc, "TargetPath")
	if err != nil {
		return icon.Link{}, fmt.Errorf("TargetPath: %w", err)
	}
	link := icon.Link{Target: target.ToString()}
	target.Clear()

	if loc, err := oleutil.GetProperty(sc, "IconLocation"); err == nil {
		link.IconLocation, link.IconIndex = icon.ParseLocation(loc.ToString())
		loc.Clear()
	}
	return link, nil
}
