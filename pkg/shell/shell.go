// Package shell binds the platform shell: icon extraction, the script host
// shortcut object, message boxes, the cursor and keyboard state.
package shell

import (
	"image"

	"github.com/manifold/shortcuttray/pkg/icon"
)

// Key is a modifier that can request an elevated launch.
type Key int

const (
	KeyShift Key = iota
	KeyCtrl
)

func (k Key) String() string {
	if k == KeyCtrl {
		return "ctrl"
	}
	return "shift"
}

// ParseKey maps a flag value to a Key. Unknown names fall back to shift.
func ParseKey(s string) (Key, bool) {
	switch s {
	case "shift", "":
		return KeyShift, true
	case "ctrl", "control":
		return KeyCtrl, true
	}
	return KeyShift, false
}

// Extractor implements icon.Extractor against the platform shell.
type Extractor struct{}

var _ icon.Extractor = Extractor{}

// ScriptHost implements icon.LinkReader through the Windows Script Host
// shortcut object.
type ScriptHost struct{}

var _ icon.LinkReader = ScriptHost{}

// Dialogs shows blocking notices.
type Dialogs struct {
	Title string
}

func (d Dialogs) Notify(title, message string) {
	if title == "" {
		title = d.Title
	}
	MessageBox(title, message)
}

// Cursor returns the current pointer position.
func Cursor() image.Point {
	return CursorPos()
}
