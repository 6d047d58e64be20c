// Package menu turns a folder of shortcuts into a tree of menu entries and
// fingerprints that folder so an unchanged tree can be reused.
package menu

import (
	"fmt"
	"image"
)

type Kind int

const (
	KindShortcut Kind = iota
	KindFolder
	KindOpenFolder
	KindExit
	KindSeparator
	KindSettings
)

var kindNames = [...]string{
	KindShortcut:   "shortcut",
	KindFolder:     "folder",
	KindOpenFolder: "open-folder",
	KindExit:       "exit",
	KindSeparator:  "separator",
	KindSettings:   "settings",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Launchable reports whether activating an entry of this kind starts a
// process.
func (k Kind) Launchable() bool {
	return k == KindShortcut || k == KindOpenFolder
}

// Entry is one node of the menu. Folders carry Children, launchable entries
// carry Target. Icon is nil when no icon could be resolved.
type Entry struct {
	Label    string
	Icon     image.Image
	Kind     Kind
	Target   string
	Checked  bool
	Children []*Entry
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %q", e.Kind, e.Label)
}

// Walk calls fn for every entry depth-first, passing its nesting depth.
// Returning false from fn skips that entry's children.
func Walk(entries []*Entry, fn func(e *Entry, depth int) bool) {
	walk(entries, 0, fn)
}

func walk(entries []*Entry, depth int, fn func(*Entry, int) bool) {
	for _, e := range entries {
		if fn(e, depth) && len(e.Children) > 0 {
			walk(e.Children, depth+1, fn)
		}
	}
}

// Count returns the number of entries in the tree, folders included.
func Count(entries []*Entry) int {
	n := 0
	Walk(entries, func(*Entry, int) bool {
		n++
		return true
	})
	return n
}
