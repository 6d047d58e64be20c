// Package icon resolves the small menu icon shown next to each shortcut.
//
// Resolution runs an ordered chain of strategies, first success wins. Every
// icon the chain hands out is exactly Size×Size pixels; candidates of another
// size are discarded by the early strategies and resized by the last ones.
package icon

import (
	"errors"
	"image"
)

// Size is the edge length, in pixels, of every menu icon.
const Size = 16

var (
	ErrUnsupported = errors.New("icon extraction is not supported on this platform")
	ErrNoIcon      = errors.New("no icon")
	ErrWrongSize   = errors.New("icon has wrong dimensions")
	ErrNoTarget    = errors.New("shortcut target could not be resolved")
)

// Outcome is the result of resolving one path. A zero Outcome means
// "no icon".
type Outcome struct {
	Image    image.Image
	Strategy string
}

// None is the "no icon" outcome.
var None = Outcome{}

func (o Outcome) OK() bool {
	return o.Image != nil
}

// Link is what a shortcut reader reports about a link file.
type Link struct {
	Target       string
	IconLocation string
	IconIndex    int
}

// LinkReader reads a shortcut file.
type LinkReader interface {
	ReadLink(path string) (Link, error)
}

// Extractor pulls icons out of the platform shell.
type Extractor interface {
	// ExtractSmall returns the small icon at index inside location, which is
	// an executable, library or icon file.
	ExtractSmall(location string, index int) (image.Image, error)
	// FileIcon returns the small icon the shell shows for path's file type.
	FileIcon(path string) (image.Image, error)
	// AssociatedIcon returns the icon of the program that opens path, at
	// whatever size the platform hands out.
	AssociatedIcon(path string) (image.Image, error)
}

func isSize(img image.Image, size int) bool {
	b := img.Bounds()
	return b.Dx() == size && b.Dy() == size
}
