//go:build !windows

package shell

import (
	"fmt"
	"image"
	"os"

	"github.com/manifold/shortcuttray/pkg/icon"
)

func MessageBox(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}

func CursorPos() image.Point {
	return image.Point{}
}

func ModifierDown(Key) bool {
	return false
}

func ScreenSize() image.Point {
	return image.Point{}
}

func (Extractor) ExtractSmall(string, int) (image.Image, error) {
	return nil, icon.ErrUnsupported
}

func (Extractor) FileIcon(string) (image.Image, error) {
	return nil, icon.ErrUnsupported
}

func (Extractor) AssociatedIcon(string) (image.Image, error) {
	return nil, icon.ErrUnsupported
}

func (ScriptHost) ReadLink(string) (icon.Link, error) {
	return icon.Link{}, icon.ErrUnsupported
}
