package icon

import (
	"image"
	"image/color"
)

var (
	folderColor = color.NRGBA{R: 240, G: 196, B: 70, A: 255}
	folderTab   = color.NRGBA{R: 214, G: 160, B: 40, A: 255}
	exitColor   = color.NRGBA{R: 211, G: 47, B: 47, A: 255}
	appColor    = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	arrowColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Folder draws the shared folder icon used where the shell has none.
func Folder() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	fill(img, image.Rect(1, 3, 7, 5), folderTab)
	fill(img, image.Rect(1, 5, 15, 14), folderColor)
	return img
}

// Exit draws a cross.
func Exit() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	for i := 3; i < Size-3; i++ {
		for w := 0; w < 2; w++ {
			img.Set(i+w, i, exitColor)
			img.Set(Size-1-i-w, i, exitColor)
		}
	}
	return img
}

// App draws the notification-area icon: a rounded tile with a shortcut arrow.
func App(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := size / 8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inRoundedRect(x, y, size, r) {
				img.Set(x, y, appColor)
			}
		}
	}
	// arrow shaft and head, pointing up-right
	u := size / 8
	for i := 2 * u; i < size-2*u; i++ {
		for w := 0; w < u; w++ {
			img.Set(i, size-1-i+w, arrowColor)
		}
	}
	fill(img, image.Rect(size/2, 2*u, size-2*u, 3*u), arrowColor)
	fill(img, image.Rect(size-3*u, 2*u, size-2*u, size/2), arrowColor)
	return img
}

// Stock returns the small icon at location/index from the shell, falling
// back to fallback when the platform cannot provide it.
func Stock(ex Extractor, location string, index int, fallback image.Image) image.Image {
	if ex == nil {
		return fallback
	}
	img, err := ex.ExtractSmall(ExpandEnv(location), index)
	if err != nil || img == nil {
		return fallback
	}
	if !isSize(img, Size) {
		return Resize(img, Size)
	}
	return img
}

func fill(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func inRoundedRect(x, y, size, r int) bool {
	cx, cy := x, y
	switch {
	case x < r:
		cx = r
	case x >= size-r:
		cx = size - r - 1
	}
	switch {
	case y < r:
		cy = r
	case y >= size-r:
		cy = size - r - 1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
