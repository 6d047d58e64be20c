package icon

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales img to size×size with bicubic (Catmull-Rom) interpolation.
func Resize(img image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
