package icon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
)

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeICO encodes img as a single-image ICO with an embedded PNG, the
// format the Windows tray loads menu bitmaps from.
func EncodeICO(img image.Image) ([]byte, error) {
	pngData, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return wrapPNGInICO(pngData, img.Bounds().Dx(), img.Bounds().Dy()), nil
}

func wrapPNGInICO(pngData []byte, w, h int) []byte {
	const headerSize = 6
	const entrySize = 16

	// 0 means 256 or larger
	bw, bh := byte(w), byte(h)
	if w >= 256 {
		bw = 0
	}
	if h >= 256 {
		bh = 0
	}

	buf := make([]byte, headerSize+entrySize+len(pngData))

	// ICONDIR
	binary.LittleEndian.PutUint16(buf[0:], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: icon
	binary.LittleEndian.PutUint16(buf[4:], 1) // count

	// ICONDIRENTRY
	off := headerSize
	buf[off+0] = bw
	buf[off+1] = bh
	buf[off+2] = 0 // truecolor
	buf[off+3] = 0
	binary.LittleEndian.PutUint16(buf[off+4:], 1)
	binary.LittleEndian.PutUint16(buf[off+6:], 32)
	binary.LittleEndian.PutUint32(buf[off+8:], uint32(len(pngData)))
	binary.LittleEndian.PutUint32(buf[off+12:], headerSize+entrySize)

	copy(buf[headerSize+entrySize:], pngData)
	return buf
}
