package anim

import (
	"errors"
	"image"
	"image/color"
)

// Frame is one 64 by 64 plane of color indices, row major. Only the low
// nibble of each element is significant.
type Frame [FrameSize]uint8

// PackedFrameSize is the size of a frame packed two pixels per byte.
const PackedFrameSize = FrameSize / 2

var errPackedSize = errors.New("anim: packed frame must be 2048 bytes")

// Pack returns the frame packed two pixels per byte, first pixel in the
// upper nibble.
func (f *Frame) Pack() []byte {
	b := make([]byte, PackedFrameSize)
	for i := range b {
		b[i] = f[i*2]&0x0f<<4 | f[i*2+1]&0x0f
	}
	return b
}

// UnpackFrame is the inverse of Pack.
func UnpackFrame(b []byte) (Frame, error) {
	var f Frame
	if len(b) != PackedFrameSize {
		return f, errPackedSize
	}
	for i, v := range b {
		f[i*2] = v >> 4
		f[i*2+1] = v & 0x0f
	}
	return f, nil
}

// Image returns the frame as a paletted image using p's colors.
func (f *Frame) Image(p Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, FrameWidth, FrameHeight), p.ColorPalette())
	for i := range f {
		img.Pix[i] = f[i] & 0x0f
	}
	return img
}

// Palette holds the device's 16 palette slots. Each entry is a 6-bit RGB
// value, two bits per channel: bits 5-4 red, 3-2 green, 1-0 blue.
type Palette [16]uint8

// Color expands entry i to an 8-bit color.
func (p Palette) Color(i int) color.RGBA {
	c := p[i&0x0f]
	return color.RGBA{
		R: (c >> 4 & 0x3) * 0x55,
		G: (c >> 2 & 0x3) * 0x55,
		B: (c & 0x3) * 0x55,
		A: 0xff,
	}
}

// ColorPalette returns all 16 entries as a standard library palette.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i := range p {
		cp[i] = p.Color(i)
	}
	return cp
}
