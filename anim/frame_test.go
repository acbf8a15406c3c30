package anim

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	var f Frame
	for i := range f {
		f[i] = uint8(i) & 0x0f
	}

	b := f.Pack()
	require.Len(t, b, PackedFrameSize)
	assert.Equal(t, byte(0x01), b[0], "first pixel lands in the upper nibble")
	assert.Equal(t, byte(0x23), b[1])

	got, err := UnpackFrame(b)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestUnpackFrameRejectsBadLength(t *testing.T) {
	t.Parallel()

	_, err := UnpackFrame(make([]byte, 100))
	assert.ErrorIs(t, err, errPackedSize)
}

func TestFrameImage(t *testing.T) {
	t.Parallel()

	p := Palette{0x01, 0x3f, 0x30}

	var f Frame
	f[0] = 1
	f[65] = 2
	f[FrameSize-1] = 0xf2 // only the low nibble matters

	img := f.Image(p)
	assert.Equal(t, image.Rect(0, 0, FrameWidth, FrameHeight), img.Bounds())
	assert.Equal(t, uint8(1), img.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(2), img.ColorIndexAt(1, 1))
	assert.Equal(t, uint8(2), img.ColorIndexAt(FrameWidth-1, FrameHeight-1))
}

func TestPaletteColor(t *testing.T) {
	t.Parallel()

	p := Palette{0x01, 0x3f, 0x30, 0x0c, 0x03, 0x2a}

	tests := []struct {
		index int
		want  color.RGBA
	}{
		{0, color.RGBA{0x00, 0x00, 0x55, 0xff}}, // dim blue
		{1, color.RGBA{0xff, 0xff, 0xff, 0xff}}, // white
		{2, color.RGBA{0xff, 0x00, 0x00, 0xff}}, // red
		{3, color.RGBA{0x00, 0xff, 0x00, 0xff}}, // green
		{4, color.RGBA{0x00, 0x00, 0xff, 0xff}}, // blue
		{5, color.RGBA{0xaa, 0xaa, 0xaa, 0xff}}, // gray
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Color(tt.index), "entry %d", tt.index)
	}

	cp := p.ColorPalette()
	require.Len(t, cp, 16)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, cp[1])
}
