package image

import (
	"image"
	"io"

	"github.com/retrobus/vgacat/anim"
)

func init() {
	image.RegisterFormat("anm", anim.Magic, Decode, DecodeConfig)
}

// configBytes covers the bundle header up to and including the palette.
const configBytes = 24

// Decode reads an animation bundle from r and returns its first frame as
// an image.
func Decode(r io.Reader) (image.Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	a := new(anim.Animation)
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	frames, _ := a.DecodeFrames()
	return frames[0].Image(a.Palette), nil
}

// DecodeConfig returns the color model and dimensions of a bundled
// animation after reading no more than its header.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var header [configBytes]byte
	if err := readFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return image.Config{}, errNotEnough
		}
		return image.Config{}, err
	}

	if string(header[0:4]) != anim.Magic ||
		header[4] != anim.FrameCount ||
		header[5] != anim.FrameWidth || header[6] != anim.FrameHeight {
		return image.Config{}, errBadHeader
	}

	// The palette sits right behind the geometry
	var palette anim.Palette
	copy(palette[:], header[8:24])

	return image.Config{
		ColorModel: palette.ColorPalette(),
		Width:      anim.FrameWidth,
		Height:     anim.FrameHeight,
	}, nil
}
