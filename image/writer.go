package image

import (
	"image"
	"image/gif"
	"image/png"
	"io"

	"github.com/xfmoulet/qoi"

	"github.com/retrobus/vgacat/anim"
)

// DefaultDelay is the GIF frame delay matching the display firmware
// cadence, in 100ths of a second.
const DefaultDelay = 10

// EncodeGIF writes the whole animation to w as a looping GIF. A delay of
// zero or less selects DefaultDelay.
func EncodeGIF(w io.Writer, a *anim.Animation, delay int) error {
	if delay <= 0 {
		delay = DefaultDelay
	}

	frames, _ := a.DecodeFrames()

	g := new(gif.GIF)
	for i := range frames {
		g.Image = append(g.Image, frames[i].Image(a.Palette))
		g.Delay = append(g.Delay, delay)
	}

	return gif.EncodeAll(w, g)
}

// EncodePNG writes one frame of the animation to w as a PNG.
func EncodePNG(w io.Writer, a *anim.Animation, frame int) error {
	m, err := frameImage(a, frame)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}

// EncodeQOI writes one frame of the animation to w as a QOI image.
func EncodeQOI(w io.Writer, a *anim.Animation, frame int) error {
	m, err := frameImage(a, frame)
	if err != nil {
		return err
	}
	return qoi.Encode(w, m)
}

func frameImage(a *anim.Animation, frame int) (*image.Paletted, error) {
	if frame < 0 || frame >= anim.FrameCount {
		return nil, errBadFrame
	}
	frames, _ := a.DecodeFrames()
	return frames[frame].Image(a.Palette), nil
}
