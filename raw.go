package vgacat

import (
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/retrobus/vgacat/anim"
)

var errRawSize = errors.New("vgacat: raw stream is not a whole number of frames")

// WriteRaw writes frames to w as a zstd stream of packed pixels, two per
// byte, for piping into tools that want the raw video.
func WriteRaw(w io.Writer, frames []anim.Frame) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	for i := range frames {
		if _, err := zw.Write(frames[i].Pack()); err != nil {
			zw.Close()
			return err
		}
	}

	return zw.Close()
}

// ReadRaw is the inverse of WriteRaw.
func ReadRaw(r io.Reader) ([]anim.Frame, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	if len(b)%anim.PackedFrameSize != 0 {
		return nil, errRawSize
	}

	frames := make([]anim.Frame, 0, len(b)/anim.PackedFrameSize)
	for off := 0; off < len(b); off += anim.PackedFrameSize {
		f, err := anim.UnpackFrame(b[off : off+anim.PackedFrameSize])
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	return frames, nil
}
