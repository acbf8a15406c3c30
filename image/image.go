/*
Package image bridges animation bundles and the standard library image
formats.

Decode and DecodeConfig read a serialized bundle and expose its first
frame; the package registers the "anm" format so bundles show up in
anything that uses image.Decode. The encoders go the other way: a whole
animation becomes a looping GIF, and single frames become PNG or QOI
stills.
*/
package image

import (
	"errors"
	"io"
)

var (
	errNotEnough = errors.New("anm: not enough image data")
	errBadHeader = errors.New("anm: malformed bundle header")
	errBadFrame  = errors.New("anm: no such frame")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
