/*
Package index implements the small preview index written to each
directory of animation bundles, so player firmware can browse the
directory without decoding any bitstreams.

The index maps payload checksums to packed first-frame previews: 1024
little-endian CRC slots padded with 0xff, 1024 uint16 preview indices
padded the same way, then the packed previews themselves.
*/
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/retrobus/vgacat/anim"
)

const (
	// Filename is the expected filename used when writing to disk
	Filename   = "anims.idx"
	maxEntries = 1024

	// PreviewSize is the size in bytes of each packed preview frame
	PreviewSize = anim.PackedFrameSize
)

var errPreviewSize = errors.New("index: incorrect preview length")

// DB is the preview index object. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type DB struct {
	checksums map[uint32]uint16
	previews  [][]byte
}

// New returns an empty index
func New() *DB {
	return &DB{
		checksums: make(map[uint32]uint16),
	}
}

// Length returns the number of checksums in the index
func (db *DB) Length() int {
	return len(db.checksums)
}

// Set stores a copy of the provided preview for the given CRC. Storing
// the same CRC twice keeps the first preview.
func (db *DB) Set(crc uint32, preview []byte) error {
	if len(preview) != PreviewSize {
		return errPreviewSize
	}
	if _, ok := db.checksums[crc]; !ok {
		db.previews = append(db.previews, bytes.Clone(preview))
		db.checksums[crc] = uint16(len(db.previews) - 1)
	}
	return nil
}

// Preview returns the packed preview stored for crc, or nil if the CRC
// is not in the index
func (db *DB) Preview(crc uint32) []byte {
	i, ok := db.checksums[crc]
	if !ok {
		return nil
	}
	return db.previews[i]
}

// MarshalBinary encodes the index into binary form and returns the result
func (db *DB) MarshalBinary() ([]byte, error) {
	length := len(db.checksums)

	if length > maxEntries {
		return nil, fmt.Errorf("more than %d entries", maxEntries)
	}

	keys := make([]uint32, 0, len(db.checksums))
	for k := range db.checksums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	b := new(bytes.Buffer)

	// Write out CRC values
	if err := binary.Write(b, binary.LittleEndian, &keys); err != nil {
		return nil, err
	}
	// Pad to 4096 with 0xff's
	if _, err := b.Write(bytes.Repeat([]byte{0xff, 0xff, 0xff, 0xff}, maxEntries-length)); err != nil {
		return nil, err
	}

	// Write out preview indices
	for _, k := range keys {
		v := db.checksums[k]
		if err := binary.Write(b, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
	}
	// Pad to 6144 with 0xff's
	if _, err := b.Write(bytes.Repeat([]byte{0xff, 0xff}, maxEntries-length)); err != nil {
		return nil, err
	}

	// Write out previews
	for _, s := range db.previews {
		if _, err := b.Write(s); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the index from binary form
func (db *DB) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	db.checksums = make(map[uint32]uint16)
	db.previews = nil

	var keys []uint32
	for i := 0; i < maxEntries; i++ {
		var crc uint32
		if err := binary.Read(r, binary.LittleEndian, &crc); err != nil {
			return err
		}
		if crc != 0xffffffff {
			keys = append(keys, crc)
		}
	}

	var maxOffset int
	for i := 0; i < maxEntries; i++ {
		var offset uint16
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return err
		}
		if offset != 0xffff && i < len(keys) {
			db.checksums[keys[i]] = offset
			if int(offset) > maxOffset {
				maxOffset = int(offset)
			}
		}
	}

	if len(db.checksums) == 0 {
		return nil
	}

	for i := 0; i <= maxOffset; i++ {
		var preview [PreviewSize]byte
		if n, err := r.Read(preview[:]); n != PreviewSize || (err != nil && err != io.EOF) {
			return errors.New("insufficient data")
		}
		db.previews = append(db.previews, preview[:])
	}

	return nil
}
