/*
Package crc32 implements the 32-bit cyclic redundancy check, or CRC-32,
checksum used by VGA1 animation bundles.

It uses the standard CRC-32 polynomial in normal (unreflected) form with an
all-ones initial value and no final inversion, the same parameters MPEG-2
sections use.
*/
package crc32

import (
	"hash"
	crc "hash/crc32"
)

func makeTable(poly uint32) *crc.Table {
	t := new(crc.Table)
	for i := 0; i < 256; i++ {
		crc := uint32(i << 24)
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

const (
	polynomial = 0x04c11db7
	initial    = 0xffffffff
)

var table = makeTable(polynomial)

type digest struct {
	crc uint32
	tab *crc.Table
}

// New creates a new hash.Hash32 computing the CRC-32 checksum. Its Sum
// method will lay the value out in big-endian byte order.
func New() hash.Hash32 {
	return &digest{initial, table}
}

func (d *digest) Size() int { return crc.Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.crc = initial }

func update(crc uint32, tab *crc.Table, p []byte) uint32 {
	for i := range p {
		crc = crc<<8 ^ tab[byte(crc>>24)^p[i]]
	}
	return crc
}

// Update returns the result of adding the bytes in p to the crc.
func Update(crc uint32, p []byte) uint32 {
	return update(crc, table, p)
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.crc = update(d.crc, d.tab, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.crc }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Checksum returns the CRC-32 checksum of data.
func Checksum(data []byte) uint32 { return Update(initial, data) }
