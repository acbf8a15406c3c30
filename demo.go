package vgacat

import (
	"github.com/retrobus/vgacat/anim"
	"github.com/retrobus/vgacat/huffman"
)

// The built-in demo animation: sixteen four-row color bands scrolling
// through the six rainbow palette entries, one step per frame.

var demoPalette = anim.Palette{
	0x01, 0x3f, 0x00, 0x3e, 0x3b, 0x36, 0x30, 0x38, 0x3c, 0x0c, 0x0b, 0x17, 0x2a, 0x3a,
}

// Canonical code table for the demo payload. The six set-color opcodes
// and the wide delta repeat get four bits each; the wide baseline repeat
// and the terminator get eight.
var demoCodes = []huffman.Code{
	{Opcode: 0x06, Len: 4, Bits: 0x0},
	{Opcode: 0x07, Len: 4, Bits: 0x1},
	{Opcode: 0x08, Len: 4, Bits: 0x2},
	{Opcode: 0x09, Len: 4, Bits: 0x3},
	{Opcode: 0x0a, Len: 4, Bits: 0x4},
	{Opcode: 0x0b, Len: 4, Bits: 0x5},
	{Opcode: 0x4f, Len: 4, Bits: 0x6},
	{Opcode: 0x3f, Len: 8, Bits: 0x70},
	{Opcode: 0xff, Len: 8, Bits: 0x71},
}

const demoBitLen = 1696

var demoPayload = []byte{
	// Frame 0 paints the sixteen bands from scratch
	0x07, 0x01, 0x70, 0x27, 0x03, 0x70, 0x47, 0x05, 0x70,
	0x07, 0x01, 0x70, 0x27, 0x03, 0x70, 0x47, 0x05, 0x70,
	0x07, 0x01, 0x70, 0x27, 0x03, 0x70, 0x71,
	// Every later frame repaints each band one color further along
	0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x71,
	0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x71,
	0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x71,
	0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x71,
	0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x71,
	0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x71,
	0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x71,
	0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x71,
	0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x71,
	0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x71,
	0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x36, 0x46, 0x56, 0x06, 0x16, 0x26, 0x71,
}

// Demo returns the built-in animation. The result owns copies of the
// canned table and payload, so callers may modify it freely.
func Demo() *anim.Animation {
	return &anim.Animation{
		Palette: demoPalette,
		Codes:   append([]huffman.Code(nil), demoCodes...),
		BitLen:  demoBitLen,
		Payload: append([]byte(nil), demoPayload...),
	}
}
