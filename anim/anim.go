/*
Package anim implements the compressed animation format played by the VGA1
display controller.

An animation is twelve 64 by 64 frames of 4-bit color indices sharing one
16 entry palette. Each frame is run-length encoded as a stream of one-byte
opcodes; frame 0 paints onto a blank canvas while frames 1 through 11 patch
a copy of the previous frame. The twelve opcode segments are joined with
0xff markers and the whole stream is packed with a canonical prefix code
(see the huffman package). This package reverses both stages. Building the
code table or the bitstream is the job of offline tooling and is out of
scope here.
*/
package anim

import "github.com/retrobus/vgacat/huffman"

const (
	// FrameCount is fixed by the format; payloads always describe twelve
	// frames even when some segments are empty.
	FrameCount = 12

	// FrameWidth and FrameHeight are fixed by the display controller.
	FrameWidth  = 64
	FrameHeight = 64

	// FrameSize is the number of pixels, and bytes, in an unpacked frame.
	FrameSize = FrameWidth * FrameHeight

	// MaxOpcodes bounds an expanded opcode stream.
	MaxOpcodes = 8192

	// Terminator ends one frame's opcode segment. The prefix decoder also
	// emits it in place of anything it cannot decode.
	Terminator = 0xff
)

// Animation is one playable bundle: the palette, the prefix-code table,
// the packed payload and its exact length in bits.
type Animation struct {
	Palette Palette
	Codes   []huffman.Code
	BitLen  int
	Payload []byte
}
