/*
Package huffman decodes the canonical prefix code that VGA1 animation
payloads are packed with.

The code table is built offline and shipped alongside the payload, one
entry per opcode with the codeword value and its length in bits. Decoding
shifts bits in one at a time and returns the opcode of the first entry
whose length and value match exactly; because the table describes a prefix
code, at most one entry can ever match. The table is trusted as supplied
and is not validated.
*/
package huffman

import "errors"

// MaxCodeLen is the longest codeword, in bits, the decoder will consider.
const MaxCodeLen = 16

// ErrNoCode is returned by Decode when no codeword matches within
// MaxCodeLen bits.
var ErrNoCode = errors.New("huffman: no matching code")

// Code is one prefix-table entry. Bits holds the codeword value in its Len
// least significant bits.
type Code struct {
	Opcode uint8
	Len    uint8
	Bits   uint16
}

// Table is an immutable prefix-code table.
type Table struct {
	codes []Code
	index map[uint32]uint8
}

// NewTable builds a lookup table from codes. Entries with a zero length or
// longer than MaxCodeLen can never match and are dropped.
func NewTable(codes []Code) *Table {
	t := &Table{
		codes: append([]Code(nil), codes...),
		index: make(map[uint32]uint8, len(codes)),
	}
	for _, c := range t.codes {
		if c.Len == 0 || c.Len > MaxCodeLen {
			continue
		}
		t.index[codeKey(c.Len, c.Bits)] = c.Opcode
	}
	return t
}

func codeKey(length uint8, bits uint16) uint32 {
	return uint32(length)<<16 | uint32(bits)
}

// Len returns the number of usable entries in the table.
func (t *Table) Len() int {
	return len(t.index)
}

// Decode reads bits from br until a codeword matches and returns its
// opcode. After MaxCodeLen bits without a match it gives up and returns
// ErrNoCode; the bits are consumed either way.
func (t *Table) Decode(br *BitReader) (uint8, error) {
	var code uint16
	for n := uint8(1); n <= MaxCodeLen; n++ {
		code = code<<1 | uint16(br.ReadBit())
		if op, ok := t.index[codeKey(n, code)]; ok {
			return op, nil
		}
	}
	return 0, ErrNoCode
}
