package huffman

// BitReader reads single bits from a byte slice, most significant bit
// first. Reads beyond the end of the data return zero without advancing,
// so BitsRead never exceeds the number of bits actually present.
type BitReader struct {
	data []byte
	pos  int
}

// NewBitReader returns a reader over data. The slice is borrowed, never
// written to.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// ReadBit returns the next bit, or zero once the data is exhausted.
func (br *BitReader) ReadBit() byte {
	if br.pos >= len(br.data)<<3 {
		return 0
	}
	b := br.data[br.pos>>3] >> (7 - uint(br.pos&7)) & 1
	br.pos++
	return b
}

// BitsRead returns the exact number of bits consumed so far.
func (br *BitReader) BitsRead() int {
	return br.pos
}

// Len returns the total number of bits backed by the data.
func (br *BitReader) Len() int {
	return len(br.data) << 3
}
