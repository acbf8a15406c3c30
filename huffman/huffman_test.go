package huffman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packBits concatenates codewords MSB first, zero padded to a byte
// boundary. It returns the packed bytes and the number of significant
// bits.
func packBits(codes []Code) ([]byte, int) {
	var (
		b    []byte
		acc  uint
		nacc uint
	)
	for _, c := range codes {
		for i := int(c.Len) - 1; i >= 0; i-- {
			acc = acc<<1 | uint(c.Bits>>uint(i)&1)
			nacc++
			if nacc == 8 {
				b = append(b, byte(acc))
				acc, nacc = 0, 0
			}
		}
	}
	bits := len(b)<<3 + int(nacc)
	if nacc > 0 {
		b = append(b, byte(acc<<(8-nacc)))
	}
	return b, bits
}

// testCodes is prefix free: 0, 10, 110, 11100, 11101, 111100000000.
var testCodes = []Code{
	{Opcode: 0x01, Len: 1, Bits: 0x0},
	{Opcode: 0x02, Len: 2, Bits: 0x2},
	{Opcode: 0x03, Len: 3, Bits: 0x6},
	{Opcode: 0x10, Len: 5, Bits: 0x1c},
	{Opcode: 0x20, Len: 5, Bits: 0x1d},
	{Opcode: 0xff, Len: 12, Bits: 0xf00},
}

func TestBitReaderSingleBits(t *testing.T) {
	t.Parallel()

	br := NewBitReader([]byte{0xa5}) // 10100101
	expected := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for i, want := range expected {
		assert.Equal(t, want, br.ReadBit(), "bit %d", i)
	}
	assert.Equal(t, 8, br.BitsRead())
}

func TestBitReaderPastEnd(t *testing.T) {
	t.Parallel()

	br := NewBitReader([]byte{0xff})
	for i := 0; i < 12; i++ {
		br.ReadBit()
	}
	assert.Equal(t, 8, br.BitsRead(), "reads past the end must not advance")
	assert.Equal(t, byte(0), br.ReadBit())
	assert.Equal(t, 8, br.Len())
}

func TestDecodeEachCodeword(t *testing.T) {
	t.Parallel()

	table := NewTable(testCodes)
	for _, c := range testCodes {
		data, _ := packBits([]Code{c})
		br := NewBitReader(data)
		op, err := table.Decode(br)
		require.NoError(t, err)
		assert.Equal(t, c.Opcode, op)
		assert.Equal(t, int(c.Len), br.BitsRead(), "opcode %#02x", c.Opcode)
	}
}

func TestCodewordsArePrefixFree(t *testing.T) {
	t.Parallel()

	for _, a := range testCodes {
		for _, b := range testCodes {
			if a.Len >= b.Len || a == b {
				continue
			}
			assert.NotEqual(t, a.Bits, b.Bits>>(b.Len-a.Len),
				"%#02x is a prefix of %#02x", a.Opcode, b.Opcode)
		}
	}
}

func TestDecodeSequence(t *testing.T) {
	t.Parallel()

	seq := []Code{testCodes[5], testCodes[0], testCodes[3], testCodes[1], testCodes[2]}
	data, bits := packBits(seq)

	table := NewTable(testCodes)
	br := NewBitReader(data)
	for _, c := range seq {
		op, err := table.Decode(br)
		require.NoError(t, err)
		assert.Equal(t, c.Opcode, op)
	}
	assert.Equal(t, bits, br.BitsRead())
}

func TestDecodeNoMatch(t *testing.T) {
	t.Parallel()

	table := NewTable(testCodes)
	br := NewBitReader([]byte{0xff, 0xff, 0xff})
	_, err := table.Decode(br)
	assert.ErrorIs(t, err, ErrNoCode)
	assert.Equal(t, MaxCodeLen, br.BitsRead(), "a miss consumes the full window")
}

func TestNewTableDropsUnusableEntries(t *testing.T) {
	t.Parallel()

	table := NewTable([]Code{
		{Opcode: 0x01, Len: 0, Bits: 0x0},
		{Opcode: 0x02, Len: 17, Bits: 0x0},
		{Opcode: 0x03, Len: 3, Bits: 0x5},
	})
	assert.Equal(t, 1, table.Len())
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})
	f.Add([]byte{0xa5, 0x5a, 0x00, 0xff})

	table := NewTable(testCodes)
	known := make(map[uint8]bool, len(testCodes))
	for _, c := range testCodes {
		known[c.Opcode] = true
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		br := NewBitReader(data)
		for br.BitsRead() < br.Len() {
			op, err := table.Decode(br)
			if err != nil {
				assert.ErrorIs(t, err, ErrNoCode)
				continue
			}
			assert.True(t, known[op], "decoded opcode %#02x not in table", op)
		}
	})
}
