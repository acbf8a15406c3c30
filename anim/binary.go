package anim

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/retrobus/vgacat/crc32"
	"github.com/retrobus/vgacat/huffman"
)

// Serialized animation bundle, little endian throughout:
//
//	magic "ANM1", frame count, width, height, one reserved byte,
//	16 byte palette, uint16 code count, uint32 bit length, uint32
//	payload length, then the code table (opcode, length, uint16 value
//	per entry), the payload, and a big endian CRC-32 trailer over
//	everything before it.
const (
	headerSize  = 34
	trailerSize = 4

	codeEntrySize = 4
	maxCodes      = 256 // opcodes are one byte

	// A payload this long saturates MaxOpcodes even at the widest
	// codeword, so anything past it is dead weight.
	maxPayloadBits = MaxOpcodes * huffman.MaxCodeLen
)

// Magic identifies a serialized bundle.
const Magic = "ANM1"

var (
	errTooShort      = errors.New("anim: not enough data")
	errTooMuch       = errors.New("anim: too much data")
	errBadMagic      = errors.New("anim: bad magic")
	errBadFrameCount = errors.New("anim: frame count must be twelve")
	errBadGeometry   = errors.New("anim: unsupported frame geometry")
	errTooManyCodes  = errors.New("anim: too many code entries")
	errCodeTooLong   = errors.New("anim: code length exceeds maximum")
	errBadCodeTable  = errors.New("anim: malformed code table")
	errBadBitLen     = errors.New("anim: bit length does not match payload")
	errBadChecksum   = errors.New("anim: checksum mismatch")
)

// MarshalCodes encodes a prefix-code table as repeated
// (opcode, length, value) entries.
func MarshalCodes(codes []huffman.Code) []byte {
	b := make([]byte, 0, len(codes)*codeEntrySize)
	for _, c := range codes {
		b = append(b, c.Opcode, c.Len, byte(c.Bits), byte(c.Bits>>8))
	}
	return b
}

// UnmarshalCodes is the inverse of MarshalCodes. Codeword lengths beyond
// huffman.MaxCodeLen are rejected; the prefix property itself is not
// checked, the table is trusted as supplied.
func UnmarshalCodes(b []byte) ([]huffman.Code, error) {
	if len(b)%codeEntrySize != 0 {
		return nil, errBadCodeTable
	}
	codes := make([]huffman.Code, 0, len(b)/codeEntrySize)
	for off := 0; off < len(b); off += codeEntrySize {
		c := huffman.Code{
			Opcode: b[off],
			Len:    b[off+1],
			Bits:   binary.LittleEndian.Uint16(b[off+2 : off+4]),
		}
		if c.Len > huffman.MaxCodeLen {
			return nil, errCodeTooLong
		}
		codes = append(codes, c)
	}
	return codes, nil
}

// MarshalBinary encodes the animation into its bundle form.
func (a *Animation) MarshalBinary() ([]byte, error) {
	if len(a.Codes) > maxCodes {
		return nil, errTooManyCodes
	}
	for _, c := range a.Codes {
		if c.Len > huffman.MaxCodeLen {
			return nil, errCodeTooLong
		}
	}
	if a.BitLen < 0 || a.BitLen > maxPayloadBits || (a.BitLen+7)/8 != len(a.Payload) {
		return nil, errBadBitLen
	}

	b := new(bytes.Buffer)
	b.WriteString(Magic)
	b.Write([]byte{FrameCount, FrameWidth, FrameHeight, 0})
	b.Write(a.Palette[:])
	if err := binary.Write(b, binary.LittleEndian, uint16(len(a.Codes))); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, uint32(a.BitLen)); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, uint32(len(a.Payload))); err != nil {
		return nil, err
	}
	b.Write(MarshalCodes(a.Codes))
	b.Write(a.Payload)

	if err := binary.Write(b, binary.BigEndian, crc32.Checksum(b.Bytes())); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes a bundle, replacing the animation's contents.
// All buffers are copied out of b.
func (a *Animation) UnmarshalBinary(b []byte) error {
	if len(b) < headerSize+trailerSize {
		return errTooShort
	}
	if string(b[0:4]) != Magic {
		return errBadMagic
	}
	if b[4] != FrameCount {
		return errBadFrameCount
	}
	if b[5] != FrameWidth || b[6] != FrameHeight {
		return errBadGeometry
	}

	codeCount := int(binary.LittleEndian.Uint16(b[24:26]))
	bitLen := int(binary.LittleEndian.Uint32(b[26:30]))
	payloadLen := int(binary.LittleEndian.Uint32(b[30:34]))

	if codeCount > maxCodes {
		return errTooManyCodes
	}
	if bitLen < 0 || bitLen > maxPayloadBits || (bitLen+7)/8 != payloadLen {
		return errBadBitLen
	}

	need := headerSize + codeCount*codeEntrySize + payloadLen + trailerSize
	if len(b) < need {
		return errTooShort
	}
	if len(b) > need {
		return errTooMuch
	}
	if crc32.Checksum(b[:need-trailerSize]) != binary.BigEndian.Uint32(b[need-trailerSize:]) {
		return errBadChecksum
	}

	codes, err := UnmarshalCodes(b[headerSize : headerSize+codeCount*codeEntrySize])
	if err != nil {
		return err
	}

	copy(a.Palette[:], b[8:24])
	a.Codes = codes
	a.BitLen = bitLen
	a.Payload = append([]byte(nil), b[need-trailerSize-payloadLen:need-trailerSize]...)
	return nil
}
