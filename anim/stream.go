package anim

import "github.com/retrobus/vgacat/huffman"

// DecodeStats describes one run of the opcode-stream decoder.
type DecodeStats struct {
	Opcodes     int // opcodes emitted, terminators included
	Terminators int
	TableMisses int // codeword misses, emitted as terminators
	BitsRead    int
}

// DecodeOpcodes expands the payload into at most MaxOpcodes one-byte
// opcodes. Decoding stops once the payload's bit length is consumed, the
// capacity is reached, or FrameCount terminators have been emitted;
// anything past the twelfth terminator could never be played. A codeword
// miss emits a Terminator, which is what the display firmware expects, and
// is tallied separately in the stats.
func (a *Animation) DecodeOpcodes() ([]byte, DecodeStats) {
	var stats DecodeStats

	table := huffman.NewTable(a.Codes)
	br := huffman.NewBitReader(a.Payload)

	ops := make([]byte, 0, MaxOpcodes)
	for br.BitsRead() < a.BitLen && len(ops) < MaxOpcodes {
		op, err := table.Decode(br)
		if err != nil {
			op = Terminator
			stats.TableMisses++
		}
		ops = append(ops, op)
		if op == Terminator {
			stats.Terminators++
			if stats.Terminators == FrameCount {
				break
			}
		}
	}

	stats.Opcodes = len(ops)
	stats.BitsRead = br.BitsRead()
	return ops, stats
}

// Split slices an opcode stream into FrameCount segments on Terminator
// markers, which are not part of any segment. A missing trailing marker
// turns the remainder into the next segment; segments the stream never
// reaches are empty.
func Split(ops []byte) [FrameCount][]byte {
	var segments [FrameCount][]byte

	start, n := 0, 0
	for i := 0; i < len(ops) && n < FrameCount; i++ {
		if ops[i] == Terminator {
			segments[n] = ops[start:i]
			n++
			start = i + 1
		}
	}
	if n < FrameCount {
		segments[n] = ops[start:]
	}

	return segments
}

// DecodeFrames runs the whole pipeline: payload to opcodes to segments to
// twelve reconstructed frames.
func (a *Animation) DecodeFrames() ([]Frame, DecodeStats) {
	ops, stats := a.DecodeOpcodes()
	segments := Split(ops)

	frames := make([]Frame, FrameCount)
	var r Reconstructor
	for i := range segments {
		frames[i] = r.Next(segments[i])
	}
	return frames, stats
}
