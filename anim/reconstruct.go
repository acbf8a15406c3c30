package anim

// Opcode classes, the high nibble of each opcode. The low nibble Y is a
// parameter. The two grammars disagree on 0x30: the baseline frame has no
// use for skips, so it spends the class on a second repeat length instead.
const (
	opSetColor = 0x00 // both grammars: current color = Y

	opSkip       = 0x10 // delta: advance Y+1 pixels
	opRepeat     = 0x20 // both grammars: write Y+1 pixels of current color
	opRepeatWide = 0x30 // baseline: write (Y+1)*16 pixels
	opSkipWide   = 0x30 // delta: advance (Y+1)*16 pixels
	opRepeatFar  = 0x40 // delta: write (Y+1)*16 pixels
	opSkipFar    = 0x50 // delta: advance (Y+1)*64 pixels
)

// Reconstructor replays opcode segments into frames, in order. The first
// segment after a Reset paints the baseline frame; every later segment is
// a delta against the previous output. The reconstructor owns its copy of
// the previous frame, and every returned Frame is an independent value.
type Reconstructor struct {
	prev  Frame
	index int
}

// Reset discards the chain so the next segment decodes as frame 0.
func (r *Reconstructor) Reset() {
	r.prev = Frame{}
	r.index = 0
}

// Next replays one segment and returns the finished frame.
func (r *Reconstructor) Next(segment []byte) Frame {
	var f Frame
	if r.index == 0 {
		reconstructBaseline(&f, segment)
	} else {
		reconstructDelta(&f, &r.prev, segment)
	}
	r.prev = f
	r.index++
	return f
}

// reconstructBaseline paints dst from scratch. Unknown opcode classes are
// ignored and any pixels left unpainted are zero filled.
func reconstructBaseline(dst *Frame, segment []byte) {
	pos, color := 0, uint8(0)
	for _, op := range segment {
		if pos >= FrameSize || op == Terminator {
			break
		}
		y := int(op & 0x0f)
		switch op & 0xf0 {
		case opSetColor:
			color = op & 0x0f
		case opRepeat:
			pos = paint(dst, pos, color, y+1)
		case opRepeatWide:
			pos = paint(dst, pos, color, (y+1)*16)
		}
	}
	for ; pos < FrameSize; pos++ {
		dst[pos] = 0
	}
}

// reconstructDelta seeds dst with a copy of prev and patches it. Unknown
// opcode classes are ignored; untouched pixels keep their previous value.
func reconstructDelta(dst, prev *Frame, segment []byte) {
	*dst = *prev
	pos, color := 0, uint8(0)
	for _, op := range segment {
		if pos >= FrameSize || op == Terminator {
			break
		}
		y := int(op & 0x0f)
		switch op & 0xf0 {
		case opSetColor:
			color = op & 0x0f
		case opSkip:
			pos = skip(pos, y+1)
		case opRepeat:
			pos = paint(dst, pos, color, y+1)
		case opSkipWide:
			pos = skip(pos, (y+1)*16)
		case opRepeatFar:
			pos = paint(dst, pos, color, (y+1)*16)
		case opSkipFar:
			pos = skip(pos, (y+1)*64)
		}
	}
}

// paint writes count pixels of color at pos, clamped to the frame.
func paint(dst *Frame, pos int, color uint8, count int) int {
	end := skip(pos, count)
	for ; pos < end; pos++ {
		dst[pos] = color
	}
	return pos
}

// skip advances the cursor, clamped to the frame.
func skip(pos, count int) int {
	if pos+count > FrameSize {
		return FrameSize
	}
	return pos + count
}
