package vga

import "github.com/retrobus/vgacat/anim"

// Emulator is an in-memory VGA1 device. It implements Bus with the same
// register semantics as the hardware, which makes it useful for tests and
// for rendering animations without a device attached.
type Emulator struct {
	ctrl    uint32
	status  uint32
	palette [16]uint32
	target  int
	offset  int
	vram    [16]anim.Frame
}

// NewEmulator returns a blank device: output disabled, VRAM and palette
// zeroed.
func NewEmulator() *Emulator {
	return &Emulator{}
}

// Read32 implements Bus.
func (e *Emulator) Read32(off uint32) uint32 {
	switch {
	case off == RegID:
		return DeviceID
	case off == RegCtrl:
		return e.ctrl
	case off == RegStatus:
		return e.status
	case off >= RegPalette && off < RegPalette+16*4:
		return e.palette[(off-RegPalette)>>2]
	}
	return 0
}

// Write32 implements Bus.
func (e *Emulator) Write32(off uint32, v uint32) {
	switch {
	case off == RegCtrl:
		e.ctrl = v
	case off == RegUpload:
		e.target = int(v>>uploadFrameShift) & 0xf
		e.offset = int(v & 0xffff)
	case off == RegStream:
		e.stream(v)
	case off >= RegPalette && off < RegPalette+16*4:
		e.palette[(off-RegPalette)>>2] = v & 0x3f
	}
}

// stream unpacks one word into the target slot. Words addressed past the
// end of the slot are dropped, as the hardware drops them.
func (e *Emulator) stream(v uint32) {
	base := e.offset * PixelsPerWord
	if base < 0 || base+PixelsPerWord > anim.FrameSize {
		return
	}
	for i := 0; i < PixelsPerWord; i++ {
		e.vram[e.target][base+i] = uint8(v >> (uint(i) * 4) & 0xf)
	}
	e.offset++
}

// Frame returns a copy of frame slot index.
func (e *Emulator) Frame(index int) anim.Frame {
	return e.vram[index&0xf]
}

// ActiveFrame returns the frame slot currently selected for display.
func (e *Emulator) ActiveFrame() int {
	return int(e.ctrl>>ctrlFrameShift) & 0xf
}

// Enabled reports whether output is switched on.
func (e *Emulator) Enabled() bool {
	return e.ctrl&CtrlEnable != 0
}

// Palette returns the programmed palette.
func (e *Emulator) Palette() anim.Palette {
	var p anim.Palette
	for i, v := range e.palette {
		p[i] = uint8(v)
	}
	return p
}
