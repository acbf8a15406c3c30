/*
Package vga drives the VGA1 display controller, a memory-mapped device
with sixteen 64 by 64 4-bit frame slots and a 16 entry palette.

The device occupies a 0x60 byte register window:

	0x00  ID       reads 0x56474131, "VGA1"
	0x04  CTRL     bit 0 enables output, bits 4-7 select the shown frame
	0x08  STATUS
	0x10  UPLOAD   bits 16-19 target frame slot, low bits the word offset
	0x14  STREAM   writes eight packed pixels and advances the offset
	0x20  PAL0-15  one 6-bit RGB palette entry per slot

Pixels stream eight to a 32-bit word, the first pixel in the lowest
nibble. Palette entries pack two bits per channel: bits 5-4 red, 3-2
green, 1-0 blue.
*/
package vga

import (
	"errors"
	"fmt"

	"github.com/retrobus/vgacat/anim"
)

// DeviceID is the identity value read back from RegID.
const DeviceID = 0x56474131

// Register offsets within the device window.
const (
	RegID      = 0x00
	RegCtrl    = 0x04
	RegStatus  = 0x08
	RegUpload  = 0x10
	RegStream  = 0x14
	RegPalette = 0x20

	// Window is the size of the register window in bytes.
	Window = 0x60
)

const (
	// CtrlEnable turns the video output on.
	CtrlEnable = 0x01

	ctrlFrameShift   = 4
	uploadFrameShift = 16
)

// PixelsPerWord is the number of 4-bit pixels carried by one STREAM write.
const PixelsPerWord = 8

// ErrBadID is returned by Probe when the ID register reads back wrong.
var ErrBadID = errors.New("vga: device id mismatch")

// Bus is a 32-bit register window. Offsets are relative to the device
// base address. Implementations are not required to be safe for
// concurrent use; the device is driven from one goroutine.
type Bus interface {
	Read32(off uint32) uint32
	Write32(off uint32, v uint32)
}

// Display drives a VGA1 device over a Bus.
type Display struct {
	bus Bus
}

// NewDisplay returns a Display on bus. Callers should Probe before
// trusting any other operation.
func NewDisplay(bus Bus) *Display {
	return &Display{bus: bus}
}

// Probe verifies the device identity.
func (d *Display) Probe() error {
	if id := d.bus.Read32(RegID); id != DeviceID {
		return fmt.Errorf("%w: read %#08x", ErrBadID, id)
	}
	return nil
}

// Enable turns the output on, showing frame 0.
func (d *Display) Enable() {
	d.bus.Write32(RegCtrl, CtrlEnable)
}

// Status reads the status register.
func (d *Display) Status() uint32 {
	return d.bus.Read32(RegStatus)
}

// SetPalette programs all 16 palette slots.
func (d *Display) SetPalette(p anim.Palette) {
	for i, c := range p {
		d.bus.Write32(RegPalette+uint32(i)*4, uint32(c&0x3f))
	}
}

// WriteFrame uploads f into frame slot index. It always returns nil; the
// error is for the benefit of other frame sinks.
func (d *Display) WriteFrame(index int, f anim.Frame) error {
	d.bus.Write32(RegUpload, uint32(index&0xf)<<uploadFrameShift)
	for i := 0; i < anim.FrameSize; i += PixelsPerWord {
		d.bus.Write32(RegStream, packWord(f[i:i+PixelsPerWord]))
	}
	return nil
}

// ShowFrame selects frame index and enables output.
func (d *Display) ShowFrame(index int) error {
	d.bus.Write32(RegCtrl, uint32(index&0xf)<<ctrlFrameShift|CtrlEnable)
	return nil
}

// packWord packs eight pixels into one stream word, the first pixel in
// the lowest nibble.
func packWord(px []uint8) uint32 {
	var w uint32
	for i, p := range px {
		w |= uint32(p&0x0f) << (uint(i) * 4)
	}
	return w
}
