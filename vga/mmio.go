package vga

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultBase is the physical address the device is mapped at.
const DefaultBase = 0x30000000

// MMIO is a Bus over a mapped register window of a memory device file,
// typically /dev/mem. Register values are little endian, matching the
// bus the device hangs off.
type MMIO struct {
	f   *os.File
	mem []byte
}

// OpenMMIO maps one page of path at base, which must be page aligned.
func OpenMMIO(path string, base int64) (*MMIO, error) {
	size := unix.Getpagesize()
	if base%int64(size) != 0 {
		return nil, fmt.Errorf("vga: base %#x is not page aligned", base)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}

	mem, err := unix.Mmap(int(f.Fd()), base, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("vga: mmap %s at %#x: %w", path, base, err)
	}

	return &MMIO{f: f, mem: mem}, nil
}

// Read32 implements Bus.
func (m *MMIO) Read32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(m.mem[off:])
}

// Write32 implements Bus.
func (m *MMIO) Write32(off uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.mem[off:], v)
}

// Close unmaps the register window.
func (m *MMIO) Close() error {
	err := unix.Munmap(m.mem)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
