package vgacat

import (
	"fmt"

	"github.com/retrobus/vgacat/anim"
	"github.com/retrobus/vgacat/crc32"
)

// PayloadCRC returns the hex form of the payload checksum, the same value
// the display firmware computes when it loads an animation. Two bundles
// with the same payload play identically, so this is the dedupe key.
func PayloadCRC(a *anim.Animation) string {
	return fmt.Sprintf("%08X", crc32.Checksum(a.Payload))
}
