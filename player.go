package vgacat

import (
	"context"
	"time"

	"github.com/retrobus/vgacat/anim"
)

// FrameSink receives decoded frames, typically a frame slot on a display
// controller.
type FrameSink interface {
	WriteFrame(index int, f anim.Frame) error
}

// Presenter is a FrameSink that can also switch which frame is shown.
// *vga.Display is the usual implementation.
type Presenter interface {
	FrameSink
	ShowFrame(index int) error
}

// DefaultInterval matches the 10 Hz cadence of the display firmware.
const DefaultInterval = 100 * time.Millisecond

// Player cycles animation frames through a Presenter on a fixed interval.
type Player struct {
	sink     Presenter
	interval time.Duration
}

// NewPlayer returns a Player driving sink. A zero or negative interval
// selects DefaultInterval.
func NewPlayer(sink Presenter, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{
		sink:     sink,
		interval: interval,
	}
}

// Run uploads every frame into its slot and then cycles through them until
// ctx is cancelled, which is reported as ctx.Err(). Playing no frames at
// all returns immediately.
func (p *Player) Run(ctx context.Context, frames []anim.Frame) error {
	if len(frames) == 0 {
		return nil
	}

	for i, f := range frames {
		if err := p.sink.WriteFrame(i, f); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(frames) {
		if err := p.sink.ShowFrame(i); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
