package vgacat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrobus/vgacat/anim"
)

var errPresenter = errors.New("presenter failed")

// recordingPresenter notes every call and can be told to fail, either on
// any upload or after a number of shows.
type recordingPresenter struct {
	writes    []int
	shown     []int
	failWrite error
	failShow  int // fail on the nth ShowFrame call, 0 never
}

func (r *recordingPresenter) WriteFrame(index int, f anim.Frame) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.writes = append(r.writes, index)
	return nil
}

func (r *recordingPresenter) ShowFrame(index int) error {
	r.shown = append(r.shown, index)
	if r.failShow > 0 && len(r.shown) >= r.failShow {
		return errPresenter
	}
	return nil
}

func testFrames(n int) []anim.Frame {
	frames := make([]anim.Frame, n)
	for i := range frames {
		frames[i][0] = uint8(i)
	}
	return frames
}

func TestPlayerUploadsBeforeShowing(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &recordingPresenter{}
	err := NewPlayer(p, time.Minute).Run(ctx, testFrames(3))

	// A cancelled context still lets the first frame go up
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, 1, 2}, p.writes)
	assert.Equal(t, []int{0}, p.shown)
}

func TestPlayerCyclesFrames(t *testing.T) {
	t.Parallel()

	p := &recordingPresenter{failShow: 7}
	err := NewPlayer(p, time.Millisecond).Run(context.Background(), testFrames(3))

	require.ErrorIs(t, err, errPresenter)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, p.shown)
}

func TestPlayerWriteError(t *testing.T) {
	t.Parallel()

	p := &recordingPresenter{failWrite: errPresenter}
	err := NewPlayer(p, time.Millisecond).Run(context.Background(), testFrames(3))

	require.ErrorIs(t, err, errPresenter)
	assert.Empty(t, p.shown)
}

func TestPlayerNoFrames(t *testing.T) {
	t.Parallel()

	p := &recordingPresenter{}
	require.NoError(t, NewPlayer(p, time.Millisecond).Run(context.Background(), nil))
	assert.Empty(t, p.writes)
}

func TestNewPlayerDefaultInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultInterval, NewPlayer(&recordingPresenter{}, 0).interval)
	assert.Equal(t, time.Second, NewPlayer(&recordingPresenter{}, time.Second).interval)
}
