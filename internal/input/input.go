// Package input turns gamepad-like button state into cursor movement and
// color changes, and provides the sources the frame loop polls.
package input

import "errors"

// Buttons is a bitmask of pad buttons.
type Buttons uint32

const (
	ButtonA Buttons = 1 << iota
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	// ButtonHome asks to leave the program. It is handled by whoever owns
	// the process lifecycle, never by the drawing loop.
	ButtonHome
)

// DirectionMask covers the four d-pad bits.
const DirectionMask = ButtonUp | ButtonDown | ButtonLeft | ButtonRight

func (b Buttons) Has(mask Buttons) bool { return b&mask != 0 }

// Sample is one read of the pad. Hold is the set of buttons currently
// down; Trigger is the set that went down since the previous read.
type Sample struct {
	Hold    Buttons `json:"hold"`
	Trigger Buttons `json:"trigger"`
}

var (
	// ErrNoSamples means nothing new arrived; the caller retries next tick.
	ErrNoSamples = errors.New("input: no samples")
	// ErrDisconnected means the device is gone for good.
	ErrDisconnected = errors.New("input: device disconnected")
)

// Source is a pollable input device. Poll must not block for longer than
// a frame. Any error other than ErrNoSamples is fatal for the run.
type Source interface {
	Poll() (Sample, error)
}

// Displacement converts held directions into a cursor step. Up wins over
// down and left wins over right; diagonals combine one of each.
func Displacement(hold Buttons, step int) (dx, dy int) {
	if !hold.Has(DirectionMask) {
		return 0, 0
	}
	switch {
	case hold.Has(ButtonUp):
		dy = -step
	case hold.Has(ButtonDown):
		dy = step
	}
	switch {
	case hold.Has(ButtonLeft):
		dx = -step
	case hold.Has(ButtonRight):
		dx = step
	}
	return dx, dy
}
