package input

import (
	"sync"
	"time"
)

// KeyPad collects key events from a UI thread and hands them to the frame
// loop as pad samples. Every poll returns a sample; a keyboard always has
// a state to report.
//
// Terminals report presses (and auto-repeats) but never releases. With a
// non-zero hold timeout a pressed button is released on its own once no
// repeat has refreshed it for that long.
type KeyPad struct {
	mu          sync.Mutex
	hold        Buttons
	trigger     Buttons
	lastPress   map[Buttons]time.Time
	holdTimeout time.Duration
	closed      bool
	now         func() time.Time
}

func NewKeyPad(holdTimeout time.Duration) *KeyPad {
	return &KeyPad{
		lastPress:   make(map[Buttons]time.Time),
		holdTimeout: holdTimeout,
		now:         time.Now,
	}
}

// Press marks b as held. A press of a button that was not already held
// also counts as a trigger.
func (k *KeyPad) Press(b Buttons) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.expire()
	for _, bit := range bits(b) {
		if k.hold&bit == 0 {
			k.trigger |= bit
		}
		k.hold |= bit
		k.lastPress[bit] = k.now()
	}
}

func (k *KeyPad) Release(b Buttons) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.hold &^= b
	for _, bit := range bits(b) {
		delete(k.lastPress, bit)
	}
}

// Poll returns the current state and clears the pending triggers.
func (k *KeyPad) Poll() (Sample, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return Sample{}, ErrDisconnected
	}
	k.expire()
	s := Sample{Hold: k.hold, Trigger: k.trigger}
	k.trigger = 0
	return s, nil
}

// Close disconnects the pad; later polls fail with ErrDisconnected.
func (k *KeyPad) Close() {
	k.mu.Lock()
	k.closed = true
	k.mu.Unlock()
}

func (k *KeyPad) expire() {
	if k.holdTimeout <= 0 {
		return
	}
	now := k.now()
	for bit, at := range k.lastPress {
		if now.Sub(at) > k.holdTimeout {
			k.hold &^= bit
			delete(k.lastPress, bit)
		}
	}
}

func bits(b Buttons) []Buttons {
	var out []Buttons
	for bit := Buttons(1); bit != 0 && bit <= b; bit <<= 1 {
		if b&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}
