package state

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one run of the board. The tick counter is the
// number of frames actually rendered; skipped ticks do not advance it.
type Session struct {
	ID      string
	Started time.Time
	ticks   uint64
}

func NewSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Started: time.Now(),
	}
}

// Tick advances the frame clock and returns the new value.
func (s *Session) Tick() uint64 {
	s.ticks++
	return s.ticks
}

func (s *Session) Ticks() uint64 { return s.ticks }
