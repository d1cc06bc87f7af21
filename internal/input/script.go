package input

// Step is one scripted poll result. A nil Err means the sample is read
// successfully.
type Step struct {
	Sample Sample
	Err    error
}

// Script replays a fixed list of poll results. When the list runs out it
// keeps answering with Tail, which defaults to ErrDisconnected.
type Script struct {
	Steps []Step
	Tail  error
	pos   int
}

func NewScript(steps ...Step) *Script {
	return &Script{Steps: steps, Tail: ErrDisconnected}
}

// Hold is a successful sample with only held buttons.
func Hold(b Buttons) Step { return Step{Sample: Sample{Hold: b}} }

// Tap is a successful sample with b both held and triggered.
func Tap(b Buttons) Step { return Step{Sample: Sample{Hold: b, Trigger: b}} }

// Fail is a poll that returns err.
func Fail(err error) Step { return Step{Err: err} }

func (s *Script) Poll() (Sample, error) {
	if s.pos >= len(s.Steps) {
		return Sample{}, s.Tail
	}
	st := s.Steps[s.pos]
	s.pos++
	return st.Sample, st.Err
}

// Remaining is the number of scripted steps not yet polled.
func (s *Script) Remaining() int { return len(s.Steps) - s.pos }
