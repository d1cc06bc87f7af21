// Package frame runs the drawing loop: poll the pad, move the cursor,
// record a point, then clear, redraw and present every screen.
package frame

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"DrawBoard/internal/input"
	"DrawBoard/internal/raster"
	"DrawBoard/internal/state"
)

var (
	ErrAllocation = errors.New("frame: screen buffer allocation failed")
	ErrInputFatal = errors.New("frame: input device lost")
	ErrNotRunning = errors.New("frame: driver is not running")
)

type State int

const (
	Idle State = iota
	Running
	FatalInput
	Shutdown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	case FatalInput:
		return "FATAL_INPUT_ERROR"
	case Shutdown:
		return "SHUTDOWN"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome says what a single tick did.
type Outcome int

const (
	Rendered Outcome = iota
	Skipped
	Stopped
)

// Output is one screen the driver owns for the whole run.
type Output interface {
	raster.Surface
	Name() string
	RequiredBufferSize() int
	Bind(buf []byte) error
	Unbind()
	Enable(on bool)
	Clear(c state.Color)
	Present() error
}

// Texter is implemented by outputs that can show the text overlay.
type Texter interface {
	PutText(col, row int, s string)
}

type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(buf []byte)
}

type Config struct {
	Bounds        state.Bounds
	Capacity      int
	Step          int
	Palette       state.Palette
	Background    state.Color
	FrameInterval time.Duration
	// HUDOutput names the output that shows the help text.
	HUDOutput string
	QuitHint  string
}

// Frame is the per-tick summary handed to OnFrame.
type Frame struct {
	Tick     uint64
	Cursor   state.Cursor
	Color    int
	Points   int
	Capacity int
}

type binding struct {
	out Output
	buf []byte
}

// Driver owns the history, cursor, color selection and screens of one run.
// It is not safe for concurrent use; everything happens on the goroutine
// that calls Run or Tick.
type Driver struct {
	cfg      Config
	src      input.Source
	outputs  []Output
	alloc    Allocator
	bound    []binding
	history  *state.History
	selector *state.Selector
	cursor   state.Cursor
	session  *state.Session
	state    State
	closed   bool
	started  bool
	logFull  bool

	// OnFrame, when set, is called after every presented frame.
	OnFrame func(Frame)
}

func New(cfg Config, src input.Source, outputs ...Output) *Driver {
	if cfg.Step <= 0 {
		cfg.Step = 5
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}
	return &Driver{
		cfg:      cfg,
		src:      src,
		outputs:  outputs,
		history:  state.NewHistory(cfg.Capacity),
		selector: state.NewSelector(cfg.Palette),
		cursor:   state.CenteredCursor(cfg.Bounds),
		session:  state.NewSession(),
	}
}

// Start allocates and binds a buffer for every output and switches them
// on. If any allocation fails, whatever was acquired is released again.
func (d *Driver) Start(alloc Allocator) error {
	if d.state != Idle {
		return fmt.Errorf("frame: start in state %s", d.state)
	}
	d.alloc = alloc
	for _, o := range d.outputs {
		size := o.RequiredBufferSize()
		log.Printf("[FRAME] Allocating 0x%X bytes for the %s.", size, o.Name())
		buf, err := alloc.Alloc(size)
		if err != nil {
			log.Println("[FRAME] Out of memory!")
			d.Close()
			return fmt.Errorf("%w: %s: %w", ErrAllocation, o.Name(), err)
		}
		if err := o.Bind(buf); err != nil {
			alloc.Free(buf)
			d.Close()
			return fmt.Errorf("%w: bind %s: %w", ErrAllocation, o.Name(), err)
		}
		d.bound = append(d.bound, binding{out: o, buf: buf})
	}
	for _, o := range d.outputs {
		o.Enable(true)
	}
	d.state = Running
	d.started = true
	log.Printf("[FRAME] Session %s started, canvas %dx%d.", d.session.ID, d.cfg.Bounds.Width, d.cfg.Bounds.Height)
	return nil
}

// Tick runs one iteration of the loop. A tick with no input sample does
// nothing at all and reports Skipped.
func (d *Driver) Tick() (Outcome, error) {
	if d.state != Running {
		return Stopped, ErrNotRunning
	}

	sample, err := d.src.Poll()
	switch {
	case err == nil:
	case errors.Is(err, input.ErrNoSamples):
		return Skipped, nil
	case errors.Is(err, input.ErrDisconnected):
		log.Println("[FRAME] Gamepad disconnected!")
		d.state = FatalInput
		return Stopped, fmt.Errorf("%w: %w", ErrInputFatal, err)
	default:
		log.Printf("[FRAME] Unknown input error! %v", err)
		d.state = FatalInput
		return Stopped, fmt.Errorf("%w: %w", ErrInputFatal, err)
	}

	dx, dy := input.Displacement(sample.Hold, d.cfg.Step)
	d.cursor.Move(dx, dy, d.cfg.Bounds)
	if sample.Trigger.Has(input.ButtonA) {
		d.selector.Cycle()
	}
	if !d.history.Record(d.cursor.X, d.cursor.Y, d.selector.Active().Color) && !d.logFull {
		log.Printf("[FRAME] History full at %d points, no longer recording.", d.history.Cap())
		d.logFull = true
	}

	for _, o := range d.outputs {
		o.Clear(d.cfg.Background)
	}
	d.drawHUD()
	for _, o := range d.outputs {
		raster.Render(o, d.history)
	}
	for _, o := range d.outputs {
		if err := o.Present(); err != nil {
			log.Printf("[FRAME] Failed to present the %s: %v", o.Name(), err)
			d.Close()
			return Stopped, fmt.Errorf("frame: present %s: %w", o.Name(), err)
		}
	}

	tick := d.session.Tick()
	if d.OnFrame != nil {
		d.OnFrame(Frame{
			Tick:     tick,
			Cursor:   d.cursor,
			Color:    d.selector.Index(),
			Points:   d.history.Len(),
			Capacity: d.history.Cap(),
		})
	}
	return Rendered, nil
}

// Run ticks until ctx is done or the input device is lost, then releases
// every screen. A cancelled context is a normal shutdown and returns nil.
func (d *Driver) Run(ctx context.Context) error {
	defer d.Close()
	if d.state != Running {
		return ErrNotRunning
	}

	ticker := time.NewTicker(d.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[FRAME] Shutdown requested!")
			return nil
		case <-ticker.C:
		}
		if _, err := d.Tick(); err != nil {
			return err
		}
	}
}

// Close switches off and releases every screen. It is safe to call more
// than once and from any exit path.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	for _, b := range d.bound {
		b.out.Enable(false)
		b.out.Unbind()
		d.alloc.Free(b.buf)
	}
	d.bound = nil
	d.state = Shutdown
	log.Printf("[FRAME] Quitting after %d frames.", d.session.Ticks())
}

func (d *Driver) drawHUD() {
	for _, o := range d.outputs {
		if o.Name() != d.cfg.HUDOutput {
			continue
		}
		t, ok := o.(Texter)
		if !ok {
			continue
		}
		quit := d.cfg.QuitHint
		if quit == "" {
			quit = "Press ESC to quit."
		}
		t.PutText(0, 0, "DrawBoard")
		t.PutText(0, 2, "Use the d-pad to draw pixels to the screen.")
		t.PutText(0, 3, "Press A to cycle through different colors. Current color: "+d.selector.Active().Name)
		t.PutText(0, 4, quit)
		t.PutText(0, 6, fmt.Sprintf("Points: %d/%d", d.history.Len(), d.history.Cap()))
		t.PutText(0, 26, "Session "+d.session.ID)
	}
}

func (d *Driver) State() State { return d.state }

// Started reports whether Start ever succeeded, even if the run is over.
func (d *Driver) Started() bool { return d.started }

func (d *Driver) Cursor() state.Cursor { return d.cursor }

func (d *Driver) ColorIndex() int { return d.selector.Index() }

// History is the recorded drawing. Callers must not hold on to it while
// the driver is still running.
func (d *Driver) History() *state.History { return d.history }

func (d *Driver) Session() *state.Session { return d.session }

func (d *Driver) Palette() state.Palette { return d.selector.Palette() }
