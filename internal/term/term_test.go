package term

import (
	"image"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DrawBoard/internal/display"
	"DrawBoard/internal/frame"
	"DrawBoard/internal/input"
	"DrawBoard/internal/state"
)

type fakeScreen struct {
	w, h  int
	cells map[[2]int]rune
	shown int
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (s *fakeScreen) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	s.cells[[2]int{x, y}] = r
}
func (s *fakeScreen) Size() (int, int) { return s.w, s.h }
func (s *fakeScreen) Show()            { s.shown++ }

func (s *fakeScreen) row(y int) string {
	var b strings.Builder
	for x := 0; x < s.w; x++ {
		if r, ok := s.cells[[2]int{x, y}]; ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func boundFB(t *testing.T, name string, w, h int) *display.Framebuffer {
	t.Helper()
	fb := display.NewFramebuffer(name, w, h)
	require.NoError(t, fb.Bind(make([]byte, fb.RequiredBufferSize())))
	fb.Enable(true)
	fb.Clear(0)
	return fb
}

func TestBlockColorKeepsThinStrokes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	i := img.PixOffset(7, 3)
	copy(img.Pix[i:], []byte{0xFF, 0, 0, 0xFF})

	assert.Equal(t, state.Color(0xFF000000), blockColor(img, 5, 0, 10, 5, 0))
	assert.Equal(t, state.Color(0), blockColor(img, 0, 0, 5, 5, 0))
	assert.Equal(t, state.Color(0), blockColor(img, 0, 5, 10, 10, 0))
	// Empty ranges still sample one pixel.
	assert.Equal(t, state.Color(0xFF000000), blockColor(img, 7, 3, 7, 3, 0))
}

func TestDisplayDrawsPanesOnPresent(t *testing.T) {
	scr := newFakeScreen(61, 6)
	tv := boundFB(t, "TV", 20, 10)
	pad := boundFB(t, "GamePad", 20, 10)
	d := New(scr, 0, state.DefaultPalette(), tv, pad)

	x0, cols, rows := d.layout(1)
	assert.Equal(t, 31, x0)
	assert.Equal(t, 30, cols)
	assert.Equal(t, 5, rows)

	require.NoError(t, tv.Present())
	assert.Equal(t, 0, scr.shown, "only the last pane flushes the screen")
	assert.Equal(t, '▀', scr.cells[[2]int{0, 0}])
	_, gap := scr.cells[[2]int{30, 0}]
	assert.False(t, gap)

	d.OnFrame(frame.Frame{Color: 1, Points: 3, Capacity: 10000})
	require.NoError(t, pad.Present())
	assert.Equal(t, 1, scr.shown)
	assert.Equal(t, '▀', scr.cells[[2]int{60, 4}])
	assert.Contains(t, scr.row(5), "RED")
	assert.Contains(t, scr.row(5), "3/10000")
}

func TestDisplayIgnoresTinyTerminal(t *testing.T) {
	scr := newFakeScreen(1, 1)
	tv := boundFB(t, "TV", 4, 4)
	pad := boundFB(t, "GamePad", 4, 4)
	New(scr, 0, state.DefaultPalette(), tv, pad)

	require.NoError(t, tv.Present())
	require.NoError(t, pad.Present())
	assert.Empty(t, scr.cells)
}

func TestButtonForKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Buttons
		ok   bool
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.ButtonUp, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input.ButtonDown, true},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.ButtonLeft, true},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.ButtonRight, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.ButtonA, true},
		{"a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), input.ButtonA, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.ButtonA, true},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ButtonForKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestPollEventsFeedsKeyPad(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	keys := input.NewKeyPad(0)

	quit := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		PollEvents(scr, keys, func() { quit <- struct{}{} })
		close(done)
	}()

	scr.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	scr.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	<-quit

	s, err := keys.Poll()
	require.NoError(t, err)
	assert.True(t, s.Hold.Has(input.ButtonRight))
	assert.True(t, s.Trigger.Has(input.ButtonRight))

	scr.Fini()
	<-done
}
