// Package term shows both screens side by side in a terminal and reads
// the keyboard as the pad.
package term

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"DrawBoard/internal/display"
	"DrawBoard/internal/frame"
	"DrawBoard/internal/input"
	"DrawBoard/internal/state"
)

// HoldTimeout is how long a key counts as held without a repeat. It has
// to outlast the terminal's initial key-repeat delay.
const HoldTimeout = 550 * time.Millisecond

// Screen is the part of tcell.Screen the display draws with.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Show()
}

type Display struct {
	screen     Screen
	background state.Color
	palette    state.Palette
	panes      []*display.Framebuffer

	mu     sync.Mutex
	status string
}

func New(screen Screen, background state.Color, palette state.Palette, panes ...*display.Framebuffer) *Display {
	d := &Display{
		screen:     screen,
		background: background,
		palette:    palette,
		panes:      panes,
	}
	for i, fb := range panes {
		i, fb := i, fb
		fb.OnPresent(func() { d.drawPane(i, fb) })
	}
	return d
}

// layout splits the terminal into one column per pane, with a one cell
// gap between panes and the bottom row kept for the status line.
func (d *Display) layout(i int) (x0, width, height int) {
	w, h := d.screen.Size()
	n := len(d.panes)
	width = (w - (n - 1)) / n
	return i * (width + 1), width, h - 1
}

func (d *Display) drawPane(i int, fb *display.Framebuffer) {
	x0, cols, rows := d.layout(i)
	if cols <= 0 || rows <= 0 {
		return
	}
	fw, fh := fb.Size()
	fb.View(func(img *image.RGBA) {
		for cy := 0; cy < rows; cy++ {
			for cx := 0; cx < cols; cx++ {
				px0, px1 := cx*fw/cols, (cx+1)*fw/cols
				top := blockColor(img, px0, (2*cy)*fh/(2*rows), px1, (2*cy+1)*fh/(2*rows), d.background)
				bot := blockColor(img, px0, (2*cy+1)*fh/(2*rows), px1, (2*cy+2)*fh/(2*rows), d.background)
				style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bot))
				d.screen.SetContent(x0+cx, cy, '▀', nil, style)
			}
		}
	})
	if i == len(d.panes)-1 {
		d.drawStatus()
		d.screen.Show()
	}
}

// OnFrame updates the status line; meant for frame.Driver.OnFrame.
func (d *Display) OnFrame(f frame.Frame) {
	name := ""
	if f.Color >= 0 && f.Color < len(d.palette) {
		name = d.palette[f.Color].Name
	}
	d.mu.Lock()
	d.status = fmt.Sprintf(" DrawBoard  color: %-6s  points: %d/%d  arrows draw, A cycles, ESC quits", name, f.Points, f.Capacity)
	d.mu.Unlock()
}

func (d *Display) drawStatus() {
	d.mu.Lock()
	status := d.status
	d.mu.Unlock()

	w, h := d.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		d.screen.SetContent(x, h-1, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		d.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

// blockColor picks the color a downscaled block shows: the first pixel
// that is not background, so thin strokes survive the scaling.
func blockColor(img *image.RGBA, x0, y0, x1, y1 int, bg state.Color) state.Color {
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	r0, g0, b0 := bg.Components()
	for y := y0; y < y1 && y < img.Rect.Max.Y; y++ {
		for x := x0; x < x1 && x < img.Rect.Max.X; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+3 : i+3]
			if p[0] != r0 || p[1] != g0 || p[2] != b0 {
				return state.Color(uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8)
			}
		}
	}
	return bg
}

func toTcell(c state.Color) tcell.Color {
	r, g, b := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ButtonForKey maps terminal keys onto the pad.
func ButtonForKey(ev *tcell.EventKey) (input.Buttons, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.ButtonUp, true
	case tcell.KeyDown:
		return input.ButtonDown, true
	case tcell.KeyLeft:
		return input.ButtonLeft, true
	case tcell.KeyRight:
		return input.ButtonRight, true
	case tcell.KeyEnter:
		return input.ButtonA, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', ' ':
			return input.ButtonA, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyHome:
		return true
	}
	return false
}

// PollEvents feeds key events into keys until the screen is finalized.
// It blocks; run it on its own goroutine.
func PollEvents(screen tcell.Screen, keys *input.KeyPad, quit func()) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if isQuit(ev) {
				quit()
				continue
			}
			if b, ok := ButtonForKey(ev); ok {
				keys.Press(b)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
