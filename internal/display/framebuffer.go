// Package display holds the in-memory screens the frame loop draws on.
// A Framebuffer is double buffered: drawing goes to the back buffer and
// Present flips it to the front buffer that frontends read.
package display

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"DrawBoard/internal/state"
)

const bytesPerPixel = 4

// Character cell of the overlay font.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

var ErrNotBound = errors.New("display: no buffer bound")

// TextColor is used for overlay text.
var TextColor state.Color = 0xFFFFFF00

type Framebuffer struct {
	name    string
	width   int
	height  int
	enabled bool

	back *image.RGBA

	mu        sync.RWMutex
	front     *image.RGBA
	onPresent func()
}

func NewFramebuffer(name string, width, height int) *Framebuffer {
	return &Framebuffer{name: name, width: width, height: height}
}

func (f *Framebuffer) Name() string { return f.name }

func (f *Framebuffer) Size() (width, height int) { return f.width, f.height }

// RequiredBufferSize covers both the back and the front buffer.
func (f *Framebuffer) RequiredBufferSize() int {
	return 2 * f.width * f.height * bytesPerPixel
}

// Bind makes buf the backing store. buf must be at least
// RequiredBufferSize bytes and stays owned by the caller.
func (f *Framebuffer) Bind(buf []byte) error {
	need := f.RequiredBufferSize()
	if len(buf) < need {
		return fmt.Errorf("display: %s needs 0x%X bytes, got 0x%X", f.name, need, len(buf))
	}
	half := need / 2
	rect := image.Rect(0, 0, f.width, f.height)
	stride := f.width * bytesPerPixel

	f.mu.Lock()
	defer f.mu.Unlock()
	f.back = &image.RGBA{Pix: buf[:half:half], Stride: stride, Rect: rect}
	f.front = &image.RGBA{Pix: buf[half:need:need], Stride: stride, Rect: rect}
	return nil
}

// Unbind drops every reference to the bound buffer.
func (f *Framebuffer) Unbind() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.back = nil
	f.front = nil
	f.enabled = false
}

func (f *Framebuffer) Enable(on bool) { f.enabled = on }

func (f *Framebuffer) Enabled() bool { return f.enabled }

// OnPresent registers a callback run after every flip.
func (f *Framebuffer) OnPresent(fn func()) {
	f.mu.Lock()
	f.onPresent = fn
	f.mu.Unlock()
}

// Clear fills the back buffer with c.
func (f *Framebuffer) Clear(c state.Color) {
	if f.back == nil {
		return
	}
	r, g, b := c.Components()
	pix := f.back.Pix
	row := pix[:f.back.Stride]
	for i := 0; i < len(row); i += bytesPerPixel {
		row[i], row[i+1], row[i+2], row[i+3] = r, g, b, 0xFF
	}
	for off := f.back.Stride; off < len(pix); off += f.back.Stride {
		copy(pix[off:off+f.back.Stride], row)
	}
}

// PutPixel writes one pixel to the back buffer. Coordinates off the
// screen are ignored.
func (f *Framebuffer) PutPixel(x, y int, c state.Color) {
	if f.back == nil || x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	i := f.back.PixOffset(x, y)
	r, g, b := c.Components()
	p := f.back.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, b, 0xFF
}

// PutText draws s on the character grid at (col, row).
func (f *Framebuffer) PutText(col, row int, s string) {
	if f.back == nil {
		return
	}
	d := &font.Drawer{
		Dst:  f.back,
		Src:  image.NewUniform(TextColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(col*GlyphWidth, row*GlyphHeight+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}

// Present flips the back buffer to the front. A disabled screen keeps
// showing whatever it showed before.
func (f *Framebuffer) Present() error {
	if f.back == nil {
		return fmt.Errorf("%w: %s", ErrNotBound, f.name)
	}
	if !f.enabled {
		return nil
	}
	f.mu.Lock()
	copy(f.front.Pix, f.back.Pix)
	fn := f.onPresent
	f.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// View runs fn with the front buffer held stable. fn must not keep img.
func (f *Framebuffer) View(fn func(img *image.RGBA)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.front == nil {
		return
	}
	fn(f.front)
}

// At reads a presented pixel.
func (f *Framebuffer) At(x, y int) state.Color {
	var c state.Color
	f.View(func(img *image.RGBA) {
		if !(image.Point{X: x, Y: y}.In(img.Rect)) {
			return
		}
		i := img.PixOffset(x, y)
		p := img.Pix[i : i+3]
		c = state.Color(uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8)
	})
	return c
}
