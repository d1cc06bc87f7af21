package state

import "fmt"

// Color is a packed 0xRRGGBBAA value, the layout the screen buffers use.
// The alpha byte is carried along but surfaces are opaque.
type Color uint32

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>24) & 0xFF
	g = uint32(c>>16) & 0xFF
	b = uint32(c>>8) & 0xFF
	r |= r << 8
	g |= g << 8
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Components returns the 8-bit red, green and blue channels.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8)
}

func (c Color) String() string {
	return fmt.Sprintf("%08X", uint32(c))
}

// Point is one recorded cursor sample.
type Point struct {
	X     int
	Y     int
	Color Color
}

type Swatch struct {
	Color Color
	Name  string
}

// Palette is the fixed, ordered set of colors the action button cycles through.
type Palette []Swatch

func DefaultPalette() Palette {
	return Palette{
		{Color: 0xFFFFFF00, Name: "WHITE"},
		{Color: 0xFF000000, Name: "RED"},
		{Color: 0x00FF0000, Name: "GREEN"},
		{Color: 0x0000FF00, Name: "BLUE"},
	}
}

// Selector holds the active palette index.
type Selector struct {
	palette Palette
	index   int
}

func NewSelector(p Palette) *Selector {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	return &Selector{palette: p}
}

// Cycle advances to the next color, wrapping at the end of the palette.
func (s *Selector) Cycle() {
	s.index = (s.index + 1) % len(s.palette)
}

func (s *Selector) Index() int { return s.index }

func (s *Selector) Active() Swatch { return s.palette[s.index] }

func (s *Selector) Palette() Palette { return s.palette }
