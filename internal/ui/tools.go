package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"DrawBoard/internal/state"
)

var (
	swatchBorder = color.Gray{Y: 150}
	activeBorder = color.NRGBA{R: 255, G: 200, A: 255}
)

// --- Color swatch ---
type colorSwatch struct {
	widget.BaseWidget
	Color  color.Color
	border *canvas.Rectangle
}

func newColorSwatch(c color.Color) *colorSwatch {
	s := &colorSwatch{Color: c}
	s.border = canvas.NewRectangle(color.Transparent)
	s.border.StrokeColor = swatchBorder
	s.border.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) setActive(on bool) {
	if on {
		s.border.StrokeColor = activeBorder
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = swatchBorder
		s.border.StrokeWidth = 1
	}
	s.border.Refresh()
}

// PaletteBar shows the palette with the active color outlined, the
// color's name and how full the history is.
type PaletteBar struct {
	palette  state.Palette
	swatches []*colorSwatch
	name     *widget.Label
	points   *widget.Label
	active   int
	content  fyne.CanvasObject
}

func NewPaletteBar(p state.Palette) *PaletteBar {
	b := &PaletteBar{
		palette: p,
		name:    widget.NewLabel(""),
		points:  widget.NewLabel(""),
		active:  -1,
	}
	colorBox := container.NewHBox()
	for _, s := range p {
		sw := newColorSwatch(s.Color)
		b.swatches = append(b.swatches, sw)
		colorBox.Add(sw)
	}
	b.content = container.NewHBox(
		widget.NewLabel("Color:"),
		colorBox,
		b.name,
		layout.NewSpacer(),
		b.points,
	)
	b.Update(0, 0, 0)
	return b
}

func (b *PaletteBar) Object() fyne.CanvasObject { return b.content }

// Update must run on the fyne thread.
func (b *PaletteBar) Update(active, points, capacity int) {
	if active != b.active && active >= 0 && active < len(b.swatches) {
		if b.active >= 0 {
			b.swatches[b.active].setActive(false)
		}
		b.swatches[active].setActive(true)
		b.active = active
		b.name.SetText(b.palette[active].Name)
	}
	b.points.SetText(fmt.Sprintf("%d/%d", points, capacity))
}

// Active is the index of the outlined swatch.
func (b *PaletteBar) Active() int { return b.active }
