package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"DrawBoard/internal/display"
)

// ScreenWidget shows the front buffer of one framebuffer, scaled with
// nearest-neighbor so single pixels stay crisp.
type ScreenWidget struct {
	widget.BaseWidget
	fb    *display.Framebuffer
	frame *image.RGBA
	image *canvas.Image
}

var _ fyne.Widget = (*ScreenWidget)(nil)

func NewScreenWidget(fb *display.Framebuffer, scale int) *ScreenWidget {
	if scale < 1 {
		scale = 1
	}
	w, h := fb.Size()
	s := &ScreenWidget{
		fb:    fb,
		frame: image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	s.image = canvas.NewImageFromImage(s.frame)
	s.image.FillMode = canvas.ImageFillContain
	s.image.ScaleMode = canvas.ImageScalePixels
	s.image.SetMinSize(fyne.NewSize(float32(w*scale), float32(h*scale)))
	s.ExtendBaseWidget(s)

	fb.OnPresent(func() {
		fyne.Do(s.sync)
	})
	return s
}

// sync copies the presented frame into the widget's own image. It runs on
// the fyne thread so the renderer never sees a half-copied frame.
func (s *ScreenWidget) sync() {
	s.fb.View(func(img *image.RGBA) {
		copy(s.frame.Pix, img.Pix)
	})
	s.image.Refresh()
}

func (s *ScreenWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.image)
}
