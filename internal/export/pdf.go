package export

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"DrawBoard/internal/state"
)

// Metadata is printed in the page footer.
type Metadata struct {
	Session string
	Started time.Time
	Frames  uint64
}

// PDF writes a one-page snapshot of the drawing. One canvas pixel maps to
// one point; marks and segments are drawn the way the screen draws them,
// every point as a 3x3 square and every segment three pixels wide.
func PDF(path string, bounds state.Bounds, background state.Color, h *state.History, meta Metadata) error {
	const footer = 24.0
	w, ht := float64(bounds.Width), float64(bounds.Height)

	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: ht + footer},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetTitle("DrawBoard "+meta.Session, true)
	p.AddPage()

	r, g, b := background.Components()
	p.SetFillColor(int(r), int(g), int(b))
	p.Rect(0, 0, w, ht, "F")

	p.SetLineCapStyle("square")
	p.SetLineWidth(3)
	for i := 0; i < h.Len(); i++ {
		pt := h.At(i)
		setColor(p, pt.Color)
		p.Rect(float64(pt.X)-1, float64(pt.Y)-1, 3, 3, "F")
	}
	for i := 1; i < h.Len(); i++ {
		a, z := h.At(i-1), h.At(i)
		setColor(p, z.Color)
		p.Line(float64(a.X), float64(a.Y), float64(z.X), float64(z.Y))
	}

	p.SetFont("Helvetica", "", 9)
	p.SetTextColor(0, 0, 0)
	p.Text(4, ht+15, fmt.Sprintf("Session %s  started %s  frames %d  points %d/%d",
		meta.Session, meta.Started.Format("2006-01-02 15:04:05"), meta.Frames, h.Len(), h.Cap()))

	return p.OutputFileAndClose(path)
}

func setColor(p *gofpdf.Fpdf, c state.Color) {
	r, g, b := c.Components()
	p.SetDrawColor(int(r), int(g), int(b))
	p.SetFillColor(int(r), int(g), int(b))
}
