// Package raster draws the point history: every point as a 3x3 mark and
// every consecutive pair as a thickened digital line.
package raster

import "DrawBoard/internal/state"

// Surface receives single pixels. Implementations must ignore
// coordinates outside their area; marks near the edge hang over it.
type Surface interface {
	PutPixel(x, y int, c state.Color)
}

// Points is the read-only view of a history the render pass needs.
type Points interface {
	Len() int
	At(i int) state.Point
}

// DrawPoint paints the 3x3 neighborhood centered on (x, y).
func DrawPoint(s Surface, x, y int, c state.Color) {
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			s.PutPixel(x+i, y+j, c)
		}
	}
}

// DrawLine joins two points with a line as thick as DrawPoint's mark.
func DrawLine(s Surface, x0, y0, x1, y1 int, c state.Color) {
	Line(x0, y0, x1, y1, func(x, y int) {
		DrawPoint(s, x, y, c)
	})
}

// Line walks the integer Bresenham path from (x0, y0) to (x1, y1),
// both endpoints included, calling visit once per pixel. The path is
// 8-connected. Endpoints are walked in a canonical order so a segment
// covers the same pixels whichever way round it is given.
func Line(x0, y0, x1, y1 int, visit func(x, y int)) {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Render replays the whole history onto s: every point, then a line from
// each point to the next in the later point's color.
func Render(s Surface, h Points) {
	n := h.Len()
	for i := 0; i < n; i++ {
		p := h.At(i)
		DrawPoint(s, p.X, p.Y, p.Color)
	}
	for i := 1; i < n; i++ {
		a, b := h.At(i-1), h.At(i)
		DrawLine(s, a.X, a.Y, b.X, b.Y, b.Color)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
