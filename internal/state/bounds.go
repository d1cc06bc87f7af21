package state

// Bounds is the drawable area, [0, Width) x [0, Height).
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Clamp pulls a coordinate back inside the area.
func (b Bounds) Clamp(x, y int) (int, int) {
	return clamp(x, 0, b.Width-1), clamp(y, 0, b.Height-1)
}

func (b Bounds) Center() (int, int) {
	return b.Width / 2, b.Height / 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Cursor is the pen position. It is not part of the history.
type Cursor struct {
	X int
	Y int
}

// CenteredCursor seeds the cursor in the middle of the area.
func CenteredCursor(b Bounds) Cursor {
	x, y := b.Center()
	return Cursor{X: x, Y: y}
}

// Move applies a displacement and clamps the result to b.
func (c *Cursor) Move(dx, dy int, b Bounds) {
	c.X, c.Y = b.Clamp(c.X+dx, c.Y+dy)
}
