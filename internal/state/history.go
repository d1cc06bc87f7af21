package state

import "iter"

// MaxPoints is the history capacity used when none is configured.
const MaxPoints = 10000

// History is the append-only record of every point drawn since startup.
// Its storage is allocated once; once full, further points are dropped.
type History struct {
	points []Point
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = MaxPoints
	}
	return &History{points: make([]Point, 0, capacity)}
}

// Record appends a point and reports whether there was room for it.
func (h *History) Record(x, y int, c Color) bool {
	if len(h.points) >= cap(h.points) {
		return false
	}
	h.points = append(h.points, Point{X: x, Y: y, Color: c})
	return true
}

func (h *History) Len() int { return len(h.points) }

func (h *History) Cap() int { return cap(h.points) }

// Full reports whether Record will drop every further point.
func (h *History) Full() bool { return len(h.points) == cap(h.points) }

func (h *History) At(i int) Point { return h.points[i] }

// All yields the points in drawing order.
func (h *History) All() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range h.points {
			if !yield(p) {
				return
			}
		}
	}
}
