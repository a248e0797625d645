package pack

// Rect is a rectangle to place or a placed rectangle.
// ID is opaque to this package and is carried through unchanged so callers
// can map results back to their own items.
type Rect struct {
	ID int

	// X, Y are the top-left corner inside the bin. Zero before placement.
	X, Y int

	// W, H are the size in pixels, including any padding or spacing the
	// caller wants reserved.
	W, H int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps reports whether r and o share any area. Touching edges do not
// count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Result is the outcome of a packing pass.
type Result struct {
	// Placed holds the rectangles that received a position, in placement
	// order. Empty rectangles are reported here at (0,0).
	Placed []Rect

	// Failed holds the rectangles that did not fit, in input order after
	// sorting.
	Failed []Rect

	// Width and Height are the used extents of the placed rectangles minus
	// one spacing unit, never negative.
	Width, Height int

	// Edge is the square bin edge of the chosen attempt in Auto mode, or
	// the bin width in Fixed mode.
	Edge int

	// Utilization is the occupied fraction of the bin the rectangles were
	// placed in, 0 when nothing was placed.
	Utilization float64
}

// Overflow reports whether at least one rectangle could not be placed.
func (r Result) Overflow() bool {
	return len(r.Failed) > 0
}
