package pack

import "math"

// Bin is a guillotine rectangle allocator.
//
// The bin keeps a list of disjoint free regions. Insert picks the free
// region where the rectangle leaves the smallest short-side remainder,
// places the rectangle at its top-left corner and splits what is left of
// the region into a bottom and a right part along the shorter leftover
// axis. Free regions that line up exactly are merged back together.
//
// Because free regions never overlap, placed rectangles never overlap
// either.
type Bin struct {
	width  int
	height int
	free   []Rect

	usedArea int
}

// NewBin creates an empty bin of the given size.
// Non-positive dimensions produce a bin that accepts nothing.
func NewBin(width, height int) *Bin {
	b := &Bin{
		width:  width,
		height: height,
		free:   make([]Rect, 0, 16),
	}
	b.Reset()
	return b
}

// Reset clears all placements.
func (b *Bin) Reset() {
	b.free = b.free[:0]
	b.usedArea = 0
	if b.width > 0 && b.height > 0 {
		b.free = append(b.free, Rect{W: b.width, H: b.height})
	}
}

// Insert finds space for a w×h rectangle.
// Returns the top-left position and true, or -1, -1, false if no free
// region is large enough.
func (b *Bin) Insert(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, true
	}

	best := -1
	bestShort, bestLong := math.MaxInt, math.MaxInt
	for i, f := range b.free {
		if w > f.W || h > f.H {
			continue
		}
		leftoverW := f.W - w
		leftoverH := f.H - h
		short := min(leftoverW, leftoverH)
		long := max(leftoverW, leftoverH)
		if short < bestShort || (short == bestShort && long < bestLong) {
			best = i
			bestShort, bestLong = short, long
		}
	}
	if best < 0 {
		return -1, -1, false
	}

	region := b.free[best]
	b.free = append(b.free[:best], b.free[best+1:]...)
	b.split(region, w, h)
	b.merge()

	b.usedArea += w * h
	return region.X, region.Y, true
}

// split cuts the remainder of region after placing w×h at its corner.
func (b *Bin) split(region Rect, w, h int) {
	leftoverW := region.W - w
	leftoverH := region.H - h

	bottom := Rect{X: region.X, Y: region.Y + h, H: leftoverH}
	right := Rect{X: region.X + w, Y: region.Y, W: leftoverW}

	// Shorter leftover axis: a horizontal cut gives the full width to
	// the bottom part.
	if leftoverW <= leftoverH {
		bottom.W = region.W
		right.H = h
	} else {
		bottom.W = w
		right.H = region.H
	}

	if !bottom.Empty() {
		b.free = append(b.free, bottom)
	}
	if !right.Empty() {
		b.free = append(b.free, right)
	}
}

// merge joins pairs of free regions that form a larger rectangle.
func (b *Bin) merge() {
	for i := 0; i < len(b.free); i++ {
		for j := i + 1; j < len(b.free); j++ {
			a, c := b.free[i], b.free[j]
			merged, ok := join(a, c)
			if !ok {
				continue
			}
			b.free[i] = merged
			b.free = append(b.free[:j], b.free[j+1:]...)
			j = i
		}
	}
}

// join returns the union of a and c when they share a full edge.
func join(a, c Rect) (Rect, bool) {
	if a.W == c.W && a.X == c.X {
		if a.Bottom() == c.Y {
			return Rect{X: a.X, Y: a.Y, W: a.W, H: a.H + c.H}, true
		}
		if c.Bottom() == a.Y {
			return Rect{X: a.X, Y: c.Y, W: a.W, H: a.H + c.H}, true
		}
	}
	if a.H == c.H && a.Y == c.Y {
		if a.Right() == c.X {
			return Rect{X: a.X, Y: a.Y, W: a.W + c.W, H: a.H}, true
		}
		if c.Right() == a.X {
			return Rect{X: c.X, Y: a.Y, W: a.W + c.W, H: a.H}, true
		}
	}
	return Rect{}, false
}

// Free returns a copy of the current free regions.
func (b *Bin) Free() []Rect {
	out := make([]Rect, len(b.free))
	copy(out, b.free)
	return out
}

// Utilization returns the fraction of the bin that is occupied (0.0 to 1.0).
func (b *Bin) Utilization() float64 {
	if b.width <= 0 || b.height <= 0 {
		return 0
	}
	return float64(b.usedArea) / float64(b.width*b.height)
}
