package pack

import (
	"cmp"
	"slices"
)

// Fixed packs rects into a single bin of width+spacing × height+spacing.
//
// The spacing allowance lets the trailing spacing of the last column and
// row sit outside the nominal bounds. Rectangles that find no free region
// are returned in Result.Failed.
func Fixed(rects []Rect, width, height, spacing int) Result {
	res := place(rects, width+spacing, height+spacing)
	res.Width, res.Height = extents(res.Placed, spacing)
	res.Edge = width
	return res
}

// Auto finds the smallest square bin that holds every rectangle.
//
// The search keeps a lower bound low (no bin can be smaller than the
// largest rectangle side) and an upper bound high (the sum of all widths
// and heights). While high-low >= 2 it packs at E = low + ceil((high-low)/2);
// a failed attempt raises low to E, a successful one is recorded and
// lowers high by floor((high-low)/2). The last successful attempt is
// returned.
//
// If no attempt succeeded every rectangle is reported as failed. This
// happens when the interval is already narrower than 2, as for a single
// rectangle with a side of 1.
func Auto(rects []Rect, spacing int) Result {
	low, high := bounds(rects)

	var (
		best    Result
		success bool
	)
	for high-low >= 2 {
		edge := low + (high-low+1)/2
		res := place(rects, edge, edge)
		if res.Overflow() {
			low = edge
			continue
		}
		res.Edge = edge
		best, success = res, true
		high -= (high - low) / 2
	}

	if !success {
		best = failAll(rects)
	}

	best.Width, best.Height = extents(best.Placed, spacing)
	return best
}

// bounds returns the search interval of Auto.
func bounds(rects []Rect) (low, high int) {
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		low = max(low, r.W, r.H)
		high += r.W + r.H
	}
	return low, high
}

// place runs one guillotine pass. Input is never modified.
func place(rects []Rect, width, height int) Result {
	sorted := sortByHeight(rects)
	bin := NewBin(width, height)

	res := Result{
		Placed: make([]Rect, 0, len(sorted)),
	}
	for _, r := range sorted {
		if r.Empty() {
			r.X, r.Y = 0, 0
			res.Placed = append(res.Placed, r)
			continue
		}
		x, y, ok := bin.Insert(r.W, r.H)
		if !ok {
			r.X, r.Y = 0, 0
			res.Failed = append(res.Failed, r)
			continue
		}
		r.X, r.Y = x, y
		res.Placed = append(res.Placed, r)
	}
	res.Utilization = bin.Utilization()
	return res
}

// failAll reports every non-empty rectangle as failed.
func failAll(rects []Rect) Result {
	var res Result
	for _, r := range sortByHeight(rects) {
		r.X, r.Y = 0, 0
		if r.Empty() {
			res.Placed = append(res.Placed, r)
		} else {
			res.Failed = append(res.Failed, r)
		}
	}
	return res
}

// sortByHeight returns a copy of rects ordered by descending height,
// keeping input order on ties.
func sortByHeight(rects []Rect) []Rect {
	sorted := slices.Clone(rects)
	slices.SortStableFunc(sorted, func(a, b Rect) int {
		return cmp.Compare(b.H, a.H)
	})
	return sorted
}

// extents returns the used area of placed minus one spacing unit.
func extents(placed []Rect, spacing int) (width, height int) {
	for _, r := range placed {
		if r.Empty() {
			continue
		}
		width = max(width, r.Right())
		height = max(height, r.Bottom())
	}
	return max(width-spacing, 0), max(height-spacing, 0)
}
