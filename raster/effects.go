// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"
)

// dilate grows the coverage of src by radius pixels (a round brush).
// The result has the same bounds as src.
func dilate(src *image.Alpha, radius float64) *image.Alpha {
	if radius <= 0 {
		return cloneAlpha(src)
	}

	type offset struct{ dx, dy int }
	r := int(math.Ceil(radius))
	limit := (radius + 0.5) * (radius + 0.5)
	var brush []offset
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= limit {
				brush = append(brush, offset{dx, dy})
			}
		}
	}

	b := src.Bounds()
	dst := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var best uint8
			for _, o := range brush {
				p := image.Pt(x+o.dx, y+o.dy)
				if !p.In(b) {
					continue
				}
				if a := src.AlphaAt(p.X, p.Y).A; a > best {
					best = a
					if best == 0xff {
						break
					}
				}
			}
			if best > 0 {
				dst.Pix[dst.PixOffset(x, y)] = best
			}
		}
	}
	return dst
}

// shift moves the coverage of src by (dx, dy), clipping to its bounds.
func shift(src *image.Alpha, dx, dy int) *image.Alpha {
	b := src.Bounds()
	dst := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sy := y - dy
		if sy < b.Min.Y || sy >= b.Max.Y {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			sx := x - dx
			if sx < b.Min.X || sx >= b.Max.X {
				continue
			}
			dst.Pix[dst.PixOffset(x, y)] = src.Pix[src.PixOffset(sx, sy)]
		}
	}
	return dst
}

// boxBlur applies a separable box blur of the given radius.
// Pixels outside the bounds count as transparent.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return src
	}
	b := src.Bounds()
	tmp := image.NewAlpha(b)
	dst := image.NewAlpha(b)
	window := 2*radius + 1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum := 0
			for k := x - radius; k <= x+radius; k++ {
				if k >= b.Min.X && k < b.Max.X {
					sum += int(src.Pix[src.PixOffset(k, y)])
				}
			}
			tmp.Pix[tmp.PixOffset(x, y)] = uint8(sum / window)
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum := 0
			for k := y - radius; k <= y+radius; k++ {
				if k >= b.Min.Y && k < b.Max.Y {
					sum += int(tmp.Pix[tmp.PixOffset(x, k)])
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = uint8(sum / window)
		}
	}
	return dst
}

// sharpen remaps coverage in place with a gamma of 1 - sharp/200.
// Empty and full coverage are preserved, so ink bounds never change.
func sharpen(a *image.Alpha, sharp float64) {
	if sharp <= 0 {
		return
	}
	gamma := 1 - min(sharp, 100)/200

	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, gamma)))
	}
	for i, v := range a.Pix {
		a.Pix[i] = lut[v]
	}
}

func cloneAlpha(src *image.Alpha) *image.Alpha {
	dst := image.NewAlpha(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
