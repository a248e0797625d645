// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Baselines holds baseline offsets measured down from the top of the line
// box, in pixels, plus the line height.
type Baselines struct {
	Top         float64 `json:"top"`
	Hanging     float64 `json:"hanging"`
	Middle      float64 `json:"middle"`
	Alphabetic  float64 `json:"alphabetic"`
	Ideographic float64 `json:"ideographic"`
	Bottom      float64 `json:"bottom"`

	// LineHeight is ascent + descent + line gap.
	LineHeight float64 `json:"lineHeight"`
}

// Min returns the smallest baseline offset.
func (b Baselines) Min() float64 {
	return min(b.Top, b.Hanging, b.Middle, b.Alphabetic, b.Ideographic, b.Bottom)
}

// Max returns the largest baseline offset.
func (b Baselines) Max() float64 {
	return max(b.Top, b.Hanging, b.Middle, b.Alphabetic, b.Ideographic, b.Bottom)
}

// ComputeBaselines derives the baselines of f at size pixels per em.
// A nil font uses the default font.
func ComputeBaselines(f *Font, size float64) (Baselines, error) {
	if size <= 0 {
		return Baselines{}, ErrInvalidSize
	}
	if f == nil {
		f = DefaultFont()
	}

	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Baselines{}, fmt.Errorf("raster: failed to create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)

	capHeight := fixedToFloat64(m.CapHeight)
	if capHeight <= 0 {
		capHeight = ascent
	}
	xHeight := fixedToFloat64(m.XHeight)
	if xHeight <= 0 {
		xHeight = ascent / 2
	}

	return Baselines{
		Top:         0,
		Hanging:     ascent - capHeight,
		Middle:      ascent - xHeight/2,
		Alphabetic:  ascent,
		Ideographic: ascent + descent,
		Bottom:      ascent + descent,
		LineHeight:  fixedToFloat64(m.Height),
	}, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
