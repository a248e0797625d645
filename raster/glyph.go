// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bmfont/internal/cache"
)

// Options describes how a glyph is painted.
// Options is comparable and used as part of the cache key.
type Options struct {
	// Size is the font size in pixels per em.
	Size float64

	Fill color.NRGBA

	// Sharp in [0,100] boosts partial edge coverage; 0 leaves it unchanged.
	Sharp float64

	Stroke      bool
	StrokeWidth float64
	StrokeColor color.NRGBA

	Shadow        bool
	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64
	ShadowColor   color.NRGBA
}

// margin returns how far stroke and shadow can reach beyond the ink.
func (o Options) margin() int {
	m := 0
	if o.Stroke {
		m += int(math.Ceil(o.StrokeWidth / 2))
	}
	if o.Shadow {
		m += int(math.Ceil(o.ShadowBlur))
		m += int(math.Ceil(math.Max(math.Abs(o.ShadowOffsetX), math.Abs(o.ShadowOffsetY))))
	}
	return m
}

// DefaultCacheSize is the number of glyph bitmaps a Renderer keeps.
const DefaultCacheSize = 1024

type glyphKey struct {
	font   *Font
	letter rune
	opts   Options
}

// Renderer rasterizes font glyphs and caches the results.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	cache *cache.Cache[glyphKey, Bitmap]
}

// NewRenderer creates a renderer that caches up to capacity bitmaps.
// A capacity of 0 means unlimited.
func NewRenderer(capacity int) *Renderer {
	return &Renderer{
		cache: cache.New[glyphKey, Bitmap](capacity),
	}
}

// CacheStats returns the statistics of the bitmap cache.
func (r *Renderer) CacheStats() cache.Stats {
	return r.cache.Stats()
}

// Reset drops every cached bitmap. Statistics are kept.
func (r *Renderer) Reset() {
	r.cache.Clear()
}

// Rasterize renders the first rune of letter with the first font in fonts
// that has a glyph for it.
//
// A letter without visible ink (space, unmapped rune, empty string) yields
// an empty bitmap that still carries the cell size.
func (r *Renderer) Rasterize(fonts []*Font, letter string, opts Options) (Bitmap, error) {
	if opts.Size <= 0 || math.IsNaN(opts.Size) {
		return Bitmap{}, ErrInvalidSize
	}
	runes := []rune(letter)
	if len(runes) == 0 {
		return Bitmap{}, nil
	}

	key := glyphKey{font: pick(fonts, runes[0]), letter: runes[0], opts: opts}
	if bm, ok := r.cache.Get(key); ok {
		return bm, nil
	}

	bm, err := rasterize(key.font, key.letter, opts)
	if err != nil {
		return Bitmap{}, err
	}
	r.cache.Set(key, bm)
	return bm, nil
}

func rasterize(f *Font, ch rune, opts Options) (Bitmap, error) {
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Bitmap{}, fmt.Errorf("raster: failed to create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	bounds, advance, ok := face.GlyphBounds(ch)
	cell := image.Rect(0, -ascent, advance.Ceil(), descent)
	empty := Bitmap{FullWidth: cell.Dx(), FullHeight: cell.Dy()}
	if !ok {
		return empty, nil
	}

	ink := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
	if ink.Empty() {
		return empty, nil
	}

	// The canvas uses glyph coordinates: the origin is on the baseline.
	m := opts.margin()
	canvas := ink.Inset(-m)

	fill := image.NewAlpha(canvas)
	d := &font.Drawer{
		Dst:  fill,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{},
	}
	d.DrawString(string(ch))
	sharpen(fill, opts.Sharp)

	dst := image.NewNRGBA(canvas)
	body := fill

	var stroke *image.Alpha
	if opts.Stroke && opts.StrokeWidth > 0 {
		stroke = dilate(fill, opts.StrokeWidth/2)
		body = stroke
	}

	if opts.Shadow {
		dx := int(math.Round(opts.ShadowOffsetX))
		dy := int(math.Round(opts.ShadowOffsetY))
		shadow := boxBlur(shift(body, dx, dy), int(math.Ceil(opts.ShadowBlur)))
		xdraw.DrawMask(dst, canvas, uniform(opts.ShadowColor), image.Point{}, shadow, canvas.Min, xdraw.Over)
	}
	if stroke != nil {
		xdraw.DrawMask(dst, canvas, uniform(opts.StrokeColor), image.Point{}, stroke, canvas.Min, xdraw.Over)
	}
	xdraw.DrawMask(dst, canvas, uniform(opts.Fill), image.Point{}, fill, canvas.Min, xdraw.Over)

	return trimCell(dst, cell), nil
}
