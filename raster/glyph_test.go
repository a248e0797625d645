// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return f
}

func black() Options {
	return Options{Size: 32, Fill: color.NRGBA{A: 255}}
}

func TestParseFont(t *testing.T) {
	f := testFont(t)
	if f.Family() == "" || f.Family() == "Unknown Font" {
		t.Errorf("Family() = %q, want a real name", f.Family())
	}
	if !f.HasGlyph('A') {
		t.Error("HasGlyph('A') = false")
	}
	if f.HasGlyph('\U0001F600') {
		t.Error("HasGlyph(emoji) = true, Go Regular has no emoji")
	}

	if _, err := ParseFont(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("ParseFont(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("ParseFont(garbage) should fail")
	}
}

func TestFamilyDistinguishesFaces(t *testing.T) {
	regular := testFont(t)
	bold, err := ParseFont(gobold.TTF)
	if err != nil {
		t.Fatalf("ParseFont(bold): %v", err)
	}
	if regular.Family() == bold.Family() {
		t.Errorf("regular and bold share family %q", regular.Family())
	}
}

func TestPick(t *testing.T) {
	f := testFont(t)
	if got := pick(nil, 'A'); got != DefaultFont() {
		t.Error("pick(nil) should fall back to the default font")
	}
	if got := pick([]*Font{f}, '\U0001F600'); got != f {
		t.Error("pick should fall back to the first font when none has the glyph")
	}
	if got := pick([]*Font{nil, f}, 'A'); got != f {
		t.Error("pick should skip nil fonts")
	}
}

func TestRasterizeLetter(t *testing.T) {
	r := NewRenderer(DefaultCacheSize)
	bm, err := r.Rasterize([]*Font{testFont(t)}, "A", black())
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if bm.Empty() {
		t.Fatal("bitmap for 'A' is empty")
	}
	if bm.Image.Bounds() != image.Rect(0, 0, bm.Width, bm.Height) {
		t.Errorf("Image bounds = %v, want %dx%d at origin", bm.Image.Bounds(), bm.Width, bm.Height)
	}
	if bm.Width > bm.FullWidth+2 {
		t.Errorf("Width %d much larger than advance %d", bm.Width, bm.FullWidth)
	}
	if bm.Height >= bm.FullHeight {
		t.Errorf("Height %d should be smaller than the line cell %d", bm.Height, bm.FullHeight)
	}
	// 'A' sits on the baseline, so the descent part of the cell is trimmed.
	if bm.Trim.Bottom <= 0 {
		t.Errorf("Trim.Bottom = %d, want > 0", bm.Trim.Bottom)
	}
	if got := bm.Trim.Left + bm.Width + bm.Trim.Right; got != bm.FullWidth {
		t.Errorf("Left+Width+Right = %d, want FullWidth %d", got, bm.FullWidth)
	}
	if got := bm.Trim.Top + bm.Height + bm.Trim.Bottom; got != bm.FullHeight {
		t.Errorf("Top+Height+Bottom = %d, want FullHeight %d", got, bm.FullHeight)
	}
}

func TestRasterizeSpace(t *testing.T) {
	r := NewRenderer(0)
	bm, err := r.Rasterize(nil, " ", black())
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if !bm.Empty() {
		t.Errorf("space should be empty, got %dx%d", bm.Width, bm.Height)
	}
	if bm.FullWidth <= 0 {
		t.Errorf("space FullWidth = %d, want its advance", bm.FullWidth)
	}
}

func TestRasterizeInvalid(t *testing.T) {
	r := NewRenderer(0)
	if _, err := r.Rasterize(nil, "A", Options{}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero size error = %v, want ErrInvalidSize", err)
	}
	bm, err := r.Rasterize(nil, "", black())
	if err != nil || !bm.Empty() || bm.FullWidth != 0 {
		t.Errorf("empty letter = %+v, %v", bm, err)
	}
}

func TestRasterizeEffectsGrow(t *testing.T) {
	r := NewRenderer(0)
	plain, err := r.Rasterize(nil, "H", black())
	if err != nil {
		t.Fatalf("Rasterize plain: %v", err)
	}

	stroked := black()
	stroked.Stroke = true
	stroked.StrokeWidth = 4
	stroked.StrokeColor = color.NRGBA{R: 255, A: 255}
	withStroke, err := r.Rasterize(nil, "H", stroked)
	if err != nil {
		t.Fatalf("Rasterize stroke: %v", err)
	}
	if withStroke.Width <= plain.Width || withStroke.Height <= plain.Height {
		t.Errorf("stroke %dx%d should exceed plain %dx%d", withStroke.Width, withStroke.Height, plain.Width, plain.Height)
	}

	shadowed := black()
	shadowed.Shadow = true
	shadowed.ShadowOffsetX = 3
	shadowed.ShadowOffsetY = 3
	shadowed.ShadowColor = color.NRGBA{A: 255}
	withShadow, err := r.Rasterize(nil, "H", shadowed)
	if err != nil {
		t.Fatalf("Rasterize shadow: %v", err)
	}
	if withShadow.Width < plain.Width+3 || withShadow.Height < plain.Height+3 {
		t.Errorf("shadow %dx%d should extend plain %dx%d by the offset", withShadow.Width, withShadow.Height, plain.Width, plain.Height)
	}
}

func TestRasterizeCaches(t *testing.T) {
	r := NewRenderer(DefaultCacheSize)
	f := testFont(t)
	for range 3 {
		if _, err := r.Rasterize([]*Font{f}, "g", black()); err != nil {
			t.Fatalf("Rasterize: %v", err)
		}
	}
	st := r.CacheStats()
	if st.Misses != 1 || st.Hits != 2 {
		t.Errorf("cache stats hits=%d misses=%d, want 2 and 1", st.Hits, st.Misses)
	}

	other := black()
	other.Size = 33
	if _, err := r.Rasterize([]*Font{f}, "g", other); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if st := r.CacheStats(); st.Len != 2 {
		t.Errorf("cache Len = %d, want 2 after a new size", st.Len)
	}
}

func TestRendererReset(t *testing.T) {
	r := NewRenderer(1)
	f := testFont(t)
	for _, letter := range []string{"a", "b", "a"} {
		if _, err := r.Rasterize([]*Font{f}, letter, black()); err != nil {
			t.Fatalf("Rasterize(%q): %v", letter, err)
		}
	}
	st := r.CacheStats()
	if st.Len != 1 || st.Evictions != 2 || st.Misses != 3 {
		t.Errorf("stats = %+v, want 1 entry, 2 evictions, 3 misses", st)
	}

	r.Reset()
	if _, err := r.Rasterize([]*Font{f}, "a", black()); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	st = r.CacheStats()
	if st.Misses != 4 || st.Hits != 0 {
		t.Errorf("after Reset hits=%d misses=%d, want 0 and 4", st.Hits, st.Misses)
	}
	if st.HitRate != 0 {
		t.Errorf("HitRate = %v, want 0", st.HitRate)
	}
}

func TestDilate(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 9, 9))
	src.SetAlpha(4, 4, color.Alpha{A: 255})

	dst := dilate(src, 2)
	for _, p := range []image.Point{{4, 4}, {2, 4}, {6, 4}, {4, 2}, {4, 6}, {3, 3}} {
		if dst.AlphaAt(p.X, p.Y).A != 255 {
			t.Errorf("dilate: pixel %v not covered", p)
		}
	}
	for _, p := range []image.Point{{1, 4}, {4, 7}, {0, 0}} {
		if dst.AlphaAt(p.X, p.Y).A != 0 {
			t.Errorf("dilate: pixel %v covered beyond radius", p)
		}
	}
	if src.AlphaAt(3, 4).A != 0 {
		t.Error("dilate modified its source")
	}
}

func TestShift(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 4, 4))
	src.SetAlpha(1, 1, color.Alpha{A: 200})
	src.SetAlpha(3, 3, color.Alpha{A: 100})

	dst := shift(src, 1, 2)
	if got := dst.AlphaAt(2, 3).A; got != 200 {
		t.Errorf("shifted pixel = %d, want 200", got)
	}
	if got := dst.AlphaAt(1, 1).A; got != 0 {
		t.Errorf("old position = %d, want 0", got)
	}
	// (3,3) moves out of bounds and is clipped.
	var sum int
	for _, a := range dst.Pix {
		sum += int(a)
	}
	if sum != 200 {
		t.Errorf("coverage sum = %d, want 200", sum)
	}
}

func TestBoxBlur(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 5, 5))
	src.SetAlpha(2, 2, color.Alpha{A: 255})

	if got := boxBlur(src, 0); got != src {
		t.Error("boxBlur with radius 0 should return its input")
	}

	dst := boxBlur(src, 1)
	center := dst.AlphaAt(2, 2).A
	// 255/3 = 85 horizontally, then 85/3 = 28 vertically.
	if center != 28 {
		t.Errorf("center = %d, want 28", center)
	}
	if corner := dst.AlphaAt(1, 1).A; corner != center {
		t.Errorf("neighbour = %d, want %d", corner, center)
	}
	if far := dst.AlphaAt(0, 0).A; far != 0 {
		t.Errorf("far pixel = %d, want 0", far)
	}
}

func TestSharpen(t *testing.T) {
	a := image.NewAlpha(image.Rect(0, 0, 3, 1))
	a.Pix = []uint8{0, 64, 255}

	sharpen(a, 0)
	if a.Pix[1] != 64 {
		t.Fatalf("sharp 0 changed coverage to %d", a.Pix[1])
	}

	sharpen(a, 80)
	if a.Pix[0] != 0 || a.Pix[2] != 255 {
		t.Errorf("sharpen changed empty or full coverage: %v", a.Pix)
	}
	if a.Pix[1] <= 64 {
		t.Errorf("sharpen should boost partial coverage, got %d", a.Pix[1])
	}
}
