package bmfont

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/gogpu/bmfont/pack"
	"github.com/gogpu/bmfont/raster"
)

// stubRasterizer returns opaque boxes of fixed sizes. Letters without a
// size get an empty bitmap with a 5×10 cell, like a space.
type stubRasterizer struct {
	sizes map[string]image.Point
	calls atomic.Int64
}

func newStub(sizes map[string]image.Point) *stubRasterizer {
	return &stubRasterizer{sizes: sizes}
}

func (s *stubRasterizer) RasterizeGlyph(letter string, _ *Style) (raster.Bitmap, error) {
	s.calls.Add(1)
	sz, ok := s.sizes[letter]
	if !ok {
		return raster.Bitmap{FullWidth: 5, FullHeight: 10}, nil
	}
	return box(sz.X, sz.Y, color.NRGBA{R: 255, A: 255}), nil
}

func box(w, h int, c color.NRGBA) raster.Bitmap {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return raster.Bitmap{Image: img, Width: w, Height: h, FullWidth: w, FullHeight: h}
}

type stubMetrics struct{}

func (stubMetrics) Baselines(*Style) raster.Baselines {
	return raster.Baselines{Alphabetic: 7, Bottom: 9, LineHeight: 12}
}

type stubKerning struct {
	pairs []KerningPair
}

func (k stubKerning) Kerning(_ *Style, letters []string) []KerningPair {
	var out []KerningPair
	for _, p := range k.pairs {
		var first, second bool
		for _, l := range letters {
			first = first || l == p.First
			second = second || l == p.Second
		}
		if first && second {
			out = append(out, p)
		}
	}
	return out
}

// newTestAtlas builds an atlas over the stub collaborators.
func newTestAtlas(t *testing.T, text string, sizes map[string]image.Point, opts ...Option) (*Atlas, *stubRasterizer) {
	t.Helper()
	stub := newStub(sizes)
	base := []Option{
		WithText(text),
		WithFontRasterizer(stub),
		WithMetricsProvider(stubMetrics{}),
		WithKerningProvider(nil),
		WithWorkers(2),
	}
	a, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a, stub
}

// pngBuffer encodes a w×h opaque image inside a transparent border.
func pngBuffer(t *testing.T, w, h, border int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w+2*border, h+2*border))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x+border, y+border, color.NRGBA{G: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// placedGlyph finds letter in a layout.
func placedGlyph(t *testing.T, l Layout, letter string) PlacedGlyph {
	t.Helper()
	for _, g := range l.Glyphs {
		if g.Letter == letter {
			return g
		}
	}
	t.Fatalf("letter %q not in layout", letter)
	return PlacedGlyph{}
}

// assertNoOverlap checks that the padded rectangles of placed glyphs are
// pairwise disjoint.
func assertNoOverlap(t *testing.T, l Layout) {
	t.Helper()
	var rects []pack.Rect
	for _, g := range l.Glyphs {
		if g.Width <= 0 || g.Height <= 0 || g.Overflow {
			continue
		}
		rects = append(rects, pack.Rect{
			X: g.X,
			Y: g.Y,
			W: g.Width + 2*l.Padding + l.Spacing,
			H: g.Height + 2*l.Padding + l.Spacing,
		})
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Errorf("rects %+v and %+v overlap", rects[i], rects[j])
			}
		}
	}
}
