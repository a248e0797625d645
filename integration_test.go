package bmfont

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/bmfont/raster"
)

// These tests run the default collaborators from package raster.

func newDefaultAtlas(t *testing.T, opts ...Option) *Atlas {
	t.Helper()
	a, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestDefaultCollaborators(t *testing.T) {
	style := DefaultStyle()
	style.Size = 24
	a := newDefaultAtlas(t, WithText("Hello AV"), WithStyle(style))

	l := a.Layout()
	if l.Overflow {
		t.Fatal("unexpected overflow")
	}
	if l.Width <= 0 || l.Height <= 0 {
		t.Fatalf("atlas size %dx%d", l.Width, l.Height)
	}
	assertNoOverlap(t, l)

	if l.Baselines.Alphabetic <= 0 || l.Baselines.LineHeight <= 0 {
		t.Errorf("baselines = %+v", l.Baselines)
	}
	space := placedGlyph(t, l, " ")
	if space.Width != 0 || space.FontWidth <= 0 {
		t.Errorf("space = %+v, want empty with an advance", space)
	}
	h := placedGlyph(t, l, "H")
	if h.Width <= 0 || h.Height <= 0 {
		t.Errorf("H = %+v, want ink", h)
	}

	img := a.Render()
	var ink bool
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("rendered atlas is empty")
	}
}

func TestDefaultCollaboratorsStyleChange(t *testing.T) {
	style := DefaultStyle()
	style.Size = 16
	a := newDefaultAtlas(t, WithText("H"), WithStyle(style))
	small, _ := a.Glyph("H")

	a.UpdateStyle(func(s *Style) { s.Size = 48 })
	large, _ := a.Glyph("H")
	if large.Height <= small.Height*2 {
		t.Errorf("H height %d at 48px, %d at 16px", large.Height, small.Height)
	}

	a.UpdateStyle(func(s *Style) {
		s.UseStroke = true
		s.Stroke.Width = 6
	})
	stroked, _ := a.Glyph("H")
	if stroked.Width <= large.Width {
		t.Errorf("stroke width %d, plain %d", stroked.Width, large.Width)
	}
}

func TestAddFont(t *testing.T) {
	a := newDefaultAtlas(t, WithText("Ab"))

	if err := a.AddFontData(goregular.TTF); err != nil {
		t.Fatalf("AddFontData: %v", err)
	}
	err := a.AddFontData(goregular.TTF)
	if !errors.Is(err, ErrDuplicateFont) {
		t.Fatalf("second AddFontData = %v, want ErrDuplicateFont", err)
	}
	var dup *DuplicateFontError
	if !errors.As(err, &dup) || dup.Family == "" {
		t.Errorf("error = %#v, want *DuplicateFontError with a family", err)
	}
	if n := len(a.Style().Fonts); n != 1 {
		t.Errorf("style has %d fonts after a rejected add, want 1", n)
	}

	if err := a.AddFontData(gobold.TTF); err != nil {
		t.Fatalf("AddFontData(bold): %v", err)
	}
	st := a.Style()
	families := st.Families()
	if len(families) != 2 {
		t.Fatalf("families = %v", families)
	}

	if !a.RemoveFont(families[0]) {
		t.Error("RemoveFont = false")
	}
	if a.RemoveFont(families[0]) {
		t.Error("second RemoveFont = true")
	}
	st = a.Style()
	if got := st.Families(); len(got) != 1 || got[0] != families[1] {
		t.Errorf("families after remove = %v", got)
	}

	if err := a.AddFontData(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("AddFontData(nil) = %v, want ErrEmptyFontData", err)
	}
	if err := a.AddFont(nil); !errors.Is(err, ErrNilFont) {
		t.Errorf("AddFont(nil) = %v, want ErrNilFont", err)
	}
}

func TestUpdateStyleRejectsDuplicateFont(t *testing.T) {
	a := newDefaultAtlas(t, WithText("A"))
	if err := a.AddFontData(goregular.TTF); err != nil {
		t.Fatalf("AddFontData: %v", err)
	}
	before := a.Style()

	err := a.UpdateStyle(func(s *Style) {
		s.Size = 10
		s.Fonts = append(s.Fonts, s.Fonts[0])
	})
	var dup *DuplicateFontError
	if !errors.As(err, &dup) || dup.Family != before.Families()[0] {
		t.Fatalf("UpdateStyle = %v, want *DuplicateFontError", err)
	}
	after := a.Style()
	if after.Size != before.Size || len(after.Fonts) != 1 {
		t.Errorf("style changed by a rejected update: size %v, %d fonts", after.Size, len(after.Fonts))
	}

	err = a.UpdateStyle(func(s *Style) { s.Fonts = append(s.Fonts, nil) })
	if !errors.Is(err, ErrNilFont) {
		t.Errorf("UpdateStyle with nil font = %v, want ErrNilFont", err)
	}
}

func TestNewRejectsDuplicateFont(t *testing.T) {
	f, err := raster.ParseFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	style := DefaultStyle()
	style.Fonts = []*raster.Font{f, f}
	if _, err := New(WithStyle(style)); !errors.Is(err, ErrDuplicateFont) {
		t.Errorf("New = %v, want ErrDuplicateFont", err)
	}
}

func TestRemoveFontDropsCachedGlyphs(t *testing.T) {
	style := DefaultStyle()
	style.Size = 16
	a := newDefaultAtlas(t, WithText("AB"), WithStyle(style))
	r, ok := a.rasterizer.(*glyphRasterizer)
	if !ok {
		t.Fatalf("rasterizer is %T", a.rasterizer)
	}
	// Space, A and B with the built-in font.
	if n := r.cacheStats().Len; n != 3 {
		t.Fatalf("cache Len = %d, want 3", n)
	}

	if err := a.AddFontData(gobold.TTF); err != nil {
		t.Fatal(err)
	}
	if n := r.cacheStats().Len; n != 6 {
		t.Fatalf("cache Len = %d after AddFont, want 6", n)
	}

	st := a.Style()
	if !a.RemoveFont(st.Families()[0]) {
		t.Fatal("RemoveFont = false")
	}
	if n := r.cacheStats().Len; n != 3 {
		t.Errorf("cache Len = %d after RemoveFont, want 3", n)
	}
}

func TestDebugLogging(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	style := DefaultStyle()
	style.Size = 16
	a := newDefaultAtlas(t, WithText("AB"), WithStyle(style), WithWorkers(2))
	a.Close()

	out := buf.String()
	for _, want := range []string{
		"bmfont: glyphs rasterized",
		"workers=2",
		"bmfont: glyph cache",
		"misses=3",
		"utilization=",
		"bmfont: atlas closed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
