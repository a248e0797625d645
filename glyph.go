package bmfont

import (
	"fmt"
	"image"
	"maps"

	"github.com/gogpu/bmfont/raster"
)

// Kind tells font glyphs and image glyphs apart.
type Kind uint8

const (
	// KindFont is a glyph rasterized from the style's fonts.
	KindFont Kind = iota
	// KindImage is a glyph supplied as a raster image.
	KindImage
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindImage:
		return "image"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "font":
		*k = KindFont
	case "image":
		*k = KindImage
	default:
		return fmt.Errorf("bmfont: unknown glyph kind %q", b)
	}
	return nil
}

// Metric is a set of advance and offset adjustments, in pixels.
type Metric struct {
	XAdvance int `json:"xAdvance"`
	XOffset  int `json:"xOffset"`
	YOffset  int `json:"yOffset"`
}

// Add returns the component-wise sum of m and o.
func (m Metric) Add(o Metric) Metric {
	return Metric{
		XAdvance: m.XAdvance + o.XAdvance,
		XOffset:  m.XOffset + o.XOffset,
		YOffset:  m.YOffset + o.YOffset,
	}
}

// Trim holds the margins removed from a glyph cell to fit its visible pixels.
type Trim = raster.Trim

// ImageID identifies an image glyph within an Atlas.
type ImageID uint64

// Glyph is one entry of the atlas: a letter rendered from a font or
// supplied as an image.
type Glyph struct {
	Letter string
	Kind   Kind

	// Width and Height are the trimmed size.
	Width, Height int

	// X and Y are the placed position, top-left origin.
	X, Y int

	// FontWidth and FontHeight are the untrimmed cell size.
	FontWidth, FontHeight int

	Trim   Trim
	Adjust Metric

	// Kerning maps a following letter to an extra advance.
	Kerning map[string]int

	// Surface holds the trimmed pixels, nil for an empty glyph.
	Surface image.Image

	// Image glyphs only.
	ID       ImageID
	Selected bool
	FileName string
	FileType string
	Buffer   []byte
}

// Empty reports whether the glyph has no visible pixels.
func (g *Glyph) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// clone returns a copy that shares no mutable state with g.
// Surface and Buffer are treated as immutable and shared.
func (g *Glyph) clone() Glyph {
	c := *g
	c.Kerning = maps.Clone(g.Kerning)
	return c
}

// request is the rectangle a glyph asks the packer for.
type request struct {
	letter string
	kind   Kind
	width  int
	height int
}

// request returns the rectangle g needs with padding on every side and
// spacing on the right and bottom. Empty glyphs request nothing.
func (g *Glyph) request(padding, spacing int) request {
	r := request{letter: g.Letter, kind: g.Kind}
	if g.Empty() {
		return r
	}
	r.width = g.Width + 2*padding + spacing
	r.height = g.Height + 2*padding + spacing
	return r
}

// recompute replaces the intrinsic size, trim and pixels of g with bm.
func (g *Glyph) recompute(bm raster.Bitmap) {
	g.Width = bm.Width
	g.Height = bm.Height
	g.FontWidth = bm.FullWidth
	g.FontHeight = bm.FullHeight
	g.Trim = bm.Trim
	g.Surface = nil
	if bm.Image != nil && !bm.Empty() {
		g.Surface = bm.Image
	}
}

// setKerning records an extra advance between g and next; zero removes it.
func (g *Glyph) setKerning(next string, amount int) {
	if amount == 0 {
		delete(g.Kerning, next)
		return
	}
	if g.Kerning == nil {
		g.Kerning = make(map[string]int)
	}
	g.Kerning[next] = amount
}
