package bmfont

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"github.com/gogpu/bmfont/raster"
)

// Snapshot is the saved state of an Atlas. It holds everything needed to
// rebuild the catalog and configuration; glyph sizes and positions are
// recomputed on load.
//
// All collections are ordered slices, so encoding a snapshot is
// deterministic.
type Snapshot struct {
	Name         string          `json:"name"`
	ID           int64           `json:"id"`
	Text         string          `json:"text"`
	Style        StyleSnapshot   `json:"style"`
	Layout       LayoutConfig    `json:"layout"`
	GlobalAdjust Metric          `json:"globalAdjustMetric"`
	Glyphs       []GlyphSnapshot `json:"glyphs"`
	Images       []ImageSnapshot `json:"glyphImages"`
}

// StyleSnapshot is the saved form of a Style. Fonts are kept as raw data
// and colours as "#rrggbbaa" strings.
type StyleSnapshot struct {
	Fonts      [][]byte `json:"fonts"`
	Size       float64  `json:"size"`
	LineHeight float64  `json:"lineHeight"`
	Sharp      int      `json:"sharp"`
	Fill       string   `json:"fill"`

	UseStroke   bool    `json:"useStroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeColor string  `json:"strokeColor"`

	UseShadow     bool    `json:"useShadow"`
	ShadowOffsetX float64 `json:"shadowOffsetX"`
	ShadowOffsetY float64 `json:"shadowOffsetY"`
	ShadowBlur    float64 `json:"shadowBlur"`
	ShadowColor   string  `json:"shadowColor"`

	BgColor string `json:"bgColor"`
}

// GlyphSnapshot holds the overrides of a font glyph.
type GlyphSnapshot struct {
	Letter  string         `json:"letter"`
	Adjust  Metric         `json:"adjustMetric"`
	Kerning []KerningEntry `json:"kerning,omitempty"`
}

// ImageSnapshot holds an image glyph with its raw buffer.
type ImageSnapshot struct {
	Letter   string         `json:"letter"`
	FileName string         `json:"fileName"`
	FileType string         `json:"fileType"`
	Buffer   []byte         `json:"buffer"`
	Selected bool           `json:"selected"`
	Adjust   Metric         `json:"adjustMetric"`
	Kerning  []KerningEntry `json:"kerning,omitempty"`
}

// KerningEntry is one kerning override.
type KerningEntry struct {
	Next   string `json:"next"`
	Amount int    `json:"amount"`
}

// Snapshot captures the state of the atlas.
func (a *Atlas) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Snapshot{
		Name:         a.name,
		ID:           a.id,
		Text:         a.cat.text,
		Style:        snapshotStyle(&a.style),
		Layout:       a.layout,
		GlobalAdjust: a.globalAdjust,
	}
	for _, g := range a.cat.fontGlyphs() {
		s.Glyphs = append(s.Glyphs, GlyphSnapshot{
			Letter:  g.Letter,
			Adjust:  g.Adjust,
			Kerning: kerningEntries(g.Kerning),
		})
	}
	for _, g := range a.cat.images {
		s.Images = append(s.Images, ImageSnapshot{
			Letter:   g.Letter,
			FileName: g.FileName,
			FileType: g.FileType,
			Buffer:   slices.Clone(g.Buffer),
			Selected: g.Selected,
			Adjust:   g.Adjust,
			Kerning:  kerningEntries(g.Kerning),
		})
	}
	return s
}

// FromSnapshot rebuilds an atlas from s and packs it. opts are applied
// after the saved settings, so collaborators and workers can be supplied
// here as well.
//
// Images that fail to decode are kept at zero size and logged.
func FromSnapshot(s Snapshot, opts ...Option) (*Atlas, error) {
	style, err := restoreStyle(s.Style)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	base := []Option{
		WithName(s.Name),
		withID(s.ID),
		WithText(s.Text),
		WithLayout(s.Layout),
		WithStyle(style),
		WithGlobalAdjust(s.GlobalAdjust),
	}
	for _, opt := range append(base, opts...) {
		opt(&cfg)
	}

	a, err := newAtlas(cfg)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.cat.setText(cfg.text)
	for _, gs := range s.Glyphs {
		g, ok := a.cat.fonts[gs.Letter]
		if !ok {
			continue
		}
		g.Adjust = gs.Adjust
		restoreKerning(g, gs.Kerning)
	}

	images := make([]*Glyph, 0, len(s.Images))
	for _, is := range s.Images {
		g := a.cat.addImage(ImageFile{
			Letter:     is.Letter,
			FileName:   is.FileName,
			FileType:   is.FileType,
			Buffer:     is.Buffer,
			Unselected: !is.Selected,
		})
		g.Adjust = is.Adjust
		restoreKerning(g, is.Kerning)
		images = append(images, g)
	}
	a.decode(images)
	a.packStyle()
	return a, nil
}

func snapshotStyle(s *Style) StyleSnapshot {
	fonts := make([][]byte, len(s.Fonts))
	for i, f := range s.Fonts {
		fonts[i] = slices.Clone(f.Data())
	}
	return StyleSnapshot{
		Fonts:         fonts,
		Size:          s.Size,
		LineHeight:    s.LineHeight,
		Sharp:         s.Sharp,
		Fill:          formatColor(s.Fill),
		UseStroke:     s.UseStroke,
		StrokeWidth:   s.Stroke.Width,
		StrokeColor:   formatColor(s.Stroke.Color),
		UseShadow:     s.UseShadow,
		ShadowOffsetX: s.Shadow.OffsetX,
		ShadowOffsetY: s.Shadow.OffsetY,
		ShadowBlur:    s.Shadow.Blur,
		ShadowColor:   formatColor(s.Shadow.Color),
		BgColor:       formatColor(s.BgColor),
	}
}

func restoreStyle(ss StyleSnapshot) (Style, error) {
	s := DefaultStyle()
	if ss.Size > 0 {
		s.Size = ss.Size
	}
	if ss.LineHeight > 0 {
		s.LineHeight = ss.LineHeight
	}
	s.Sharp = ss.Sharp
	s.UseStroke = ss.UseStroke
	s.Stroke.Width = ss.StrokeWidth
	s.UseShadow = ss.UseShadow
	s.Shadow.OffsetX = ss.ShadowOffsetX
	s.Shadow.OffsetY = ss.ShadowOffsetY
	s.Shadow.Blur = ss.ShadowBlur

	colors := []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"fill", ss.Fill, &s.Fill},
		{"strokeColor", ss.StrokeColor, &s.Stroke.Color},
		{"shadowColor", ss.ShadowColor, &s.Shadow.Color},
		{"bgColor", ss.BgColor, &s.BgColor},
	}
	for _, c := range colors {
		if c.src == "" {
			continue
		}
		v, err := raster.ParseColor(c.src)
		if err != nil {
			return Style{}, fmt.Errorf("bmfont: snapshot %s: %w", c.name, err)
		}
		*c.dst = v
	}

	for i, data := range ss.Fonts {
		f, err := raster.ParseFont(data)
		if err != nil {
			return Style{}, fmt.Errorf("bmfont: snapshot font %d: %w", i, err)
		}
		if err := s.addFont(f); err != nil {
			return Style{}, err
		}
	}
	return s, nil
}

func formatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// kerningEntries returns m as entries sorted by letter.
func kerningEntries(m map[string]int) []KerningEntry {
	if len(m) == 0 {
		return nil
	}
	entries := make([]KerningEntry, 0, len(m))
	for next, amount := range m {
		entries = append(entries, KerningEntry{Next: next, Amount: amount})
	}
	slices.SortFunc(entries, func(a, b KerningEntry) int {
		return cmp.Compare(a.Next, b.Next)
	})
	return entries
}

func restoreKerning(g *Glyph, entries []KerningEntry) {
	for _, e := range entries {
		g.setKerning(e.Next, e.Amount)
	}
}
