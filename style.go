package bmfont

import (
	"image/color"
	"slices"

	"github.com/gogpu/bmfont/raster"
)

// StrokeStyle is the outline drawn around font glyphs.
type StrokeStyle struct {
	Width float64
	Color color.NRGBA
}

// ShadowStyle is the drop shadow drawn under font glyphs.
type ShadowStyle struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   color.NRGBA
}

// Style controls how font glyphs are rasterized.
type Style struct {
	// Fonts are tried in order for every letter. An empty list uses the
	// built-in Go Regular font.
	Fonts []*raster.Font

	// Size is the font size in pixels per em.
	Size float64

	// LineHeight is a multiple of Size.
	LineHeight float64

	// Sharp in [0,100] sharpens glyph edges.
	Sharp int

	Fill color.NRGBA

	UseStroke bool
	Stroke    StrokeStyle

	UseShadow bool
	Shadow    ShadowStyle

	// BgColor fills the rendered atlas.
	BgColor color.NRGBA
}

// DefaultStyle returns the default style: 72px black glyphs without
// stroke or shadow on a transparent background.
func DefaultStyle() Style {
	black := color.NRGBA{A: 255}
	return Style{
		Size:       72,
		LineHeight: 1.25,
		Sharp:      80,
		Fill:       black,
		Stroke:     StrokeStyle{Width: 1, Color: black},
		Shadow:     ShadowStyle{OffsetX: 1, OffsetY: 1, Blur: 1, Color: black},
	}
}

// clone returns a copy with its own font list.
func (s *Style) clone() Style {
	c := *s
	c.Fonts = slices.Clone(s.Fonts)
	return c
}

// Families returns the family of every font, in order.
func (s *Style) Families() []string {
	families := make([]string, 0, len(s.Fonts))
	for _, f := range s.Fonts {
		families = append(families, f.Family())
	}
	return families
}

// MainFont returns the first font, or nil when the style has none.
func (s *Style) MainFont() *raster.Font {
	if len(s.Fonts) == 0 {
		return nil
	}
	return s.Fonts[0]
}

// addFont appends f unless a font of the same family is present.
func (s *Style) addFont(f *raster.Font) error {
	if f == nil {
		return ErrNilFont
	}
	family := f.Family()
	if slices.ContainsFunc(s.Fonts, func(o *raster.Font) bool { return o.Family() == family }) {
		return &DuplicateFontError{Family: family}
	}
	s.Fonts = append(s.Fonts, f)
	return nil
}

// removeFont drops the font with the given family and returns it.
func (s *Style) removeFont(family string) *raster.Font {
	i := slices.IndexFunc(s.Fonts, func(f *raster.Font) bool { return f.Family() == family })
	if i < 0 {
		return nil
	}
	f := s.Fonts[i]
	s.Fonts = slices.Delete(s.Fonts, i, i+1)
	return f
}

// checkFonts rejects nil fonts and repeated families.
func (s *Style) checkFonts() error {
	seen := make(map[string]bool, len(s.Fonts))
	for _, f := range s.Fonts {
		if f == nil {
			return ErrNilFont
		}
		family := f.Family()
		if seen[family] {
			return &DuplicateFontError{Family: family}
		}
		seen[family] = true
	}
	return nil
}

// rasterOptions converts s to the options of the default rasterizer.
func (s *Style) rasterOptions() raster.Options {
	opts := raster.Options{
		Size:  s.Size,
		Fill:  s.Fill,
		Sharp: float64(s.Sharp),
	}
	if s.UseStroke {
		opts.Stroke = true
		opts.StrokeWidth = s.Stroke.Width
		opts.StrokeColor = s.Stroke.Color
	}
	if s.UseShadow {
		opts.Shadow = true
		opts.ShadowOffsetX = s.Shadow.OffsetX
		opts.ShadowOffsetY = s.Shadow.OffsetY
		opts.ShadowBlur = s.Shadow.Blur
		opts.ShadowColor = s.Shadow.Color
	}
	return opts
}

// Style returns a copy of the current style.
func (a *Atlas) Style() Style {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.style.clone()
}

// UpdateStyle applies fn to a copy of the style, stores the result and
// re-rasterizes every font glyph. If fn leaves a nil font or two fonts of
// the same family in the list, the style is left unchanged and the error
// is returned.
//
// Example:
//
//	a.UpdateStyle(func(s *bmfont.Style) {
//	    s.Size = 48
//	    s.UseStroke = true
//	})
func (a *Atlas) UpdateStyle(fn func(*Style)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.style.clone()
	fn(&s)
	if err := s.checkFonts(); err != nil {
		return err
	}
	a.style = s
	a.packStyle()
	return nil
}

// AddFont appends f to the style's fonts and re-rasterizes.
// A font whose family is already present is rejected with a
// *DuplicateFontError and the style is left unchanged.
func (a *Atlas) AddFont(f *raster.Font) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.style.addFont(f); err != nil {
		return err
	}
	Logger().Info("bmfont: font added", "family", f.Family())
	a.packStyle()
	return nil
}

// AddFontData parses a TTF or OTF font and adds it like AddFont.
func (a *Atlas) AddFontData(data []byte) error {
	f, err := raster.ParseFont(data)
	if err != nil {
		return err
	}
	return a.AddFont(f)
}

// RemoveFont drops the font with the given family and re-rasterizes.
// It returns false if no such font exists.
func (a *Atlas) RemoveFont(family string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := a.style.removeFont(family)
	if f == nil {
		return false
	}
	for _, c := range []any{a.rasterizer, a.kerning} {
		if ff, ok := c.(fontForgetter); ok {
			ff.forgetFont(f)
		}
	}
	a.packStyle()
	return true
}
