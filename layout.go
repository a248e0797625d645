package bmfont

import "github.com/gogpu/bmfont/raster"

// LayoutConfig holds the packing parameters.
type LayoutConfig struct {
	// Padding is added on every side of a glyph.
	Padding int `json:"padding"`

	// Spacing separates neighbouring glyphs.
	Spacing int `json:"spacing"`

	// Width and Height bound the atlas when Auto is off.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Auto searches for the smallest square atlas that fits every glyph.
	Auto bool `json:"auto"`

	// FixedSize reports Width×Height as the atlas size even when the glyphs
	// use less. Ignored when Auto is on.
	FixedSize bool `json:"fixedSize"`
}

// DefaultLayoutConfig returns the default layout: padding and spacing 1,
// 512×512 bounds, auto sizing on.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Padding: 1,
		Spacing: 1,
		Width:   512,
		Height:  512,
		Auto:    true,
	}
}

// Validate checks if the configuration is valid.
func (c *LayoutConfig) Validate() error {
	if c.Padding < 0 {
		return &LayoutConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Spacing < 0 {
		return &LayoutConfigError{Field: "Spacing", Reason: "must be non-negative"}
	}
	if !c.Auto {
		if c.Width <= 0 {
			return &LayoutConfigError{Field: "Width", Reason: "must be positive"}
		}
		if c.Height <= 0 {
			return &LayoutConfigError{Field: "Height", Reason: "must be positive"}
		}
	}
	return nil
}

// Layout is the result of a pack: everything a descriptor writer or an
// atlas renderer needs.
type Layout struct {
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	Overflow bool `json:"overflow"`

	Padding int `json:"padding"`
	Spacing int `json:"spacing"`

	Baselines    raster.Baselines `json:"baselines"`
	GlobalAdjust Metric           `json:"globalAdjust"`

	Glyphs []PlacedGlyph `json:"glyphs"`
}

// PlacedGlyph is one effective glyph of a Layout.
type PlacedGlyph struct {
	Letter string `json:"letter"`
	Kind   Kind   `json:"kind"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	FontWidth  int `json:"fontWidth"`
	FontHeight int `json:"fontHeight"`

	Trim    Trim           `json:"trim"`
	Adjust  Metric         `json:"adjust"`
	Kerning map[string]int `json:"kerning,omitempty"`

	// Overflow is set when the glyph did not fit and sits at (0,0).
	Overflow bool `json:"overflow,omitempty"`
}
