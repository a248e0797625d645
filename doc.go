// Package bmfont builds bitmap font atlases.
//
// # Overview
//
// An [Atlas] keeps a catalog of glyphs in sync with a text, rasterizes
// them with a [Style], and packs them without overlap into one texture.
// The result is a [Layout]: the atlas size, an overflow flag and, for
// every glyph, its position, trimmed size, trim offsets, metric
// adjustments and kerning. A font-descriptor writer needs nothing else.
//
// # Quick Start
//
//	a, err := bmfont.New(bmfont.WithText("Hello, world"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	layout := a.Layout()
//	img := a.Render()
//
// # Glyphs
//
// Every letter of the text has a font glyph, plus one for the space. Image
// glyphs added with [Atlas.AddImages] override the font glyph of their
// letter while selected; at most one image per letter is selected at a
// time. The glyph used for a letter is its effective glyph. Empty glyphs
// (such as the space) take no room in the atlas.
//
// # Packing
//
// Each effective glyph asks for its trimmed size plus padding on every
// side and spacing on the right and bottom. With [LayoutConfig.Auto] the
// atlas is the smallest square found by [pack.Auto]; otherwise glyphs are
// packed into the configured bounds by [pack.Fixed]. Glyphs that do not
// fit are reported through [Atlas.Overflow] and sit at (0,0); overflow is
// never an error.
//
// # Collaborators
//
// Rasterization, image decoding, baselines and kerning go through the
// [FontRasterizer], [ImageTrimmer], [MetricsProvider] and
// [KerningProvider] interfaces. The defaults live in package raster.
//
// # Logging
//
// bmfont is silent by default. See [SetLogger].
package bmfont
