package bmfont

import (
	"github.com/gogpu/bmfont/internal/cache"
	"github.com/gogpu/bmfont/raster"
)

// FontRasterizer renders one letter with a style.
//
// An error or an empty bitmap leaves the glyph at zero size, which keeps
// it out of the atlas. Implementations must be safe for concurrent use.
type FontRasterizer interface {
	RasterizeGlyph(letter string, style *Style) (raster.Bitmap, error)
}

// ImageTrimmer decodes an image buffer and trims its transparent border.
// Implementations must be safe for concurrent use.
type ImageTrimmer interface {
	TrimImage(buf []byte) (raster.Bitmap, error)
}

// MetricsProvider derives baselines and line height for a style.
type MetricsProvider interface {
	Baselines(style *Style) raster.Baselines
}

// KerningPair is an extra advance between two letters.
type KerningPair = raster.KerningPair

// KerningProvider measures the font kerning between letters.
type KerningProvider interface {
	Kerning(style *Style, letters []string) []KerningPair
}

// fontForgetter is implemented by the default collaborators, which keep
// per-font state.
type fontForgetter interface {
	forgetFont(f *raster.Font)
}

// statsReporter is implemented by collaborators with a cache.
type statsReporter interface {
	cacheStats() cache.Stats
}

// glyphRasterizer is the default FontRasterizer, backed by a caching
// raster.Renderer.
type glyphRasterizer struct {
	renderer *raster.Renderer
}

func newGlyphRasterizer() *glyphRasterizer {
	return &glyphRasterizer{renderer: raster.NewRenderer(raster.DefaultCacheSize)}
}

func (r *glyphRasterizer) RasterizeGlyph(letter string, style *Style) (raster.Bitmap, error) {
	return r.renderer.Rasterize(style.Fonts, letter, style.rasterOptions())
}

// Bitmaps are keyed by font, so a removed font only leaves dead entries.
func (r *glyphRasterizer) forgetFont(*raster.Font) {
	r.renderer.Reset()
}

func (r *glyphRasterizer) cacheStats() cache.Stats {
	return r.renderer.CacheStats()
}

// imageTrimmer is the default ImageTrimmer.
type imageTrimmer struct{}

func (imageTrimmer) TrimImage(buf []byte) (raster.Bitmap, error) {
	bm, _, err := raster.Decode(buf)
	return bm, err
}

// fontMetrics is the default MetricsProvider. It measures the main font.
type fontMetrics struct{}

func (fontMetrics) Baselines(style *Style) raster.Baselines {
	b, err := raster.ComputeBaselines(style.MainFont(), style.Size)
	if err != nil {
		Logger().Warn("bmfont: baselines unavailable", "size", style.Size, "err", err)
		return raster.Baselines{}
	}
	return b
}

// fontKerning is the default KerningProvider. It measures the main font
// with a HarfBuzz shaper.
type fontKerning struct {
	kerner *raster.Kerner
}

func newFontKerning() *fontKerning {
	return &fontKerning{kerner: raster.NewKerner()}
}

func (k *fontKerning) forgetFont(f *raster.Font) {
	k.kerner.Forget(f)
}

func (k *fontKerning) Kerning(style *Style, letters []string) []KerningPair {
	pairs, err := k.kerner.Pairs(style.MainFont(), style.Size, letters)
	if err != nil {
		Logger().Warn("bmfont: kerning unavailable", "size", style.Size, "err", err)
		return nil
	}
	return pairs
}
