package bmfont

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Render composites the packed glyphs into an image of the atlas size.
//
// Each glyph is drawn at its position offset by the padding, over the
// style's background colour. Glyphs that overflowed are not drawn.
func (a *Atlas) Render() *image.NRGBA {
	a.mu.Lock()
	defer a.mu.Unlock()

	dst := image.NewNRGBA(image.Rect(0, 0, a.width, a.height))
	if a.style.BgColor.A > 0 {
		xdraw.Draw(dst, dst.Bounds(), image.NewUniform(a.style.BgColor), image.Point{}, xdraw.Src)
	}

	pad := a.layout.Padding
	for _, l := range a.cat.letters() {
		g := a.cat.effective(l)
		if g == nil || g.Surface == nil || g.Empty() || a.failed[g] {
			continue
		}
		r := image.Rect(0, 0, g.Width, g.Height).Add(image.Pt(g.X+pad, g.Y+pad))
		xdraw.Draw(dst, r, g.Surface, g.Surface.Bounds().Min, xdraw.Over)
	}
	return dst
}
