package bmfont

import (
	"errors"
	"fmt"

	"github.com/gogpu/bmfont/raster"
)

// ImageFile is a raster image supplied as a glyph.
type ImageFile struct {
	// Letter is the letter the image stands for. Only its first character
	// is used; an empty letter keeps the image out of the atlas.
	Letter string

	FileName string
	FileType string
	Buffer   []byte

	// Unselected adds the image without using it. Images are selected by
	// default, which deselects any other image for the same letter.
	Unselected bool
}

// AddImages appends image glyphs, decodes them on the worker pool and
// re-packs once all of them are decoded.
//
// Images that fail to decode stay in the atlas at zero size and are left
// out of packing; their errors are returned joined. The returned ids are
// valid even when err is non-nil.
func (a *Atlas) AddImages(files ...ImageFile) ([]ImageID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	glyphs := make([]*Glyph, len(files))
	ids := make([]ImageID, len(files))
	for i, f := range files {
		glyphs[i] = a.cat.addImage(f)
		ids[i] = glyphs[i].ID
	}

	errs := a.decode(glyphs)
	a.pack()
	return ids, errors.Join(errs...)
}

// decode trims the buffers of glyphs concurrently and applies the results.
func (a *Atlas) decode(glyphs []*Glyph) []error {
	bitmaps := make([]raster.Bitmap, len(glyphs))
	errs := make([]error, len(glyphs))
	a.pool.ForEach(len(glyphs), func(i int) {
		bm, err := a.trimmer.TrimImage(glyphs[i].Buffer)
		if err != nil {
			Logger().Warn("bmfont: image decode failed", "file", glyphs[i].FileName, "err", err)
			errs[i] = fmt.Errorf("bmfont: image %q: %w", glyphs[i].FileName, err)
			bm = raster.Bitmap{}
		}
		bitmaps[i] = bm
	})
	for i, g := range glyphs {
		g.recompute(bitmaps[i])
	}
	return errs
}

// RemoveImage removes an image glyph and re-packs.
// It returns false if the id is unknown.
func (a *Atlas) RemoveImage(id ImageID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.cat.removeImage(id) {
		return false
	}
	a.pack()
	return true
}

// SelectImage selects or deselects an image glyph and re-packs.
// Selecting an image deselects every other image for the same letter.
func (a *Atlas) SelectImage(id ImageID, selected bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := a.cat.image(id)
	if g == nil {
		return ErrImageNotFound
	}
	a.cat.selectImage(g, selected)
	a.pack()
	return nil
}

// SetImageLetter assigns the first character of text to an image glyph and
// re-packs. A selected image takes the letter over from other images.
func (a *Atlas) SetImageLetter(id ImageID, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := a.cat.image(id)
	if g == nil {
		return ErrImageNotFound
	}
	a.cat.setImageLetter(g, text)
	a.pack()
	return nil
}

// SetImageAdjust sets the metric adjustment of an image glyph.
func (a *Atlas) SetImageAdjust(id ImageID, m Metric) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := a.cat.image(id)
	if g == nil {
		return ErrImageNotFound
	}
	g.Adjust = m
	return nil
}

// Images returns copies of the image glyphs in insertion order.
func (a *Atlas) Images() []Glyph {
	a.mu.Lock()
	defer a.mu.Unlock()

	images := make([]Glyph, len(a.cat.images))
	for i, g := range a.cat.images {
		images[i] = g.clone()
	}
	return images
}
