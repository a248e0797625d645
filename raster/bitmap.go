// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Decoders for image glyphs.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"
)

// Trim holds the margins removed from a cell to fit its visible pixels.
type Trim struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Bitmap is a trimmed glyph or image.
//
// Bitmaps returned by a Renderer may be shared with its cache; callers must
// treat Image as read-only.
type Bitmap struct {
	// Image holds the visible pixels with bounds starting at (0,0).
	// Nil when the bitmap is empty.
	Image *image.NRGBA

	// Width and Height are the trimmed size.
	Width, Height int

	// FullWidth and FullHeight are the size of the untrimmed cell.
	FullWidth, FullHeight int

	Trim Trim
}

// Empty reports whether the bitmap has no visible pixels.
func (b Bitmap) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// TrimImage trims fully transparent rows and columns from img.
// The cell is img.Bounds(); a fully transparent image gives an empty bitmap
// whose trims are zero.
func TrimImage(img image.Image) Bitmap {
	cell := img.Bounds()
	return trimCell(img, cell)
}

// Decode decodes an image buffer and trims it.
// It returns the trimmed bitmap and the registered format name.
func Decode(buf []byte) (Bitmap, string, error) {
	if len(buf) == 0 {
		return Bitmap{}, "", ErrEmptyImageData
	}
	img, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return Bitmap{}, "", fmt.Errorf("raster: failed to decode image: %w", err)
	}
	return TrimImage(img), format, nil
}

// trimCell crops img to its ink and reports trims relative to cell.
func trimCell(img image.Image, cell image.Rectangle) Bitmap {
	bm := Bitmap{
		FullWidth:  cell.Dx(),
		FullHeight: cell.Dy(),
	}

	ink := inkBounds(img)
	if ink.Empty() {
		return bm
	}

	bm.Image = crop(img, ink)
	bm.Width = ink.Dx()
	bm.Height = ink.Dy()
	bm.Trim = Trim{
		Top:    ink.Min.Y - cell.Min.Y,
		Left:   ink.Min.X - cell.Min.X,
		Right:  cell.Max.X - ink.Max.X,
		Bottom: cell.Max.Y - ink.Max.Y,
	}
	return bm
}

// inkBounds returns the smallest rectangle holding every non-transparent
// pixel of img.
func inkBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x+1)
			maxY = max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

// crop copies r of img into a new NRGBA image anchored at (0,0).
func crop(img image.Image, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, r.Min, xdraw.Src)
	return dst
}

// uniform is a shorthand for a solid colour source.
func uniform(c color.NRGBA) *image.Uniform {
	return image.NewUniform(c)
}
