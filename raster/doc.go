// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster produces the pixel content and measurements of atlas glyphs.
//
// It is the default implementation of the collaborators the atlas builder
// consumes:
//
//   - [Renderer] rasterizes one letter of an outline font with fill, stroke
//     and shadow, then trims it to its visible pixels.
//   - [TrimImage] and [Decode] trim standalone raster images (PNG, JPEG, GIF,
//     BMP, TIFF, WebP).
//   - [ComputeBaselines] derives baseline offsets and line height.
//   - [Kerner] measures pair kerning with a HarfBuzz shaper.
//
// Fonts are parsed with golang.org/x/image/font/opentype; kerning uses
// github.com/go-text/typesetting.
//
// # Trim offsets
//
// Every result is a [Bitmap]: the trimmed pixels plus the margins removed
// from the nominal cell on each side. For font glyphs the cell is the
// advance width times ascent+descent; ink that overflows the cell (negative
// side bearings, stroke, shadow) shows up as negative trim. For images the
// cell is the image bounds, so trims are never negative.
package raster
