// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "errors"

// Sentinel errors for raster package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("raster: empty font data")

	// ErrEmptyImageData is returned when an image buffer is empty.
	ErrEmptyImageData = errors.New("raster: empty image data")

	// ErrInvalidSize is returned when the font size is not positive.
	ErrInvalidSize = errors.New("raster: font size must be positive")

	// ErrInvalidColor is returned when a colour string cannot be parsed.
	ErrInvalidColor = errors.New("raster: invalid color")
)
