// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed outline font (TTF or OTF).
//
// Font is immutable after parsing and safe for concurrent use.
type Font struct {
	data   []byte
	sfnt   *opentype.Font
	family string
}

// ParseFont parses font data. The data slice is copied.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("raster: failed to parse font: %w", err)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	return &Font{
		data:   dataCopy,
		sfnt:   f,
		family: extractFamily(f),
	}, nil
}

var (
	defaultOnce sync.Once
	defaultFont *Font
)

// DefaultFont returns the built-in Go Regular font, used when a style has
// no font of its own.
func DefaultFont() *Font {
	defaultOnce.Do(func() {
		f, err := ParseFont(goregular.TTF)
		if err != nil {
			panic("raster: embedded Go Regular font is invalid: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Family returns the identifying family of the font: the PostScript name,
// falling back to the family and full names.
func (f *Font) Family() string {
	return f.family
}

// Data returns the raw font bytes. The slice must not be modified.
func (f *Font) Data() []byte {
	return f.data
}

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	var buf sfnt.Buffer
	idx, err := f.sfnt.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// pick returns the first font that has a glyph for r, then the first font,
// then the default font.
func pick(fonts []*Font, r rune) *Font {
	for _, f := range fonts {
		if f != nil && f.HasGlyph(r) {
			return f
		}
	}
	for _, f := range fonts {
		if f != nil {
			return f
		}
	}
	return DefaultFont()
}

func extractFamily(f *opentype.Font) string {
	for _, id := range []sfnt.NameID{sfnt.NameIDPostScript, sfnt.NameIDFamily, sfnt.NameIDFull} {
		if name, err := f.Name(nil, id); err == nil && name != "" {
			return name
		}
	}
	return "Unknown Font"
}
