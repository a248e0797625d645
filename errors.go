package bmfont

import (
	"errors"
	"fmt"

	"github.com/gogpu/bmfont/raster"
)

// Sentinel errors for the bmfont package.
var (
	// ErrDuplicateFont is returned when a font with the same family is
	// already part of the style.
	ErrDuplicateFont = errors.New("bmfont: font already exists")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = raster.ErrEmptyFontData

	// ErrGlyphNotFound is returned when no font glyph exists for a letter.
	ErrGlyphNotFound = errors.New("bmfont: glyph not found")

	// ErrImageNotFound is returned when an image glyph id is unknown.
	ErrImageNotFound = errors.New("bmfont: image glyph not found")

	// ErrNilFont is returned when a nil font is added to the style.
	ErrNilFont = errors.New("bmfont: nil font")
)

// DuplicateFontError reports the family of a rejected font.
type DuplicateFontError struct {
	Family string
}

// Error implements the error interface.
func (e *DuplicateFontError) Error() string {
	return fmt.Sprintf("bmfont: font %q already exists", e.Family)
}

// Unwrap returns ErrDuplicateFont so errors.Is works.
func (e *DuplicateFontError) Unwrap() error {
	return ErrDuplicateFont
}

// LayoutConfigError reports an invalid LayoutConfig field.
type LayoutConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *LayoutConfigError) Error() string {
	return "bmfont: invalid layout config." + e.Field + ": " + e.Reason
}
