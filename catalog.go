package bmfont

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// space is the letter that always has a font glyph.
const space = " "

// catalog holds the font glyphs keyed by letter and the ordered list of
// image glyphs. It is owned by an Atlas and never exposed.
type catalog struct {
	text   string
	fonts  map[string]*Glyph
	images []*Glyph
	nextID ImageID
}

func newCatalog() *catalog {
	return &catalog{
		fonts: map[string]*Glyph{
			space: {Letter: space, Kind: KindFont},
		},
	}
}

// canonicalText normalizes s to NFC, strips whitespace and keeps the first
// occurrence of every rune.
func canonicalText(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	seen := make(map[rune]bool, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		b.WriteRune(r)
	}
	return b.String()
}

// splitLetters returns the runes of s as one-letter strings.
func splitLetters(s string) []string {
	letters := make([]string, 0, len(s))
	for _, r := range s {
		letters = append(letters, string(r))
	}
	return letters
}

// setText stores the canonical form of text and brings the font glyphs in
// line with it. Only letters in the symmetric difference of the old and
// new letter sets are touched: new letters get a glyph, vanished letters
// lose theirs, and glyphs of letters in both keep their state.
//
// It returns the glyphs it created and whether the letter set changed.
func (c *catalog) setText(text string) (created []*Glyph, changed bool) {
	old := c.text
	c.text = canonicalText(text)

	current := letterSet(c.text)
	previous := letterSet(old)

	for _, l := range splitLetters(c.text) {
		if previous[l] {
			continue
		}
		changed = true
		if _, ok := c.fonts[l]; ok {
			continue
		}
		g := &Glyph{Letter: l, Kind: KindFont}
		c.fonts[l] = g
		created = append(created, g)
	}
	for l := range previous {
		if l == space || current[l] {
			continue
		}
		changed = true
		delete(c.fonts, l)
	}
	return created, changed
}

func letterSet(s string) map[string]bool {
	set := make(map[string]bool, len(s))
	for _, r := range s {
		set[string(r)] = true
	}
	return set
}

// letters returns the rendering order: the space followed by the text.
func (c *catalog) letters() []string {
	return splitLetters(space + c.text)
}

// selectedImage returns the selected image glyph with letter l.
func (c *catalog) selectedImage(l string) *Glyph {
	if l == "" {
		return nil
	}
	for _, g := range c.images {
		if g.Selected && g.Letter == l {
			return g
		}
	}
	return nil
}

// effective returns the glyph used for letter l: its selected image glyph
// if there is one, otherwise its font glyph. Nil if neither exists.
func (c *catalog) effective(l string) *Glyph {
	if g := c.selectedImage(l); g != nil {
		return g
	}
	return c.fonts[l]
}

// lookup finds the glyph behind a packed rectangle. Image rectangles match
// the selected image glyph of the letter first and fall back to the font
// glyph.
func (c *catalog) lookup(l string, kind Kind) *Glyph {
	if kind == KindImage {
		if g := c.selectedImage(l); g != nil {
			return g
		}
	}
	return c.fonts[l]
}

// fontGlyphs returns every font glyph in rendering order.
func (c *catalog) fontGlyphs() []*Glyph {
	glyphs := make([]*Glyph, 0, len(c.fonts))
	for _, l := range c.letters() {
		if g, ok := c.fonts[l]; ok {
			glyphs = append(glyphs, g)
		}
	}
	return glyphs
}

// addImage appends an image glyph. A selected image takes its letter over
// from any other selected image.
func (c *catalog) addImage(f ImageFile) *Glyph {
	c.nextID++
	g := &Glyph{
		Kind:     KindImage,
		Letter:   firstLetter(f.Letter),
		ID:       c.nextID,
		Selected: !f.Unselected,
		FileName: f.FileName,
		FileType: f.FileType,
		Buffer:   slices.Clone(f.Buffer),
	}
	c.images = append(c.images, g)
	c.claim(g)
	return g
}

func (c *catalog) image(id ImageID) *Glyph {
	for _, g := range c.images {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (c *catalog) removeImage(id ImageID) bool {
	i := slices.IndexFunc(c.images, func(g *Glyph) bool { return g.ID == id })
	if i < 0 {
		return false
	}
	c.images = slices.Delete(c.images, i, i+1)
	return true
}

func (c *catalog) selectImage(g *Glyph, selected bool) {
	g.Selected = selected
	c.claim(g)
}

func (c *catalog) setImageLetter(g *Glyph, text string) {
	g.Letter = firstLetter(text)
	c.claim(g)
}

// claim deselects every other image sharing the letter of a selected g.
func (c *catalog) claim(g *Glyph) {
	if !g.Selected || g.Letter == "" {
		return
	}
	for _, o := range c.images {
		if o != g && o.Letter == g.Letter {
			o.Selected = false
		}
	}
}

// firstLetter returns the first rune of text in NFC form, or "".
func firstLetter(text string) string {
	for _, r := range norm.NFC.String(text) {
		return string(r)
	}
	return ""
}
