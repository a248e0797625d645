// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bmfont/internal/cache"
)

// KerningPair is the extra advance applied between First and a following
// Second, in whole pixels.
type KerningPair struct {
	First  string
	Second string
	Amount int
}

// Kerner measures pair kerning by shaping letter pairs with HarfBuzz and
// comparing the pair advance with the sum of the single advances. Whatever
// the font's kern and GPOS tables do to the pair ends up in the difference.
//
// Kerner is safe for concurrent use. Parsed fonts are cached per *Font;
// HarfBuzz shapers are pooled because they are not concurrent-safe.
type Kerner struct {
	shaperPool sync.Pool
	fonts      *cache.Cache[*Font, parsedFont]
}

// parsedFont is a go-text font or the error that kept it from parsing.
type parsedFont struct {
	font *gotext.Font
	err  error
}

// NewKerner creates a Kerner.
func NewKerner() *Kerner {
	return &Kerner{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fonts: cache.New[*Font, parsedFont](0),
	}
}

// Forget drops the parsed form of f. A later Pairs call parses it again.
func (k *Kerner) Forget(f *Font) bool {
	return k.fonts.Delete(f)
}

// Pairs returns every non-zero kerning pair among letters at size pixels
// per em, ordered by First then Second following the order of letters.
// Letters that are not exactly one rune are ignored. A nil font uses the
// default font.
func (k *Kerner) Pairs(f *Font, size float64, letters []string) ([]KerningPair, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if f == nil {
		f = DefaultFont()
	}
	gf, err := k.goTextFont(f)
	if err != nil {
		return nil, err
	}

	type single struct {
		letter  string
		r       rune
		advance fixed.Int26_6
	}
	singles := make([]single, 0, len(letters))
	for _, l := range letters {
		runes := []rune(l)
		if len(runes) != 1 {
			continue
		}
		singles = append(singles, single{letter: l, r: runes[0], advance: k.advance(gf, size, runes)})
	}

	var pairs []KerningPair
	for _, a := range singles {
		for _, b := range singles {
			pair := k.advance(gf, size, []rune{a.r, b.r})
			delta := fixedToFloat64(pair - a.advance - b.advance)
			amount := int(math.Round(delta))
			if amount == 0 {
				continue
			}
			pairs = append(pairs, KerningPair{First: a.letter, Second: b.letter, Amount: amount})
		}
	}
	return pairs, nil
}

// advance shapes runes as one left-to-right run and sums the advances.
func (k *Kerner) advance(f *gotext.Font, size float64, runes []rune) fixed.Int26_6 {
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}

	hb := k.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	k.shaperPool.Put(hb)

	var total fixed.Int26_6
	for _, g := range output.Glyphs {
		total += g.Advance
	}
	return total
}

// goTextFont returns the cached go-text font for f, parsing it on first use.
func (k *Kerner) goTextFont(f *Font) (*gotext.Font, error) {
	p := k.fonts.GetOrCreate(f, func() parsedFont {
		face, err := gotext.ParseTTF(bytes.NewReader(f.data))
		if err != nil {
			return parsedFont{err: fmt.Errorf("raster: failed to parse font for shaping: %w", err)}
		}
		return parsedFont{font: face.Font}
	})
	return p.font, p.err
}
