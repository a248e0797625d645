package bmfont

import (
	"image"
	"math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a b\tc\n", "abc"},
		{"abcabc", "abc"},
		{"  aa  ", "a"},
		{"e\u0301", "\u00e9"},
		{"\u00e9e\u0301", "\u00e9"},
		{"日本 日本語", "日本語"},
	}
	for _, tt := range tests {
		if got := canonicalText(tt.in); got != tt.want {
			t.Errorf("canonicalText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func fontLetters(c *catalog) []string {
	letters := make([]string, 0, len(c.fonts))
	for l := range c.fonts {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}

func TestCatalogSetText(t *testing.T) {
	c := newCatalog()
	created, changed := c.setText("abc")
	if !changed || len(created) != 3 {
		t.Fatalf("first setText: created %d, changed %v", len(created), changed)
	}
	if diff := cmp.Diff([]string{" ", "a", "b", "c"}, fontLetters(c)); diff != "" {
		t.Errorf("letters mismatch (-want +got):\n%s", diff)
	}

	a := c.fonts["a"]
	created, changed = c.setText("bcd")
	if !changed || len(created) != 1 || created[0].Letter != "d" {
		t.Fatalf("second setText: created %v, changed %v", created, changed)
	}
	if _, ok := c.fonts["a"]; ok {
		t.Error("a should be removed")
	}
	if c.fonts["b"] == nil || c.fonts[" "] == nil {
		t.Error("kept letters and the space must survive")
	}

	c.setText("abcd")
	if c.fonts["a"] == a {
		t.Error("a re-added letter must get a fresh glyph")
	}
}

func TestCatalogSetTextNoChange(t *testing.T) {
	c := newCatalog()
	c.setText("abc")
	b := c.fonts["b"]
	b.Adjust = Metric{XAdvance: 3}

	created, changed := c.setText("c b a a")
	if changed || created != nil {
		t.Errorf("reordering must not change the catalog: %v %v", created, changed)
	}
	if c.text != "cba" {
		t.Errorf("text = %q, want cba", c.text)
	}
	if c.fonts["b"] != b || b.Adjust.XAdvance != 3 {
		t.Error("glyph state lost on a no-op update")
	}
	if diff := cmp.Diff([]string{" ", "c", "b", "a"}, c.letters()); diff != "" {
		t.Errorf("render order mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogSpaceAlwaysPresent(t *testing.T) {
	c := newCatalog()
	for _, text := range []string{"a b", "", " ", "xyz", ""} {
		c.setText(text)
		if c.fonts[space] == nil {
			t.Fatalf("space glyph missing after setText(%q)", text)
		}
	}
}

// setText(A) then setText(B) leaves the same letters as a fresh catalog
// with B.
func TestCatalogDiffEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("abcdefgABCDEFG0123 \t日本")
	randomText := func() string {
		n := rng.IntN(12)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return string(rs)
	}

	for range 200 {
		textA, textB := randomText(), randomText()

		incremental := newCatalog()
		incremental.setText(textA)
		incremental.setText(textB)

		fresh := newCatalog()
		fresh.setText(textB)

		if diff := cmp.Diff(fontLetters(fresh), fontLetters(incremental)); diff != "" {
			t.Fatalf("setText(%q) then setText(%q) mismatch (-fresh +incremental):\n%s", textA, textB, diff)
		}
		if incremental.text != fresh.text {
			t.Fatalf("text %q != %q", incremental.text, fresh.text)
		}
	}
}

func TestAtlasSetTextPreservesOverrides(t *testing.T) {
	a, stub := newTestAtlas(t, "ab", map[string]image.Point{"a": {3, 3}, "b": {4, 4}, "c": {5, 5}})
	if err := a.SetGlyphAdjust("a", Metric{XOffset: 2}); err != nil {
		t.Fatal(err)
	}
	calls := stub.calls.Load()

	a.SetText("b a c")

	if got := stub.calls.Load() - calls; got != 1 {
		t.Errorf("rasterized %d glyphs, want only the new c", got)
	}
	if a.Text() != "bac" {
		t.Errorf("Text() = %q, want bac", a.Text())
	}
	g, ok := a.Glyph("a")
	if !ok || g.Adjust.XOffset != 2 {
		t.Errorf("a lost its adjust: %+v", g)
	}
	if g, _ := a.Glyph("c"); g.Width != 5 {
		t.Errorf("c width = %d, want 5", g.Width)
	}
	assertNoOverlap(t, a.Layout())
}

func TestAtlasGlyphsRenderOrder(t *testing.T) {
	a, _ := newTestAtlas(t, "cab", nil)
	var letters []string
	for _, g := range a.Glyphs() {
		letters = append(letters, g.Letter)
	}
	if !slices.Equal(letters, []string{" ", "c", "a", "b"}) {
		t.Errorf("Glyphs() order = %q", letters)
	}
}
