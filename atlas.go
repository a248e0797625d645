package bmfont

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/gogpu/bmfont/internal/parallel"
	"github.com/gogpu/bmfont/pack"
	"github.com/gogpu/bmfont/raster"
)

// Atlas owns the glyph catalog, the style and the layout configuration,
// and packs the effective glyphs into one atlas.
//
// Every mutation that changes glyph sizes re-packs before it returns:
// SetText and AddImages rasterize or decode the new glyphs and call Pack;
// style changes call PackStyle. Overflow is reported through Overflow and
// Layout, never as an error.
//
// Atlas is safe for concurrent use. Concurrent packs are serialized and
// the last one wins.
type Atlas struct {
	mu sync.Mutex

	name string
	id   int64

	cat          *catalog
	layout       LayoutConfig
	style        Style
	globalAdjust Metric

	baselines   raster.Baselines
	fontKerning map[string]map[string]int

	rasterizer FontRasterizer
	trimmer    ImageTrimmer
	metrics    MetricsProvider
	kerning    KerningProvider
	pool       *parallel.WorkerPool

	isPacking atomic.Bool
	overflow  bool
	width     int
	height    int
	failed    map[*Glyph]bool
}

// New creates an atlas, rasterizes its text with the style and packs it.
func New(opts ...Option) (*Atlas, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	a, err := newAtlas(cfg)
	if err != nil {
		return nil, err
	}
	a.cat.setText(cfg.text)

	a.mu.Lock()
	a.packStyle()
	a.mu.Unlock()
	return a, nil
}

func newAtlas(cfg config) (*Atlas, error) {
	if err := cfg.layout.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.style.checkFonts(); err != nil {
		return nil, err
	}

	a := &Atlas{
		name:         cfg.name,
		id:           cfg.id,
		cat:          newCatalog(),
		layout:       cfg.layout,
		style:        cfg.style,
		globalAdjust: cfg.globalAdjust,
		rasterizer:   cfg.rasterizer,
		trimmer:      cfg.trimmer,
		metrics:      cfg.metrics,
		kerning:      cfg.kerning,
		pool:         parallel.NewWorkerPool(cfg.workers),
		failed:       make(map[*Glyph]bool),
	}
	if a.rasterizer == nil {
		a.rasterizer = newGlyphRasterizer()
	}
	if a.trimmer == nil {
		a.trimmer = imageTrimmer{}
	}
	if a.metrics == nil {
		a.metrics = fontMetrics{}
	}
	if !cfg.kerningSet {
		a.kerning = newFontKerning()
	}
	return a, nil
}

// Close stops the worker goroutines. The atlas stays usable; later
// rasterization runs on the calling goroutine.
func (a *Atlas) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pool.IsRunning() {
		return
	}
	a.pool.Close()
	Logger().Debug("bmfont: atlas closed", "name", a.name)
}

// Name returns the atlas name.
func (a *Atlas) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// SetName renames the atlas. An empty name is ignored.
func (a *Atlas) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if name != "" {
		a.name = name
	}
}

// ID returns the atlas id.
func (a *Atlas) ID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.id
}

// Text returns the canonical text: whitespace removed, NFC normalized,
// every letter once.
func (a *Atlas) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cat.text
}

// SetText replaces the text. Only letters that appear or disappear are
// touched; glyphs of letters kept from the old text keep their adjust
// metrics and kerning. When the letter set changes, new letters are
// rasterized and the atlas is re-packed; otherwise only the stored text
// order changes.
func (a *Atlas) SetText(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created, changed := a.cat.setText(text)
	if !changed {
		return
	}
	a.rasterize(created)
	a.measureKerning()
	a.pack()
}

// IsPacking reports whether a pack is in progress.
func (a *Atlas) IsPacking() bool {
	return a.isPacking.Load()
}

// Overflow reports whether the last pack left glyphs out.
func (a *Atlas) Overflow() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overflow
}

// Size returns the resolved atlas size of the last pack.
func (a *Atlas) Size() (width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width, a.height
}

// LayoutConfig returns the packing parameters.
func (a *Atlas) LayoutConfig() LayoutConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layout
}

// SetLayoutConfig validates l, stores it and re-packs.
func (a *Atlas) SetLayoutConfig(l LayoutConfig) error {
	if err := l.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.layout = l
	a.pack()
	return nil
}

// Pack places every effective glyph and resolves the atlas size.
//
// Rectangles are built in rendering order (space first, then the text),
// packed by [pack.Fixed] or [pack.Auto], and written back to the glyphs.
// Glyphs that did not fit are moved to (0,0) and flag the overflow.
func (a *Atlas) Pack() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pack()
}

func (a *Atlas) pack() {
	a.isPacking.Store(true)
	defer a.isPacking.Store(false)

	cfg := a.layout
	var (
		reqs  []request
		rects []pack.Rect
	)
	for _, l := range a.cat.letters() {
		g := a.cat.effective(l)
		if g == nil {
			continue
		}
		r := g.request(cfg.Padding, cfg.Spacing)
		rects = append(rects, pack.Rect{ID: len(reqs), W: r.width, H: r.height})
		reqs = append(reqs, r)
	}

	// Both modes sort by descending height before placing.
	var res pack.Result
	if cfg.Auto {
		res = pack.Auto(rects, cfg.Spacing)
	} else {
		res = pack.Fixed(rects, cfg.Width, cfg.Height, cfg.Spacing)
	}

	clear(a.failed)
	for _, r := range res.Placed {
		req := reqs[r.ID]
		if g := a.cat.lookup(req.letter, req.kind); g != nil {
			g.X, g.Y = r.X, r.Y
		}
	}
	for _, r := range res.Failed {
		req := reqs[r.ID]
		if g := a.cat.lookup(req.letter, req.kind); g != nil {
			g.X, g.Y = 0, 0
			a.failed[g] = true
		}
	}
	a.overflow = res.Overflow()

	if !cfg.Auto && cfg.FixedSize {
		a.width, a.height = cfg.Width, cfg.Height
	} else {
		a.width, a.height = res.Width, res.Height
	}

	Logger().Debug("bmfont: packed",
		"auto", cfg.Auto,
		"rects", len(rects),
		"edge", res.Edge,
		"utilization", res.Utilization,
		"width", a.width,
		"height", a.height)
	if a.overflow {
		Logger().Warn("bmfont: atlas overflow",
			"failed", len(res.Failed),
			"width", a.width,
			"height", a.height)
	}
}

// PackStyle re-rasterizes every font glyph with the current style,
// refreshes baselines and font kerning, then packs.
func (a *Atlas) PackStyle() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.packStyle()
}

func (a *Atlas) packStyle() {
	a.isPacking.Store(true)

	a.rasterize(a.cat.fontGlyphs())
	a.baselines = a.metrics.Baselines(&a.style)
	a.measureKerning()
	a.pack()
}

// rasterize recomputes glyphs from the current style on the worker pool.
// Failures leave the glyph empty.
func (a *Atlas) rasterize(glyphs []*Glyph) {
	if len(glyphs) == 0 {
		return
	}
	style := a.style.clone()
	bitmaps := make([]raster.Bitmap, len(glyphs))
	a.pool.ForEach(len(glyphs), func(i int) {
		bm, err := a.rasterizer.RasterizeGlyph(glyphs[i].Letter, &style)
		if err != nil {
			Logger().Warn("bmfont: rasterize failed", "letter", glyphs[i].Letter, "err", err)
			bm = raster.Bitmap{}
		}
		bitmaps[i] = bm
	})
	for i, g := range glyphs {
		g.recompute(bitmaps[i])
	}

	Logger().Debug("bmfont: glyphs rasterized",
		"glyphs", len(glyphs),
		"workers", a.pool.Workers())
	if r, ok := a.rasterizer.(statsReporter); ok {
		st := r.cacheStats()
		Logger().Debug("bmfont: glyph cache",
			"len", st.Len,
			"hits", st.Hits,
			"misses", st.Misses,
			"evictions", st.Evictions,
			"hit_rate", st.HitRate)
	}
}

// measureKerning refreshes the font kerning of the text letters.
func (a *Atlas) measureKerning() {
	a.fontKerning = nil
	if a.kerning == nil {
		return
	}
	pairs := a.kerning.Kerning(&a.style, splitLetters(a.cat.text))
	if len(pairs) == 0 {
		return
	}
	a.fontKerning = make(map[string]map[string]int)
	for _, p := range pairs {
		m := a.fontKerning[p.First]
		if m == nil {
			m = make(map[string]int)
			a.fontKerning[p.First] = m
		}
		m[p.Second] = p.Amount
	}
	Logger().Debug("bmfont: kerning measured", "pairs", len(pairs))
}

// Baselines returns the baselines of the current style.
func (a *Atlas) Baselines() raster.Baselines {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.baselines
}

// GlobalAdjust returns the metric adjustment applied to every glyph.
func (a *Atlas) GlobalAdjust() Metric {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.globalAdjust
}

// SetGlobalAdjust sets the metric adjustment applied to every glyph.
func (a *Atlas) SetGlobalAdjust(m Metric) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.globalAdjust = m
}

// Glyph returns a copy of the effective glyph for letter.
func (a *Atlas) Glyph(letter string) (Glyph, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g := a.cat.effective(letter)
	if g == nil {
		return Glyph{}, false
	}
	return g.clone(), true
}

// Glyphs returns copies of the effective glyphs in rendering order.
func (a *Atlas) Glyphs() []Glyph {
	a.mu.Lock()
	defer a.mu.Unlock()
	var glyphs []Glyph
	for _, l := range a.cat.letters() {
		if g := a.cat.effective(l); g != nil {
			glyphs = append(glyphs, g.clone())
		}
	}
	return glyphs
}

// SetGlyphAdjust sets the metric adjustment of the font glyph for letter.
func (a *Atlas) SetGlyphAdjust(letter string, m Metric) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.cat.fonts[letter]
	if !ok {
		return ErrGlyphNotFound
	}
	g.Adjust = m
	return nil
}

// SetKerning sets the extra advance between the font glyph for letter and
// a following next letter. Zero removes the override.
func (a *Atlas) SetKerning(letter, next string, amount int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.cat.fonts[letter]
	if !ok {
		return ErrGlyphNotFound
	}
	g.setKerning(next, amount)
	return nil
}

// Layout returns the placed effective glyphs of the last pack.
// Glyph kerning combines font kerning with the per-glyph overrides.
func (a *Atlas) Layout() Layout {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := Layout{
		Width:        a.width,
		Height:       a.height,
		Overflow:     a.overflow,
		Padding:      a.layout.Padding,
		Spacing:      a.layout.Spacing,
		Baselines:    a.baselines,
		GlobalAdjust: a.globalAdjust,
	}
	for _, l := range a.cat.letters() {
		g := a.cat.effective(l)
		if g == nil {
			continue
		}
		out.Glyphs = append(out.Glyphs, PlacedGlyph{
			Letter:     g.Letter,
			Kind:       g.Kind,
			X:          g.X,
			Y:          g.Y,
			Width:      g.Width,
			Height:     g.Height,
			FontWidth:  g.FontWidth,
			FontHeight: g.FontHeight,
			Trim:       g.Trim,
			Adjust:     g.Adjust,
			Kerning:    a.kerningFor(g),
			Overflow:   a.failed[g],
		})
	}
	return out
}

// kerningFor merges the font kerning of g's letter with g's overrides.
// Image glyphs only carry their overrides.
func (a *Atlas) kerningFor(g *Glyph) map[string]int {
	var font map[string]int
	if g.Kind == KindFont {
		font = a.fontKerning[g.Letter]
	}
	if len(font) == 0 && len(g.Kerning) == 0 {
		return nil
	}
	merged := make(map[string]int, len(font)+len(g.Kerning))
	maps.Copy(merged, font)
	for next, v := range g.Kerning {
		merged[next] += v
	}
	return merged
}
