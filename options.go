package bmfont

import "time"

// DefaultText is the text of a new atlas: digits, ASCII letters and common
// punctuation.
const DefaultText = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!№;%:?*()_+-=.,/|\"'@#$^&{}[]"

// DefaultName is the name of a new atlas.
const DefaultName = "Unnamed"

// Option configures an Atlas during creation.
//
// Example:
//
//	a, err := bmfont.New(
//	    bmfont.WithText("Hello"),
//	    bmfont.WithLayout(bmfont.LayoutConfig{Padding: 2, Auto: true}),
//	)
type Option func(*config)

// config holds the settings applied by New.
type config struct {
	name         string
	id           int64
	text         string
	layout       LayoutConfig
	style        Style
	globalAdjust Metric

	rasterizer FontRasterizer
	trimmer    ImageTrimmer
	metrics    MetricsProvider
	kerning    KerningProvider
	kerningSet bool

	workers int
}

func defaultConfig() config {
	return config{
		name:   DefaultName,
		id:     time.Now().UnixMilli(),
		text:   DefaultText,
		layout: DefaultLayoutConfig(),
		style:  DefaultStyle(),
	}
}

// WithName sets the atlas name.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// withID restores the id of a saved atlas.
func withID(id int64) Option {
	return func(c *config) {
		if id != 0 {
			c.id = id
		}
	}
}

// WithText sets the initial text. Defaults to DefaultText.
func WithText(text string) Option {
	return func(c *config) {
		c.text = text
	}
}

// WithLayout sets the packing parameters. New fails if the layout is
// invalid.
func WithLayout(l LayoutConfig) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithStyle sets the glyph style. The font list is copied.
func WithStyle(s Style) Option {
	return func(c *config) {
		c.style = s.clone()
	}
}

// WithGlobalAdjust sets the metric adjustment applied to every glyph by
// descriptor writers.
func WithGlobalAdjust(m Metric) Option {
	return func(c *config) {
		c.globalAdjust = m
	}
}

// WithFontRasterizer replaces the default rasterizer.
func WithFontRasterizer(r FontRasterizer) Option {
	return func(c *config) {
		c.rasterizer = r
	}
}

// WithImageTrimmer replaces the default image decoder.
func WithImageTrimmer(t ImageTrimmer) Option {
	return func(c *config) {
		c.trimmer = t
	}
}

// WithMetricsProvider replaces the default baseline computation.
func WithMetricsProvider(m MetricsProvider) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithKerningProvider replaces the default kerning measurement.
// Passing nil disables font kerning.
func WithKerningProvider(k KerningProvider) Option {
	return func(c *config) {
		c.kerning = k
		c.kerningSet = true
	}
}

// WithWorkers sets the number of goroutines used to rasterize and decode
// glyphs. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}
