// Command bmfont builds a bitmap font atlas and its glyph layout.
//
// Usage:
//
//	bmfont -font Roboto.ttf -size 48 -text "ABC abc 123" -out atlas.png -layout atlas.json
//
// Image overrides are read from a directory of files named after their
// letter (for example "A.png"). A saved project can be reloaded with
// -project; flags given explicitly are applied on top of it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/bmfont"
)

type options struct {
	font    string
	text    string
	size    float64
	padding int
	spacing int
	auto    bool
	width   int
	height  int
	fixed   bool
	stroke  float64
	shadow  bool
	images  string
	out     string
	layout  string
	project string
	save    string
	verbose bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func main() {
	var o options
	flag.StringVar(&o.font, "font", "", "TTF/OTF font file (default: Go Regular)")
	flag.StringVar(&o.text, "text", bmfont.DefaultText, "letters to include")
	flag.Float64Var(&o.size, "size", 72, "font size in pixels")
	flag.IntVar(&o.padding, "padding", 1, "padding around each glyph")
	flag.IntVar(&o.spacing, "spacing", 1, "spacing between glyphs")
	flag.BoolVar(&o.auto, "auto", true, "find the smallest square atlas")
	flag.IntVar(&o.width, "width", 512, "atlas width when -auto=false")
	flag.IntVar(&o.height, "height", 512, "atlas height when -auto=false")
	flag.BoolVar(&o.fixed, "fixed", false, "report -width x -height even if glyphs use less")
	flag.Float64Var(&o.stroke, "stroke", 0, "stroke width (0 disables)")
	flag.BoolVar(&o.shadow, "shadow", false, "draw a drop shadow")
	flag.StringVar(&o.images, "images", "", "directory of <letter>.<ext> image glyphs")
	flag.StringVar(&o.out, "out", "atlas.png", "output PNG")
	flag.StringVar(&o.layout, "layout", "", "output JSON layout")
	flag.StringVar(&o.project, "project", "", "project snapshot to load")
	flag.StringVar(&o.save, "save", "", "write the project snapshot here")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	o.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	bmfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(o); err != nil {
		log.Fatalf("bmfont: %v", err)
	}
}

func run(o options) error {
	a, err := open(o)
	if err != nil {
		return err
	}
	defer a.Close()

	if o.images != "" {
		files, err := readImages(o.images)
		if err != nil {
			return err
		}
		if _, err := a.AddImages(files...); err != nil {
			return err
		}
	}

	w, h := a.Size()
	if a.Overflow() {
		log.Printf("warning: not every glyph fits in %dx%d", w, h)
	}

	// png cannot encode a 0x0 image; the layout is still written.
	if w == 0 || h == 0 {
		log.Printf("warning: atlas is empty, %s not written", o.out)
	} else if err := writePNG(o.out, a); err != nil {
		return err
	}
	if o.layout != "" {
		if err := writeJSON(o.layout, a.Layout()); err != nil {
			return err
		}
	}
	if o.save != "" {
		if err := writeJSON(o.save, a.Snapshot()); err != nil {
			return err
		}
	}

	log.Printf("Atlas saved to %s (%dx%d, %d glyphs)", o.out, w, h, len(a.Glyphs()))
	return nil
}

// open creates the atlas from flags, or loads the project and applies the
// flags given explicitly.
func open(o options) (*bmfont.Atlas, error) {
	var fontData []byte
	if o.font != "" {
		data, err := os.ReadFile(o.font)
		if err != nil {
			return nil, err
		}
		fontData = data
	}

	if o.project == "" {
		style := bmfont.DefaultStyle()
		applyStyle(&style, o, nil)
		a, err := bmfont.New(
			bmfont.WithText(o.text),
			bmfont.WithLayout(layoutConfig(o)),
			bmfont.WithStyle(style),
		)
		if err != nil {
			return nil, err
		}
		if fontData != nil {
			if err := a.AddFontData(fontData); err != nil {
				a.Close()
				return nil, err
			}
		}
		return a, nil
	}

	data, err := os.ReadFile(o.project)
	if err != nil {
		return nil, err
	}
	var snap bmfont.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("project %s: %w", o.project, err)
	}
	a, err := bmfont.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}

	if o.set["text"] {
		a.SetText(o.text)
	}
	if o.set["padding"] || o.set["spacing"] || o.set["auto"] || o.set["width"] || o.set["height"] || o.set["fixed"] {
		if err := a.SetLayoutConfig(mergeLayout(a.LayoutConfig(), o)); err != nil {
			a.Close()
			return nil, err
		}
	}
	if o.set["size"] || o.set["stroke"] || o.set["shadow"] {
		if err := a.UpdateStyle(func(s *bmfont.Style) { applyStyle(s, o, o.set) }); err != nil {
			a.Close()
			return nil, err
		}
	}
	if fontData != nil {
		if err := a.AddFontData(fontData); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func layoutConfig(o options) bmfont.LayoutConfig {
	return bmfont.LayoutConfig{
		Padding:   o.padding,
		Spacing:   o.spacing,
		Width:     o.width,
		Height:    o.height,
		Auto:      o.auto,
		FixedSize: o.fixed,
	}
}

// mergeLayout overrides the fields of l whose flags were given.
func mergeLayout(l bmfont.LayoutConfig, o options) bmfont.LayoutConfig {
	if o.set["padding"] {
		l.Padding = o.padding
	}
	if o.set["spacing"] {
		l.Spacing = o.spacing
	}
	if o.set["auto"] {
		l.Auto = o.auto
	}
	if o.set["width"] {
		l.Width = o.width
	}
	if o.set["height"] {
		l.Height = o.height
	}
	if o.set["fixed"] {
		l.FixedSize = o.fixed
	}
	return l
}

// applyStyle copies the style flags into s. With a nil set every flag is
// applied; otherwise only the flags in set.
func applyStyle(s *bmfont.Style, o options, set map[string]bool) {
	all := set == nil
	if all || set["size"] {
		s.Size = o.size
	}
	if all || set["stroke"] {
		s.UseStroke = o.stroke > 0
		if o.stroke > 0 {
			s.Stroke.Width = o.stroke
		}
	}
	if all || set["shadow"] {
		s.UseShadow = o.shadow
	}
}

// readImages loads every image in dir. The first character of the file
// name is the letter.
func readImages(dir string) ([]bmfont.ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []bmfont.ImageFile
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		buf, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		ext := filepath.Ext(e.Name())
		files = append(files, bmfont.ImageFile{
			Letter:   strings.TrimSuffix(e.Name(), ext),
			FileName: e.Name(),
			FileType: mime.TypeByExtension(ext),
			Buffer:   buf,
		})
	}
	return files, nil
}

func writePNG(path string, a *bmfont.Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, a.Render()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
