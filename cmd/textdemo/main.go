// Command textdemo shapes a string, bakes its glyphs and writes the atlas
// page and a composited preview as PNG files.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/atlas"
	"github.com/gogpu/textlayout/font"
	"github.com/gogpu/textlayout/shape"
)

func main() {
	var (
		text    = flag.String("text", "Hello, textlayout!\nשלום ¿qué tal?", "text to render, \\n separates lines")
		scale   = flag.Float64("scale", 3, "resolution level")
		bold    = flag.Bool("bold", false, "render bold")
		italic  = flag.Bool("italic", false, "render italic")
		rtl     = flag.Bool("rtl", false, "right-to-left paragraphs")
		obf     = flag.Bool("obfuscate", false, "obfuscate the text")
		output  = flag.String("output", "preview.png", "preview output file")
		atlasTo = flag.String("atlas", "atlas.png", "atlas page output file")
		debug   = flag.Bool("debug", false, "log at debug level to stderr")
	)
	flag.Parse()

	if *debug {
		textlayout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	collection, err := loadCollection()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	up := atlas.NewImageUploader()
	engine, err := textlayout.New(collection,
		textlayout.WithUploader(up),
		textlayout.WithResolutionLevel(float32(*scale)),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	style := shape.Style{RTL: *rtl, Obfuscated: *obf}
	if *bold {
		style.FontStyle |= font.StyleBold
	}
	if *italic {
		style.FontStyle |= font.StyleItalic
	}

	lines := strings.Split(strings.ReplaceAll(*text, `\n`, "\n"), "\n")
	layouts := make([]*shape.TextLayout, len(lines))
	for i, line := range lines {
		layouts[i] = engine.LookupString(line, style, shape.ComputeAll)
	}

	preview := render(engine, up, layouts)
	if err := savePNG(*output, preview); err != nil {
		log.Fatalf("Failed to save preview: %v", err)
	}
	if page := up.Page(0); page != nil {
		if err := savePNG(*atlasTo, page); err != nil {
			log.Fatalf("Failed to save atlas: %v", err)
		}
	}

	s := engine.Stats()
	log.Printf("Preview saved to %s (%dx%d), %d glyphs on %d atlas pages\n",
		*output, preview.Bounds().Dx(), preview.Bounds().Dy(), s.Atlas.Glyphs, s.Atlas.Pages)
}

func loadCollection() (*font.Collection, error) {
	var members []*font.Source
	for _, f := range []struct {
		data  []byte
		style font.Style
	}{
		{goregular.TTF, font.StyleNormal},
		{gobold.TTF, font.StyleBold},
		{goitalic.TTF, font.StyleItalic},
		{gobolditalic.TTF, font.StyleBoldItalic},
	} {
		src, err := font.NewOutlineSource(f.data, font.WithSourceStyle(f.style))
		if err != nil {
			return nil, err
		}
		members = append(members, src)
	}
	basic, err := font.NewBitmapSourceFromFace("basicfont 7x13", basicfont.Face7x13)
	if err != nil {
		return nil, err
	}
	return font.NewCollection(
		font.NewFamily("Go", members...),
		font.NewFamily("spaces", font.NewSpaceSource("spaces", font.DefaultSpaces())),
		font.NewFamily("basic", basic),
	)
}

// render composites every line onto a white canvas.
func render(e *textlayout.Engine, up *atlas.ImageUploader, layouts []*shape.TextLayout) *image.RGBA {
	res := float64(e.ResolutionLevel())
	m := e.Collection().Primary(font.StyleNormal).Metrics(e.Size())
	lineHeight := int(math.Ceil(float64(m.LineHeight())))
	pad := lineHeight / 2

	width := 0
	for _, l := range layouts {
		width = max(width, int(math.Ceil(float64(l.TotalAdvance())*res)))
	}
	dst := image.NewRGBA(image.Rect(0, 0, width+2*pad, len(layouts)*lineHeight+2*pad))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	ink := image.NewUniform(color.RGBA{R: 0x20, G: 0x20, B: 0x40, A: 0xFF})
	for row, l := range layouts {
		baseline := float64(pad + row*lineHeight + int(math.Ceil(float64(m.Ascent))))
		for i := range l.Len() {
			g := e.Bake(l, i)
			tex, ok := e.Texture(g.Page)
			if !ok {
				continue
			}
			page := up.Page(tex.Page)
			ps := float64(tex.Width)
			src := image.Rect(
				int(math.Round(float64(g.U0)*ps)), int(math.Round(float64(g.V0)*ps)),
				int(math.Round(float64(g.U1)*ps)), int(math.Round(float64(g.V1)*ps)),
			)
			x := float64(pad) + float64(l.Glyph(i).X+g.Left)*res
			y := baseline + float64(l.Glyph(i).Y-g.Up)*res
			at := image.Pt(int(math.Round(x)), int(math.Round(y)))
			draw.DrawMask(dst, src.Sub(src.Min).Add(at), ink, image.Point{}, page, src.Min, draw.Over)
		}
	}
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
