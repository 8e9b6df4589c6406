package glyphswarm

import (
	"fmt"
	"os"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font wraps a parsed OpenType/TrueType font for off-screen glyph rendering.
// Faces are created per pixel size on demand.
type Font struct {
	name string
	sfnt *opentype.Font
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
	defaultFontErr  error
)

// DefaultFont returns the embedded Go Bold font.
func DefaultFont() (*Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = LoadFont("gobold", gobold.TTF)
	})
	return defaultFont, defaultFontErr
}

// LoadFont parses TTF/OTF data, or the first face of a TTC/OTC collection.
func LoadFont(name string, data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		coll, cerr := opentype.ParseCollection(data)
		if cerr != nil {
			return nil, fmt.Errorf("glyphswarm: failed to parse font %q: %w", name, err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("glyphswarm: font collection %q is empty", name)
		}
		f, err = coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("glyphswarm: failed to read font %q: %w", name, err)
		}
	}
	return &Font{name: name, sfnt: f}, nil
}

// LoadFontFile reads and parses a font file from disk.
func LoadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyphswarm: read font: %w", err)
	}
	return LoadFont(path, data)
}

// Name returns the name the font was loaded under.
func (f *Font) Name() string {
	return f.name
}

// face creates a face at size pixels (72 DPI, so points == pixels).
func (f *Font) face(size float64) (font.Face, error) {
	return opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// missingGlyphs returns the non-space runes of text the font has no glyph
// for. Such runes render as the notdef box.
func (f *Font) missingGlyphs(text string) []rune {
	var buf sfnt.Buffer
	var missing []rune
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		if idx, err := f.sfnt.GlyphIndex(&buf, r); err != nil || idx == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}
