package glyphswarm

import (
	"image"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	defaultStride    = 4
	defaultThreshold = 128
)

// SamplerOptions controls the sampling grid of a GlyphSampler.
type SamplerOptions struct {
	// Stride is the grid step in pixels along both axes. Zero means 4.
	Stride int
	// Threshold is the alpha a grid cell must exceed to count as inside a
	// glyph. Zero means 128.
	Threshold uint8
}

// GlyphSampler rasterizes text off-screen and reports which grid cells fall
// inside the rendered glyphs.
//
// The raster buffer and the face for the most recent font size are kept
// between calls, so resampling at an unchanged size does not allocate a new
// image. A GlyphSampler is not safe for concurrent use.
type GlyphSampler struct {
	font      *Font
	stride    int
	threshold uint8

	buf      *image.Alpha
	face     font.Face
	faceSize float64

	lastDuration time.Duration
}

// NewGlyphSampler creates a sampler rendering with f. A nil f uses
// DefaultFont.
func NewGlyphSampler(f *Font, opts SamplerOptions) *GlyphSampler {
	if f == nil {
		// The embedded font always parses; a failure here leaves f nil and
		// Sample returns no points.
		f, _ = DefaultFont()
	}
	stride := opts.Stride
	if stride <= 0 {
		stride = defaultStride
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}
	return &GlyphSampler{
		font:      f,
		stride:    stride,
		threshold: threshold,
	}
}

// Stride returns the sampling grid step in pixels.
func (s *GlyphSampler) Stride() int {
	return s.stride
}

// Threshold returns the alpha threshold.
func (s *GlyphSampler) Threshold() uint8 {
	return s.threshold
}

// FontSize returns the pixel size text is rendered at for a viewport of the
// given dimensions: the smaller of width/6 and height/3.
func FontSize(width, height int) float64 {
	return min(float64(width)/6, float64(height)/3)
}

// Sample renders text bold and centered into a width x height raster and
// returns every stride-aligned pixel whose alpha exceeds the threshold.
//
// Non-positive dimensions, empty text, or a face that cannot be built all
// yield nil. Point order is unspecified.
func (s *GlyphSampler) Sample(text string, width, height int) []Point {
	if width <= 0 || height <= 0 || text == "" || s.font == nil {
		return nil
	}
	start := time.Now()
	defer func() { s.lastDuration = time.Since(start) }()

	size := FontSize(width, height)
	if size <= 0 {
		return nil
	}
	face, ok := s.faceFor(size)
	if !ok {
		return nil
	}

	img := s.raster(width, height)

	// Center horizontally on the advance width and vertically on the middle
	// of the ascent/descent box.
	adv := font.MeasureString(face, text)
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot: fixed.Point26_6{
			X: (fixed.I(width) - adv) / 2,
			Y: fixed.I(height)/2 + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(text)

	var points []Point
	for y := 0; y < height; y += s.stride {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x += s.stride {
			if row[x] > s.threshold {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// faceFor returns a face at size, reusing the previous one when the size is
// unchanged.
func (s *GlyphSampler) faceFor(size float64) (font.Face, bool) {
	if s.face != nil && s.faceSize == size {
		return s.face, true
	}
	face, err := s.font.face(size)
	if err != nil {
		return nil, false
	}
	if s.face != nil {
		_ = s.face.Close()
	}
	s.face = face
	s.faceSize = size
	return face, true
}

// raster returns a cleared alpha image of exactly width x height.
func (s *GlyphSampler) raster(width, height int) *image.Alpha {
	if s.buf != nil {
		b := s.buf.Bounds()
		if b.Dx() == width && b.Dy() == height {
			clear(s.buf.Pix)
			return s.buf
		}
	}
	s.buf = image.NewAlpha(image.Rect(0, 0, width, height))
	return s.buf
}
