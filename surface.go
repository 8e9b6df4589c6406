package glyphswarm

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Surface is a drawing target for the swarm. Discs accumulate into a single
// path which Fill paints in one color, mirroring a canvas beginPath/arc/fill
// sequence.
type Surface interface {
	// Resize sets the pixel dimensions and discards current content.
	Resize(width, height int)
	// Size returns the pixel dimensions.
	Size() (width, height int)
	// Clear resets the surface to its background.
	Clear()
	// Disc adds a filled circle to the pending path.
	Disc(x, y, radius float64)
	// Fill paints the pending path with c and empties it.
	Fill(c Color)
}

// circleK is the cubic Bézier control distance for a quarter circle.
const circleK = 0.5522847498

// RasterSurface is a CPU Surface backed by an *image.RGBA, used for headless
// rendering, screenshots and tests.
type RasterSurface struct {
	// ClearColor is painted by Clear. The zero value clears to transparent.
	ClearColor Color

	img   *image.RGBA
	z     *vector.Rasterizer
	discs int
}

// NewRasterSurface creates a width x height RasterSurface.
func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{}
	s.Resize(width, height)
	return s
}

// Resize implements Surface.
func (s *RasterSurface) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if s.z == nil {
		s.z = vector.NewRasterizer(width, height)
	} else {
		s.z.Reset(width, height)
	}
	s.discs = 0
}

// Size implements Surface.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (s *RasterSurface) Clear() {
	if s.ClearColor.A == 0 {
		clear(s.img.Pix)
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.ClearColor.RGBA8()), image.Point{}, draw.Src)
}

// Disc implements Surface.
func (s *RasterSurface) Disc(x, y, r float64) {
	if r <= 0 {
		return
	}
	k := r * circleK
	z := s.z
	z.MoveTo(float32(x+r), float32(y))
	z.CubeTo(float32(x+r), float32(y+k), float32(x+k), float32(y+r), float32(x), float32(y+r))
	z.CubeTo(float32(x-k), float32(y+r), float32(x-r), float32(y+k), float32(x-r), float32(y))
	z.CubeTo(float32(x-r), float32(y-k), float32(x-k), float32(y-r), float32(x), float32(y-r))
	z.CubeTo(float32(x+k), float32(y-r), float32(x+r), float32(y-k), float32(x+r), float32(y))
	z.ClosePath()
	s.discs++
}

// Fill implements Surface.
func (s *RasterSurface) Fill(c Color) {
	w, h := s.Size()
	if s.discs > 0 && w > 0 && h > 0 {
		s.z.DrawOp = draw.Over
		s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c.RGBA8()), image.Point{})
	}
	s.z.Reset(w, h)
	s.discs = 0
}

// Image returns the backing image. It is overwritten by subsequent frames.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}
