package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/glyphswarm"
)

// Braille cells are 2 dots wide and 4 dots tall.
const (
	DotsX = 2
	DotsY = 4
)

const brailleBase = 0x2800

// brailleBits maps a dot position inside a cell to its Unicode braille bit.
var brailleBits = [DotsY][DotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

var _ glyphswarm.Surface = (*Surface)(nil)

// Surface is a glyphswarm.Surface drawing braille dots onto a tcell.Screen.
// Fill composites and shows the frame in one pass.
type Surface struct {
	// Background is the cell background and the color faded particles blend
	// toward.
	Background glyphswarm.Color

	screen     tcell.Screen
	w, h       int // dot grid
	cols, rows int
	cells      []uint8 // braille bits per cell
	pending    []int   // dot indices added since the last Fill
}

// NewSurface creates a Surface covering the whole screen.
func NewSurface(screen tcell.Screen) *Surface {
	s := &Surface{screen: screen}
	s.Resize(s.DotSize())
	return s
}

// DotSize returns the dot grid matching the screen's current size.
func (s *Surface) DotSize() (width, height int) {
	cols, rows := s.screen.Size()
	return cols * DotsX, rows * DotsY
}

// Resize implements glyphswarm.Surface.
func (s *Surface) Resize(width, height int) {
	s.w, s.h = max(width, 0), max(height, 0)
	s.cols = (s.w + DotsX - 1) / DotsX
	s.rows = (s.h + DotsY - 1) / DotsY
	s.cells = make([]uint8, s.cols*s.rows)
	s.pending = s.pending[:0]
}

// Size implements glyphswarm.Surface.
func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// Clear implements glyphswarm.Surface.
func (s *Surface) Clear() {
	clear(s.cells)
	s.pending = s.pending[:0]
}

// Disc implements glyphswarm.Surface. Only the dot under the center is lit.
func (s *Surface) Disc(x, y, _ float64) {
	dx, dy := int(math.Floor(x)), int(math.Floor(y))
	if dx < 0 || dy < 0 || dx >= s.w || dy >= s.h {
		return
	}
	s.pending = append(s.pending, dy*s.w+dx)
}

// Fill implements glyphswarm.Surface.
func (s *Surface) Fill(c glyphswarm.Color) {
	for _, idx := range s.pending {
		dx, dy := idx%s.w, idx/s.w
		s.cells[(dy/DotsY)*s.cols+dx/DotsX] |= brailleBits[dy%DotsY][dx%DotsX]
	}
	s.pending = s.pending[:0]

	bg := toTcell(s.Background)
	base := tcell.StyleDefault.Background(bg)
	fg := base.Foreground(toTcell(blend(s.Background, c)))
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			bits := s.cells[row*s.cols+col]
			if bits == 0 {
				s.screen.SetContent(col, row, ' ', nil, base)
				continue
			}
			s.screen.SetContent(col, row, rune(brailleBase+int(bits)), nil, fg)
		}
	}
	s.screen.Show()
}

// Cell returns the braille bits of a cell from the last Fill.
func (s *Surface) Cell(col, row int) uint8 {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0
	}
	return s.cells[row*s.cols+col]
}

// blend composites c over bg using c's alpha; terminals have no alpha.
func blend(bg, c glyphswarm.Color) glyphswarm.Color {
	from := colorful.Color{R: bg.R, G: bg.G, B: bg.B}
	to := colorful.Color{R: c.R, G: c.G, B: c.B}
	out := from.BlendRgb(to, c.A).Clamped()
	return glyphswarm.Color{R: out.R, G: out.G, B: out.B, A: 1}
}

func toTcell(c glyphswarm.Color) tcell.Color {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
