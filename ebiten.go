package glyphswarm

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a GPU Surface backed by an offscreen *ebiten.Image. The
// image persists between frames, so a stopped swarm keeps showing its last
// frame.
type EbitenSurface struct {
	// ClearColor is painted by Clear. The zero value clears to transparent.
	ClearColor Color

	img   *ebiten.Image
	w, h  int
	discs []Vec2
	radii []float64
}

// NewEbitenSurface creates a width x height surface.
func NewEbitenSurface(width, height int) *EbitenSurface {
	s := &EbitenSurface{}
	s.Resize(width, height)
	return s
}

// Resize implements Surface. Ebitengine images cannot be empty, so a
// non-positive size releases the image until the next positive resize.
func (s *EbitenSurface) Resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = max(width, 0), max(height, 0)
	if s.w > 0 && s.h > 0 {
		s.img = ebiten.NewImage(s.w, s.h)
	}
	s.discs = s.discs[:0]
	s.radii = s.radii[:0]
}

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	return s.w, s.h
}

// Clear implements Surface.
func (s *EbitenSurface) Clear() {
	if s.img == nil {
		return
	}
	if s.ClearColor.A == 0 {
		s.img.Clear()
		return
	}
	s.img.Fill(s.ClearColor.RGBA8())
}

// Disc implements Surface.
func (s *EbitenSurface) Disc(x, y, r float64) {
	s.discs = append(s.discs, Vec2{x, y})
	s.radii = append(s.radii, r)
}

// Fill implements Surface.
func (s *EbitenSurface) Fill(c Color) {
	if s.img != nil {
		clr := c.RGBA8()
		for i, d := range s.discs {
			if s.radii[i] > 0 {
				vector.DrawFilledCircle(s.img, float32(d.X), float32(d.Y), float32(s.radii[i]), clr, true)
			}
		}
	}
	s.discs = s.discs[:0]
	s.radii = s.radii[:0]
}

// Image returns the offscreen image, or nil while the surface is empty.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS starts with the FPS overlay visible. F toggles it.
	ShowFPS bool
	// PauseOnBlur deactivates the swarm while the window is unfocused, the
	// desktop counterpart of scrolling the section out of view.
	PauseOnBlur bool
	// ScreenshotDir receives PNGs taken with S. Empty means "screenshots".
	ScreenshotDir string
}

// Game adapts a Swarm to ebiten.Game. Update pumps the scheduler once per
// tick, so all swarm work happens on Ebitengine's update goroutine.
//
// Keys: Space pauses/resumes, F toggles the FPS overlay, S saves a
// screenshot, 1/2 select a mode, Escape quits.
type Game struct {
	swarm   *Swarm
	sched   *Scheduler
	surface *EbitenSurface
	run     RunConfig

	paused      bool
	pendingW    int
	pendingH    int
	fps         *fpsOverlay
	showFPS     bool
	screenshotQ []string
}

// NewGame builds a Swarm on an EbitenSurface driven by the system clock.
func NewGame(cfg Config, run RunConfig) (*Game, error) {
	if run.Width <= 0 {
		run.Width = 800
	}
	if run.Height <= 0 {
		run.Height = 600
	}
	if run.ScreenshotDir == "" {
		run.ScreenshotDir = DefaultScreenshotDir
	}

	sched := NewScheduler(SystemClock{})
	surface := NewEbitenSurface(run.Width, run.Height)
	surface.ClearColor = cfg.BackgroundColor()
	sw, err := New(cfg, sched, surface)
	if err != nil {
		return nil, err
	}
	return &Game{
		swarm:   sw,
		sched:   sched,
		surface: surface,
		run:     run,
		fps:     newFPSOverlay(),
		showFPS: run.ShowFPS,
	}, nil
}

// Swarm returns the game's swarm.
func (g *Game) Swarm() *Swarm {
	return g.swarm
}

// Screenshot queues a labeled PNG capture at the end of the next Draw.
func (g *Game) Screenshot(label string) {
	g.screenshotQ = append(g.screenshotQ, label)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if err := g.handleKeys(inpututil.IsKeyJustPressed); err != nil {
		return err
	}

	if g.pendingW > 0 && g.pendingH > 0 {
		g.swarm.Resize(g.pendingW, g.pendingH)
	}

	visible := !g.paused && (!g.run.PauseOnBlur || ebiten.IsFocused())
	g.swarm.SetActive(visible)
	g.sched.Pump()

	if g.showFPS {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

// handleKeys applies every key pressed this tick. Keys are independent, so
// several may act in the same tick.
func (g *Game) handleKeys(pressed func(ebiten.Key) bool) error {
	if pressed(ebiten.KeyEscape) {
		g.swarm.Dispose()
		return ebiten.Termination
	}
	if pressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if pressed(ebiten.KeyF) {
		g.showFPS = !g.showFPS
	}
	if pressed(ebiten.Key1) {
		g.swarm.SetMode(ModePrimary)
	}
	if pressed(ebiten.Key2) {
		g.swarm.SetMode(ModeSecondary)
	}
	if pressed(ebiten.KeyS) {
		g.Screenshot(g.swarm.Mode().String())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	if g.showFPS {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The new size is applied on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQ) == 0 {
		return
	}
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	for _, label := range g.screenshotQ {
		if _, err := SaveScreenshot(g.run.ScreenshotDir, label, pixels, w, h); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[glyphswarm] %v\n", err)
		}
	}
	g.screenshotQ = g.screenshotQ[:0]
}

// Run opens a window and animates a swarm until it is closed or Escape is
// pressed.
func Run(cfg Config, run RunConfig) error {
	g, err := NewGame(cfg, run)
	if err != nil {
		return err
	}
	title := run.Title
	if title == "" {
		title = "glyphswarm"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.run.Width, g.run.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("glyphswarm: run: %w", err)
	}
	return nil
}
