package glyphswarm

import "time"

// DefaultFrameInterval is the simulated display refresh of a Headless swarm.
const DefaultFrameInterval = time.Second / 60

// Headless runs a Swarm on a RasterSurface with a ManualClock, advancing
// simulated time frame by frame. It backs offline rendering and tests.
type Headless struct {
	Swarm   *Swarm
	Clock   *ManualClock
	Sched   *Scheduler
	Surface *RasterSurface

	// FrameInterval is the simulated time between pumps.
	FrameInterval time.Duration
	// ScreenshotDir receives screenshot steps of a Script.
	ScreenshotDir string
}

// NewHeadless creates an inactive swarm on a width x height raster whose
// clock starts at start.
func NewHeadless(cfg Config, width, height int, start time.Time) (*Headless, error) {
	clock := NewManualClock(start)
	sched := NewScheduler(clock)
	surface := NewRasterSurface(width, height)
	surface.ClearColor = cfg.BackgroundColor()
	sw, err := New(cfg, sched, surface)
	if err != nil {
		return nil, err
	}
	return &Headless{
		Swarm:         sw,
		Clock:         clock,
		Sched:         sched,
		Surface:       surface,
		FrameInterval: DefaultFrameInterval,
		ScreenshotDir: DefaultScreenshotDir,
	}, nil
}

// Advance simulates d of wall-clock time, pumping once per frame interval.
// The last frame is shortened so exactly d elapses.
func (h *Headless) Advance(d time.Duration) {
	step := h.FrameInterval
	if step <= 0 {
		step = DefaultFrameInterval
	}
	for d > 0 {
		dt := min(step, d)
		h.Clock.Advance(dt)
		h.Sched.Pump()
		d -= dt
	}
}

// Step pumps n frames.
func (h *Headless) Step(n int) {
	step := h.FrameInterval
	if step <= 0 {
		step = DefaultFrameInterval
	}
	for range n {
		h.Clock.Advance(step)
		h.Sched.Pump()
	}
}
