package glyphswarm

import (
	"math/rand/v2"
	"slices"
)

// Swarm is one mounted text swarm. It owns the particle field, the animation
// loop, the mode timer and a sampler per text variant, and runs entirely on
// the goroutine that pumps its Scheduler.
//
// The host reports visibility with SetActive and viewport changes with
// Resize, and calls Dispose on teardown.
type Swarm struct {
	cfg     Config
	sched   *Scheduler
	surface Surface

	texts    [2]string
	samplers [2]*GlyphSampler

	field *Field
	loop  *AnimationLoop
	timer *ModeTimer

	width, height int
	retargeted    bool
	coverChecked  [2]bool
	active        bool
	disposed      bool

	log   debugLogger
	stats debugStats
}

// New builds a Swarm drawing onto surface, sized to the surface's current
// dimensions. The swarm starts inactive in ModePrimary.
func New(cfg Config, sched *Scheduler, surface Surface) (*Swarm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Swarm{
		cfg:     cfg,
		sched:   sched,
		surface: surface,
		texts:   [2]string{cfg.Primary.Text, cfg.Secondary.Text},
		log:     newDebugLogger(cfg.Debug),
	}

	opts := SamplerOptions{Stride: cfg.Stride, Threshold: uint8(cfg.AlphaThreshold)}
	for i, tc := range [2]TextConfig{cfg.Primary, cfg.Secondary} {
		var f *Font
		if tc.Font != "" {
			var err error
			if f, err = LoadFontFile(tc.Font); err != nil {
				return nil, err
			}
		}
		s.samplers[i] = NewGlyphSampler(f, opts)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	w, h := surface.Size()
	s.field = NewField(cfg.ParticleCount, float64(w), float64(h), rng)
	s.loop = NewAnimationLoop(sched, s.field, surface, cfg.loopOptions(int64(seed)))
	s.timer = NewModeTimer(sched, cfg.ModeInterval.Duration, ModePrimary, s.modeChanged)
	if cfg.Debug {
		s.loop.onFrame = s.logFrame
	}

	s.Resize(w, h)
	return s, nil
}

// SetActive starts or stops animation and mode flipping. Deactivation cancels
// the pending frame and the flip timer immediately; reactivation resumes from
// the current particle state.
func (s *Swarm) SetActive(active bool) {
	if s.disposed || active == s.active {
		return
	}
	s.active = active
	if active {
		s.loop.Start()
		s.timer.Start()
	} else {
		s.loop.Stop()
		s.timer.Stop()
	}
	s.log.logf("active: %v", active)
}

// Active reports whether the swarm is animating.
func (s *Swarm) Active() bool {
	return s.active
}

// Resize sets the viewport. The surface is resized and targets are resampled
// when the size changes; non-positive sizes are ignored.
func (s *Swarm) Resize(width, height int) {
	if s.disposed || width <= 0 || height <= 0 {
		return
	}
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.surface.Resize(width, height)
	s.retarget()
}

// Size returns the current viewport.
func (s *Swarm) Size() (width, height int) {
	return s.width, s.height
}

// Mode returns the displayed text variant.
func (s *Swarm) Mode() Mode {
	return s.timer.Mode()
}

// SetMode switches the displayed variant and retargets. The flip timer keeps
// its schedule.
func (s *Swarm) SetMode(m Mode) {
	if s.disposed {
		return
	}
	s.timer.Set(m)
}

// Text returns the text of the current mode.
func (s *Swarm) Text() string {
	return s.texts[s.Mode()]
}

// Particles returns a snapshot of the particle states.
func (s *Swarm) Particles() []Particle {
	return slices.Clone(s.field.Particles())
}

// Frames returns the number of animation frames drawn.
func (s *Swarm) Frames() uint64 {
	return s.loop.Frames()
}

// Alpha returns the current fade-in opacity.
func (s *Swarm) Alpha() float64 {
	return s.loop.Alpha()
}

// Surface returns the drawing surface.
func (s *Swarm) Surface() Surface {
	return s.surface
}

// Dispose stops the swarm for good. Further calls are ignored.
func (s *Swarm) Dispose() {
	if s.disposed {
		return
	}
	s.SetActive(false)
	s.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (s *Swarm) IsDisposed() bool {
	return s.disposed
}

func (s *Swarm) modeChanged(m Mode) {
	s.log.logf("mode: %s", m)
	s.retarget()
}

// retarget samples the current text at the current size and hands the cloud
// to the field. An empty cloud keeps the previous targets, or centers them
// if nothing was ever sampled.
func (s *Swarm) retarget() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	m := s.Mode()
	sampler := s.samplers[m]
	if !s.coverChecked[m] {
		s.coverChecked[m] = true
		s.logMissingGlyphs(m, sampler.font)
	}
	points := sampler.Sample(s.texts[m], s.width, s.height)
	s.logSample(m, len(points), sampler.lastDuration)
	if len(points) == 0 {
		if !s.retargeted {
			s.field.Center(float64(s.width), float64(s.height))
		}
		return
	}
	s.field.Retarget(points)
	s.retargeted = true
}
