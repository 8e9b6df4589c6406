package glyphswarm

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation defaults.
const (
	DefaultEase       = 0.015
	DefaultRadius     = 2.0
	DefaultHueSpeed   = 0.02 // degrees per millisecond, one cycle per 18s
	DefaultSaturation = 0.8
	DefaultLightness  = 0.6
	DefaultFadeIn     = 600 * time.Millisecond
)

// LoopOptions tunes an AnimationLoop. Zero Ease and Radius take the defaults
// above; zero FadeIn and Twinkle disable the effect. HueSpeed, Saturation and
// Lightness default only when all three are zero, so a grey or fixed-hue
// swarm can be asked for by setting the others.
type LoopOptions struct {
	Ease       float64
	Radius     float64
	HueSpeed   float64
	Saturation float64
	Lightness  float64
	FadeIn     time.Duration
	Twinkle    float64
	Seed       int64

	// colorSet marks the color fields as given, zeros included.
	colorSet bool
}

func (o LoopOptions) withDefaults() LoopOptions {
	if o.Ease <= 0 {
		o.Ease = DefaultEase
	}
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.colorSet || o.HueSpeed != 0 || o.Saturation != 0 || o.Lightness != 0 {
		return o
	}
	o.HueSpeed = DefaultHueSpeed
	o.Saturation = DefaultSaturation
	o.Lightness = DefaultLightness
	return o
}

// AnimationLoop eases a Field toward its targets and paints it once per
// scheduler frame while running. It keeps at most one frame request pending
// and issues none while stopped.
type AnimationLoop struct {
	sched   *Scheduler
	field   *Field
	surface Surface
	opts    LoopOptions
	twinkle *twinkle

	running bool
	pending FrameID
	epoch   time.Time
	last    time.Time

	fade  *gween.Tween
	alpha float64

	frames  uint64
	onFrame func(now time.Time, elapsed time.Duration)
}

// NewAnimationLoop creates a stopped loop drawing field onto surface.
func NewAnimationLoop(sched *Scheduler, field *Field, surface Surface, opts LoopOptions) *AnimationLoop {
	opts = opts.withDefaults()
	return &AnimationLoop{
		sched:   sched,
		field:   field,
		surface: surface,
		opts:    opts,
		twinkle: newTwinkle(opts.Twinkle, opts.Seed),
		epoch:   sched.Now(),
		alpha:   1,
	}
}

// Start begins issuing frames. Calling Start on a running loop does nothing.
// Each start replays the fade-in when one is configured.
func (l *AnimationLoop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.last = time.Time{}
	if l.opts.FadeIn > 0 {
		l.fade = gween.New(0, 1, float32(l.opts.FadeIn.Seconds()), ease.OutCubic)
		l.alpha = 0
	} else {
		l.fade = nil
		l.alpha = 1
	}
	if l.pending == 0 {
		l.pending = l.sched.RequestFrame(l.tick)
	}
}

// Stop cancels the pending frame, if any, and issues no further frames.
func (l *AnimationLoop) Stop() {
	l.running = false
	if l.pending != 0 {
		l.sched.CancelFrame(l.pending)
		l.pending = 0
	}
}

// Running reports whether the loop is started.
func (l *AnimationLoop) Running() bool {
	return l.running
}

// Pending reports whether a frame request is outstanding.
func (l *AnimationLoop) Pending() bool {
	return l.pending != 0
}

// Frames returns the number of frames drawn.
func (l *AnimationLoop) Frames() uint64 {
	return l.frames
}

// Alpha returns the current fade-in opacity in [0, 1].
func (l *AnimationLoop) Alpha() float64 {
	return l.alpha
}

// Hue returns the swarm hue in degrees at now.
func (l *AnimationLoop) Hue(now time.Time) float64 {
	ms := float64(now.Sub(l.epoch)) / float64(time.Millisecond)
	h := math.Mod(ms*l.opts.HueSpeed, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Color returns the fill color at now, including the fade-in alpha.
func (l *AnimationLoop) Color(now time.Time) Color {
	return HSL(l.Hue(now), l.opts.Saturation, l.opts.Lightness).WithAlpha(l.alpha)
}

func (l *AnimationLoop) tick(now time.Time) {
	l.pending = 0
	if !l.running {
		return
	}
	start := time.Now()

	if l.fade != nil {
		var dt float32
		if !l.last.IsZero() {
			dt = float32(now.Sub(l.last).Seconds())
		}
		v, done := l.fade.Update(dt)
		l.alpha = clamp01(float64(v))
		if done {
			l.fade = nil
			l.alpha = 1
		}
	}
	l.last = now

	l.surface.Clear()
	l.field.Step(l.opts.Ease)

	seconds := now.Sub(l.epoch).Seconds()
	for i, p := range l.field.Particles() {
		l.surface.Disc(p.X, p.Y, l.twinkle.radius(l.opts.Radius, i, seconds))
	}
	l.surface.Fill(l.Color(now))

	l.frames++
	if l.onFrame != nil {
		l.onFrame(now, time.Since(start))
	}
	l.pending = l.sched.RequestFrame(l.tick)
}
