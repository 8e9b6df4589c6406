package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/glyphswarm"
)

// DefaultFrameInterval is the terminal refresh period (~30 FPS).
const DefaultFrameInterval = 33 * time.Millisecond

// Runner drives a Swarm on a terminal. Input events are read on a separate
// goroutine and handed to the main loop over a channel, so the swarm itself
// only ever runs on the goroutine that called Run.
//
// Keys: Space pauses/resumes, 1/2 select a mode, q or Escape quits.
type Runner struct {
	Screen tcell.Screen
	Swarm  *glyphswarm.Swarm
	Sched  *glyphswarm.Scheduler

	surface *Surface
	paused  bool
}

// NewRunner initializes screen and builds a swarm sized to it.
func NewRunner(screen tcell.Screen, cfg glyphswarm.Config) (*Runner, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	surface := NewSurface(screen)
	surface.Background = cfg.BackgroundColor()
	sched := glyphswarm.NewScheduler(glyphswarm.SystemClock{})
	sw, err := glyphswarm.New(cfg, sched, surface)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return &Runner{Screen: screen, Swarm: sw, Sched: sched, surface: surface}, nil
}

// Run animates until the user quits, then restores the terminal.
func (r *Runner) Run(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	defer r.Screen.Fini()
	defer r.Swarm.Dispose()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.Screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Swarm.SetActive(true)
	for {
		select {
		case ev, ok := <-events:
			if !ok || !r.handle(ev) {
				return
			}
		case <-ticker.C:
			r.Sched.Pump()
		}
	}
}

// handle applies one input event and reports whether to keep running.
func (r *Runner) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.Screen.Sync()
		r.Swarm.Resize(r.surface.DotSize())
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				r.paused = !r.paused
				r.Swarm.SetActive(!r.paused)
			case '1':
				r.Swarm.SetMode(glyphswarm.ModePrimary)
			case '2':
				r.Swarm.SetMode(glyphswarm.ModeSecondary)
			}
		}
	}
	return true
}
