package glyphswarm

import "time"

// DefaultModeInterval is how long each text variant stays on screen.
const DefaultModeInterval = 8 * time.Second

// Mode selects which of the two text variants is displayed.
type Mode uint8

const (
	ModePrimary   Mode = iota // first text variant (Latin by default)
	ModeSecondary             // second text variant (Han by default)
)

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == ModePrimary {
		return ModeSecondary
	}
	return ModePrimary
}

func (m Mode) String() string {
	switch m {
	case ModePrimary:
		return "primary"
	case ModeSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// ModeTimer flips a Mode on a fixed period while started. Stopping cancels the
// timer outright; starting again counts a full period from the restart, so
// flips missed while stopped are never replayed.
type ModeTimer struct {
	sched    *Scheduler
	interval time.Duration
	mode     Mode
	id       TimerID
	onChange func(Mode)
	flips    int
}

// NewModeTimer creates a stopped timer starting in initial. onChange, if
// non-nil, runs after every flip with the new mode.
func NewModeTimer(sched *Scheduler, interval time.Duration, initial Mode, onChange func(Mode)) *ModeTimer {
	if interval <= 0 {
		interval = DefaultModeInterval
	}
	return &ModeTimer{
		sched:    sched,
		interval: interval,
		mode:     initial,
		onChange: onChange,
	}
}

// Start registers the flip timer. No-op if already started.
func (t *ModeTimer) Start() {
	if t.id != 0 {
		return
	}
	t.id = t.sched.Every(t.interval, func(time.Time) { t.flip() })
}

// Stop cancels the flip timer.
func (t *ModeTimer) Stop() {
	if t.id == 0 {
		return
	}
	t.sched.CancelTimer(t.id)
	t.id = 0
}

// Running reports whether the timer is registered.
func (t *ModeTimer) Running() bool {
	return t.id != 0
}

// Mode returns the current mode.
func (t *ModeTimer) Mode() Mode {
	return t.mode
}

// Flips returns how many times the timer has flipped the mode.
func (t *ModeTimer) Flips() int {
	return t.flips
}

// Interval returns the flip period.
func (t *ModeTimer) Interval() time.Duration {
	return t.interval
}

// Set changes the mode without counting a flip. The change handler runs only
// when the mode actually changes.
func (t *ModeTimer) Set(m Mode) {
	if m == t.mode {
		return
	}
	t.mode = m
	if t.onChange != nil {
		t.onChange(m)
	}
}

func (t *ModeTimer) flip() {
	t.flips++
	t.mode = t.mode.Next()
	if t.onChange != nil {
		t.onChange(t.mode)
	}
}
