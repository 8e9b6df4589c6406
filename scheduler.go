package glyphswarm

import "time"

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// TimerID identifies a repeating timer. The zero value is never issued.
type TimerID uint64

type frameRequest struct {
	id FrameID
	fn func(now time.Time)
}

type timer struct {
	id     TimerID
	period time.Duration
	due    time.Time
	fn     func(now time.Time)
}

// Scheduler is a single-threaded frame and timer queue. Each call to Pump
// stands for one display refresh: due timers fire first, then the frame
// callbacks that were requested before Pump began. Callbacks requested from
// inside a callback run on the next Pump.
//
// Nothing runs in the background; all callbacks execute on the goroutine that
// calls Pump. A Scheduler is not safe for concurrent use.
type Scheduler struct {
	clock  Clock
	nextID uint64

	frames  []frameRequest
	running []frameRequest // frames being run by the current Pump
	timers  []*timer

	frameCount uint64
}

// NewScheduler creates a Scheduler reading time from clock. A nil clock uses
// SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Frame returns the number of completed Pump calls.
func (s *Scheduler) Frame() uint64 {
	return s.frameCount
}

func (s *Scheduler) id() uint64 {
	s.nextID++
	return s.nextID
}

// RequestFrame queues fn to run on the next Pump.
func (s *Scheduler) RequestFrame(fn func(now time.Time)) FrameID {
	id := FrameID(s.id())
	s.frames = append(s.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame removes a pending frame request. Unknown or already-run IDs
// are ignored.
func (s *Scheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i := range s.frames {
		if s.frames[i].id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
	// A callback may cancel a sibling that is still queued in this Pump.
	for i := range s.running {
		if s.running[i].id == id {
			s.running[i].fn = nil
			return
		}
	}
}

// PendingFrames returns the number of frame requests waiting for the next
// Pump.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// Every registers fn to fire each period, first at now+period.
func (s *Scheduler) Every(period time.Duration, fn func(now time.Time)) TimerID {
	id := TimerID(s.id())
	s.timers = append(s.timers, &timer{
		id:     id,
		period: period,
		due:    s.clock.Now().Add(period),
		fn:     fn,
	})
	return id
}

// CancelTimer removes a timer. Unknown IDs are ignored.
func (s *Scheduler) CancelTimer(id TimerID) {
	if id == 0 {
		return
	}
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// PendingTimers returns the number of registered timers.
func (s *Scheduler) PendingTimers() int {
	return len(s.timers)
}

// Pump runs one refresh. Each due timer fires at most once; if more than one
// period was missed the timer is rescheduled from now instead of catching up.
func (s *Scheduler) Pump() {
	now := s.clock.Now()

	// Timers may cancel themselves or others while firing, so walk a
	// snapshot and re-check membership before each call.
	if len(s.timers) > 0 {
		due := make([]*timer, 0, len(s.timers))
		for _, t := range s.timers {
			if !now.Before(t.due) {
				due = append(due, t)
			}
		}
		for _, t := range due {
			if !s.hasTimer(t) {
				continue
			}
			t.due = t.due.Add(t.period)
			if !t.due.After(now) {
				t.due = now.Add(t.period)
			}
			t.fn(now)
		}
	}

	s.running, s.frames = s.frames, s.running[:0]
	for i := range s.running {
		if fn := s.running[i].fn; fn != nil {
			s.running[i].fn = nil
			fn(now)
		}
	}
	s.running = s.running[:0]
	s.frameCount++
}

func (s *Scheduler) hasTimer(t *timer) bool {
	for _, x := range s.timers {
		if x == t {
			return true
		}
	}
	return false
}
