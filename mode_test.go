package glyphswarm

import (
	"testing"
	"time"
)

func TestModeNextAndString(t *testing.T) {
	if ModePrimary.Next() != ModeSecondary || ModeSecondary.Next() != ModePrimary {
		t.Error("Next should alternate between the two modes")
	}
	tests := []struct {
		m    Mode
		want string
	}{
		{ModePrimary, "primary"},
		{ModeSecondary, "secondary"},
		{Mode(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestModeTimerFlipsOnInterval(t *testing.T) {
	sched, clock := newTestScheduler()
	var seen []Mode
	mt := NewModeTimer(sched, 0, ModePrimary, func(m Mode) { seen = append(seen, m) })
	if mt.Interval() != DefaultModeInterval {
		t.Fatalf("Interval = %v, want %v", mt.Interval(), DefaultModeInterval)
	}
	mt.Start()
	mt.Start()
	if sched.PendingTimers() != 1 {
		t.Fatalf("PendingTimers = %d, want 1", sched.PendingTimers())
	}

	clock.Advance(7990 * time.Millisecond)
	sched.Pump()
	if mt.Mode() != ModePrimary || mt.Flips() != 0 {
		t.Fatalf("flipped early at 7.99s: mode %v, flips %d", mt.Mode(), mt.Flips())
	}

	clock.Advance(10 * time.Millisecond)
	sched.Pump()
	if mt.Mode() != ModeSecondary || mt.Flips() != 1 {
		t.Fatalf("at 8s: mode %v, flips %d, want secondary and 1", mt.Mode(), mt.Flips())
	}

	clock.Advance(DefaultModeInterval)
	sched.Pump()
	if mt.Mode() != ModePrimary || mt.Flips() != 2 {
		t.Fatalf("at 16s: mode %v, flips %d, want primary and 2", mt.Mode(), mt.Flips())
	}
	if len(seen) != 2 || seen[0] != ModeSecondary || seen[1] != ModePrimary {
		t.Errorf("onChange saw %v, want [secondary primary]", seen)
	}
}

func TestModeTimerStop(t *testing.T) {
	sched, clock := newTestScheduler()
	mt := NewModeTimer(sched, time.Second, ModePrimary, nil)
	mt.Start()
	mt.Stop()
	mt.Stop()
	if mt.Running() || sched.PendingTimers() != 0 {
		t.Fatal("Stop left the timer registered")
	}
	clock.Advance(5 * time.Second)
	sched.Pump()
	if mt.Flips() != 0 {
		t.Errorf("stopped timer flipped %d times", mt.Flips())
	}
}

func TestModeTimerRestartDoesNotReplay(t *testing.T) {
	sched, clock := newTestScheduler()
	mt := NewModeTimer(sched, time.Second, ModePrimary, nil)
	mt.Start()
	clock.Advance(500 * time.Millisecond)
	sched.Pump()
	mt.Stop()

	// Hidden for a long time.
	clock.Advance(10 * time.Second)
	sched.Pump()
	mt.Start()
	sched.Pump()
	if mt.Flips() != 0 {
		t.Fatalf("flips = %d right after restart, want 0", mt.Flips())
	}

	clock.Advance(999 * time.Millisecond)
	sched.Pump()
	if mt.Flips() != 0 {
		t.Fatalf("flipped before a full interval after restart")
	}
	clock.Advance(time.Millisecond)
	sched.Pump()
	if mt.Flips() != 1 {
		t.Errorf("flips = %d one interval after restart, want 1", mt.Flips())
	}
}

func TestModeTimerSet(t *testing.T) {
	sched, _ := newTestScheduler()
	calls := 0
	mt := NewModeTimer(sched, time.Second, ModePrimary, func(Mode) { calls++ })

	mt.Set(ModePrimary)
	if calls != 0 {
		t.Errorf("Set to the current mode called onChange")
	}
	mt.Set(ModeSecondary)
	if mt.Mode() != ModeSecondary || calls != 1 {
		t.Errorf("Set(secondary): mode %v, calls %d", mt.Mode(), calls)
	}
	if mt.Flips() != 0 {
		t.Errorf("Set counted as a flip")
	}
}
