package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/glyphswarm"
)

func newTestRunner(t *testing.T) (*Runner, tcell.SimulationScreen) {
	t.Helper()
	cfg := glyphswarm.DefaultConfig()
	cfg.ParticleCount = 100
	cfg.Stride = 1
	cfg.Seed = 5
	cfg.Primary.Text = "HI"
	cfg.Secondary.Text = "YO"

	screen := tcell.NewSimulationScreen("UTF-8")
	r, err := NewRunner(screen, cfg)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	t.Cleanup(screen.Fini)
	return r, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewRunnerSizesSwarmToScreen(t *testing.T) {
	r, screen := newTestRunner(t)
	cols, rows := screen.Size()
	w, h := r.Swarm.Size()
	if w != cols*DotsX || h != rows*DotsY {
		t.Errorf("swarm = %dx%d, want %dx%d", w, h, cols*DotsX, rows*DotsY)
	}
}

func TestNewRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := glyphswarm.DefaultConfig()
	cfg.Stride = 0
	if _, err := NewRunner(tcell.NewSimulationScreen("UTF-8"), cfg); err == nil {
		t.Error("expected error for stride 0")
	}
}

func TestHandleQuitKeys(t *testing.T) {
	r, _ := newTestRunner(t)
	quits := []*tcell.EventKey{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range quits {
		if r.handle(ev) {
			t.Errorf("%s did not quit", ev.Name())
		}
	}
	if !r.handle(key('x')) {
		t.Error("unbound key quit")
	}
}

func TestHandlePause(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Swarm.SetActive(true)

	r.handle(key(' '))
	if r.Swarm.Active() || r.Sched.PendingFrames() != 0 {
		t.Fatal("space did not pause the swarm")
	}
	r.handle(key(' '))
	if !r.Swarm.Active() || r.Sched.PendingFrames() != 1 {
		t.Fatal("second space did not resume the swarm")
	}
}

func TestHandleModeKeys(t *testing.T) {
	r, _ := newTestRunner(t)
	r.handle(key('2'))
	if r.Swarm.Mode() != glyphswarm.ModeSecondary {
		t.Fatalf("Mode = %v after '2', want secondary", r.Swarm.Mode())
	}
	r.handle(key('1'))
	if r.Swarm.Mode() != glyphswarm.ModePrimary {
		t.Fatalf("Mode = %v after '1', want primary", r.Swarm.Mode())
	}
}

func TestHandleResize(t *testing.T) {
	r, screen := newTestRunner(t)
	screen.SetSize(60, 20)
	if !r.handle(tcell.NewEventResize(60, 20)) {
		t.Fatal("resize quit the runner")
	}
	w, h := r.Swarm.Size()
	if w != 120 || h != 80 {
		t.Errorf("swarm = %dx%d after resize, want 120x80", w, h)
	}
	for i, p := range r.Swarm.Particles() {
		if p.TargetX < 0 || p.TargetX >= 120 || p.TargetY < 0 || p.TargetY >= 80 {
			t.Fatalf("particle %d target (%v, %v) outside the new grid", i, p.TargetX, p.TargetY)
		}
	}
}

func TestRunnerDrawsBraille(t *testing.T) {
	r, screen := newTestRunner(t)
	r.Swarm.SetActive(true)
	r.Sched.Pump()

	cols, rows := screen.Size()
	lit := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			mainc, _, _, _ := screen.GetContent(col, row)
			if mainc >= brailleBase && mainc <= brailleBase+0xff {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no braille cells drawn after a frame")
	}
}
