package glyphswarm

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func keysDown(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, d := range keys {
			if d == k {
				return true
			}
		}
		return false
	}
}

func TestHandleKeysSameTick(t *testing.T) {
	h := newTestHeadless(t, testConfig(), 320, 200)
	g := &Game{swarm: h.Swarm, sched: h.Sched}

	if err := g.handleKeys(keysDown(ebiten.KeySpace, ebiten.KeyS, ebiten.KeyF, ebiten.Key2)); err != nil {
		t.Fatalf("handleKeys: %v", err)
	}
	if !g.paused {
		t.Error("Space was dropped")
	}
	if !g.showFPS {
		t.Error("F was dropped")
	}
	if h.Swarm.Mode() != ModeSecondary {
		t.Error("2 was dropped")
	}
	if len(g.screenshotQ) != 1 || g.screenshotQ[0] != "secondary" {
		t.Errorf("screenshotQ = %v, want [secondary]", g.screenshotQ)
	}
}

func TestHandleKeysEscape(t *testing.T) {
	h := newTestHeadless(t, testConfig(), 320, 200)
	g := &Game{swarm: h.Swarm, sched: h.Sched}

	err := g.handleKeys(keysDown(ebiten.KeyEscape, ebiten.KeySpace))
	if !errors.Is(err, ebiten.Termination) {
		t.Fatalf("err = %v, want ebiten.Termination", err)
	}
	if !h.Swarm.IsDisposed() {
		t.Error("Escape did not dispose the swarm")
	}
	if err := g.handleKeys(keysDown()); err != nil {
		t.Errorf("no keys: err = %v", err)
	}
}
