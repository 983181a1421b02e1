package particlefield

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewGameStartsScheduler(t *testing.T) {
	g := NewGame(NewController(nil, nil), nil)
	if !g.Scheduler.Running() {
		t.Error("scheduler should be running after NewGame")
	}
	if g.Renderer == nil || g.Controller == nil {
		t.Error("renderer and controller must be set")
	}
}

func TestGameUpdateDrawCycle(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var sizes []Size
	c := NewController(newFixedFrames(4, 4), TickFunc(func(c *Controller, _ time.Duration, size Size) {
		sizes = append(sizes, size)
		c.Spawn(NewParticle())
	}))
	g := NewGame(c, clock)
	screen := ebiten.NewImage(320, 240)

	clock.Advance(time.Second / 60)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	g.Draw(screen)

	if len(sizes) != 1 || sizes[0] != (Size{320, 240}) {
		t.Errorf("tick sizes = %v, want one 320x240", sizes)
	}
	if g.Renderer.Stats().DrawCalls != 1 {
		t.Errorf("DrawCalls = %d, want 1", g.Renderer.Stats().DrawCalls)
	}

	// A second Draw without Update redraws without ticking.
	g.Draw(screen)
	if len(sizes) != 1 {
		t.Errorf("tick ran without a scheduler frame")
	}
}

func TestGameUpdateStopsOnRenderError(t *testing.T) {
	c := NewController(newFixedFrames(4, 4), nil)
	p := NewParticle()
	p.Frame = -1
	c.Spawn(p)
	g := NewGame(c, NewManualClock(time.Unix(0, 0)))

	if err := g.Update(); err != nil {
		t.Fatalf("first Update: %v", err)
	}
	g.Draw(ebiten.NewImage(16, 16))
	if err := g.Update(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Update err = %v, want ErrInvalidArgument", err)
	}
}

func TestGameUpdateFunc(t *testing.T) {
	g := NewGame(NewController(nil, nil), nil)
	sentinel := errors.New("quit")
	g.UpdateFunc = func() error { return sentinel }
	if err := g.Update(); err != sentinel {
		t.Errorf("Update = %v, want sentinel", err)
	}
}

func TestGameLayout(t *testing.T) {
	g := NewGame(NewController(nil, nil), nil)
	if w, h := g.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d, want window size", w, h)
	}
	g.width, g.height = 400, 300
	if w, h := g.Layout(800, 600); w != 400 || h != 300 {
		t.Errorf("Layout = %dx%d, want fixed 400x300", w, h)
	}
}
