package particlefield

import "testing"

func TestNewParticleDefaults(t *testing.T) {
	p := NewParticle()
	if p.Scale != 1 {
		t.Errorf("Scale = %v, want 1", p.Scale)
	}
	if p.Color != ColorWhite {
		t.Errorf("Color = %v, want white", p.Color)
	}
	if p.VX != 0 || p.VY != 0 || p.Age != 0 || p.Frame != 0 {
		t.Errorf("unexpected non-zero fields: %+v", p)
	}
}

func TestUpdateNoArgsIsEulerStep(t *testing.T) {
	p := &Particle{X: 3, Y: 4, VX: 1.5, VY: -2, Age: 7, Scale: 2, Rotation: 0.3, Frame: 5, Color: ColorWhite, Lifespan: 20}
	before := *p
	p.Update()

	assertNear(t, "x", p.X, 4.5)
	assertNear(t, "y", p.Y, 2)
	assertNear(t, "age", p.Age, 8)

	if p.VX != before.VX || p.VY != before.VY || p.Scale != before.Scale ||
		p.Rotation != before.Rotation || p.Frame != before.Frame ||
		p.Color != before.Color || p.Lifespan != before.Lifespan {
		t.Errorf("other fields changed: before %+v after %+v", before, *p)
	}
}

func TestUpdateExplicitXSkipsVelocity(t *testing.T) {
	p := &Particle{X: 1, Y: 10, VX: 3, VY: 1}
	p.Update(WithX(5))
	if p.X != 5 {
		t.Errorf("x = %v, want exactly 5", p.X)
	}
	assertNear(t, "y", p.Y, 11)
}

func TestUpdateVelocityOverrideAppliesBeforeStep(t *testing.T) {
	p := &Particle{Y: 10, VY: 1}
	p.Update(WithVY(2))
	assertNear(t, "vy", p.VY, 2)
	assertNear(t, "y", p.Y, 12)
}

func TestUpdateAgeOverride(t *testing.T) {
	p := &Particle{Age: 40}
	p.Update(WithAge(0))
	if p.Age != 0 {
		t.Errorf("age = %v, want 0", p.Age)
	}
}

func TestUpdateVisualOverrides(t *testing.T) {
	p := NewParticle()
	red := Color{1, 0, 0, 0.5}
	p.Update(WithScale(3), WithRotation(1.25), WithFrame(9), WithColor(red), WithLifespan(60))

	if p.Scale != 3 || p.Rotation != 1.25 || p.Frame != 9 || p.Color != red || p.Lifespan != 60 {
		t.Errorf("overrides not applied: %+v", p)
	}
	assertNear(t, "age", p.Age, 1)
}

func TestUpdateBothAxesExplicit(t *testing.T) {
	p := &Particle{X: 1, Y: 1, VX: 100, VY: 100}
	p.Update(WithX(0), WithY(0), WithVX(5))
	if p.X != 0 || p.Y != 0 {
		t.Errorf("pos = (%v,%v), want (0,0)", p.X, p.Y)
	}
	if p.VX != 5 || p.VY != 100 {
		t.Errorf("vel = (%v,%v), want (5,100)", p.VX, p.VY)
	}
}

func TestUpdateRepeatedSteps(t *testing.T) {
	p := &Particle{VX: 2, VY: 0.5}
	for i := 0; i < 10; i++ {
		p.Update()
	}
	assertNear(t, "x", p.X, 20)
	assertNear(t, "y", p.Y, 5)
	assertNear(t, "age", p.Age, 10)
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name          string
		age, lifespan float64
		want          bool
	}{
		{"no lifespan", 1000, 0, false},
		{"young", 5, 10, false},
		{"exact", 10, 10, true},
		{"old", 11, 10, true},
	}
	for _, tt := range tests {
		p := &Particle{Age: tt.age, Lifespan: tt.lifespan}
		if got := p.Expired(); got != tt.want {
			t.Errorf("%s: Expired() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRangeRandom(t *testing.T) {
	r := Range{Min: 5, Max: 5}
	if r.Random() != 5 {
		t.Errorf("Random() on degenerate range = %v, want 5", r.Random())
	}
	r = Range{Min: -1, Max: 2}
	for i := 0; i < 100; i++ {
		v := r.Random()
		if v < -1 || v > 2 {
			t.Fatalf("Random() = %v, outside [-1, 2]", v)
		}
	}
}

func TestLerpColor(t *testing.T) {
	got := LerpColor(Color{0, 0, 0, 0}, Color{1, 0.5, 0.2, 1}, 0.5)
	assertNear(t, "r", got.R, 0.5)
	assertNear(t, "g", got.G, 0.25)
	assertNear(t, "b", got.B, 0.1)
	assertNear(t, "a", got.A, 0.5)
}
