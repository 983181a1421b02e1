package particlefield

import "math/rand/v2"

// Particle is the mutable simulation state of one sprite. Callers own the
// semantics of every field; the only behavior attached is Update.
type Particle struct {
	X, Y     float64
	Scale    float64
	Rotation float64 // radians
	// Frame selects the atlas frame. It is unbounded and wraps only at
	// lookup time; it must be non-negative when drawn.
	Frame    int
	Color    Color
	VX, VY   float64
	Lifespan float64 // caller-defined unit
	Age      float64
}

// NewParticle returns a particle with unit scale and a white tint.
func NewParticle() *Particle {
	return &Particle{Scale: 1, Color: ColorWhite}
}

// particleUpdate collects the overrides passed to Particle.Update.
type particleUpdate struct {
	x, y, vx, vy, age, lifespan *float64
	scale, rotation             *float64
	frame                       *int
	color                       *Color
}

// UpdateOption overrides one particle field during Update.
type UpdateOption func(*particleUpdate)

// WithX sets X exactly; velocity is not applied to X in that call.
func WithX(v float64) UpdateOption { return func(u *particleUpdate) { u.x = &v } }

// WithY sets Y exactly; velocity is not applied to Y in that call.
func WithY(v float64) UpdateOption { return func(u *particleUpdate) { u.y = &v } }

// WithVX sets the horizontal velocity before the position step.
func WithVX(v float64) UpdateOption { return func(u *particleUpdate) { u.vx = &v } }

// WithVY sets the vertical velocity before the position step.
func WithVY(v float64) UpdateOption { return func(u *particleUpdate) { u.vy = &v } }

// WithAge sets Age instead of incrementing it.
func WithAge(v float64) UpdateOption { return func(u *particleUpdate) { u.age = &v } }

func WithLifespan(v float64) UpdateOption { return func(u *particleUpdate) { u.lifespan = &v } }
func WithScale(v float64) UpdateOption    { return func(u *particleUpdate) { u.scale = &v } }
func WithRotation(v float64) UpdateOption { return func(u *particleUpdate) { u.rotation = &v } }
func WithFrame(v int) UpdateOption        { return func(u *particleUpdate) { u.frame = &v } }
func WithColor(v Color) UpdateOption      { return func(u *particleUpdate) { u.color = &v } }

// Update applies the given overrides and then takes one Euler step.
//
// Order: visual overrides, then velocity overrides, then Age (override or
// +1), then X += VX and Y += VY for each axis not explicitly set. With no
// options this is a plain integration step.
func (p *Particle) Update(opts ...UpdateOption) {
	var u particleUpdate
	for _, opt := range opts {
		opt(&u)
	}

	if u.scale != nil {
		p.Scale = *u.scale
	}
	if u.rotation != nil {
		p.Rotation = *u.rotation
	}
	if u.frame != nil {
		p.Frame = *u.frame
	}
	if u.color != nil {
		p.Color = *u.color
	}
	if u.lifespan != nil {
		p.Lifespan = *u.lifespan
	}

	if u.vx != nil {
		p.VX = *u.vx
	}
	if u.vy != nil {
		p.VY = *u.vy
	}

	if u.age != nil {
		p.Age = *u.age
	} else {
		p.Age++
	}

	if u.x != nil {
		p.X = *u.x
	} else {
		p.X += p.VX
	}
	if u.y != nil {
		p.Y = *u.y
	} else {
		p.Y += p.VY
	}
}

// Expired reports whether a particle with a positive Lifespan has reached it.
func (p *Particle) Expired() bool {
	return p.Lifespan > 0 && p.Age >= p.Lifespan
}

// Range is a general-purpose min/max range for spawners.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor interpolates every channel of a toward b by t.
func LerpColor(a, b Color, t float64) Color {
	return Color{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t), lerp(a.A, b.A, t)}
}
