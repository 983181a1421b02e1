package particlefield

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the constructors below and call Update(dt) each frame, typically from a
// TickHandler. If the owning controller is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	owner  *Controller
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.owner != nil && g.owner.Disposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenOpacity animates c.Opacity to the target value.
func TweenOpacity(c *Controller, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{owner: c}
	g.add(&c.Opacity, to, duration, fn)
	return g
}

// TweenOrigin animates c.Origin to the target alignment.
func TweenOrigin(c *Controller, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{owner: c}
	g.add(&c.Origin.X, to.X, duration, fn)
	g.add(&c.Origin.Y, to.Y, duration, fn)
	return g
}

// TweenAnchor animates c.Anchor to the target alignment.
func TweenAnchor(c *Controller, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{owner: c}
	g.add(&c.Anchor.X, to.X, duration, fn)
	g.add(&c.Anchor.Y, to.Y, duration, fn)
	return g
}

// TweenParticleColor animates all four channels of p.Color.
func TweenParticleColor(p *Particle, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.Color.R, to.R, duration, fn)
	g.add(&p.Color.G, to.G, duration, fn)
	g.add(&p.Color.B, to.B, duration, fn)
	g.add(&p.Color.A, to.A, duration, fn)
	return g
}

// TweenParticleScale animates p.Scale.
func TweenParticleScale(p *Particle, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.Scale, to, duration, fn)
	return g
}
