package particlefield

import "time"

// TickHandler is the per-frame simulation rule. It receives the controller
// by reference and may mutate the particle collection and any
// configuration field, including replacing OnTick itself.
type TickHandler interface {
	OnTick(c *Controller, elapsed time.Duration, size Size)
}

// TickFunc adapts an ordinary function to TickHandler.
type TickFunc func(c *Controller, elapsed time.Duration, size Size)

// OnTick calls f(c, elapsed, size).
func (f TickFunc) OnTick(c *Controller, elapsed time.Duration, size Size) {
	f(c, elapsed, size)
}

// InitFunc runs once, synchronously, from NewController.
type InitFunc func(c *Controller)

// Controller owns the particle collection and the per-frame drawing
// configuration. Exported fields may be changed at any time from the
// render thread; changes apply to the next batch built.
type Controller struct {
	// Particles is the draw list: later entries paint on top.
	Particles []*Particle
	// Frames supplies atlas geometry. Shared, not owned.
	Frames FrameProvider
	// OnTick is invoked from ExecuteOnTick. May be nil.
	OnTick TickHandler

	BlendMode BlendMode
	// Origin places the particle coordinate origin on the canvas:
	// (-1,-1) top-left, (0,0) center, (1,1) bottom-right.
	Origin Vec2
	// Anchor chooses each sprite's pivot within its own frame using the
	// same mapping as Origin.
	Anchor Vec2
	// Opacity multiplies every particle's alpha.
	Opacity float64

	lastElapsed time.Duration
	renderDue   bool
	disposed    bool
}

// ControllerOption configures a Controller at construction.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	onInit   InitFunc
	blend    BlendMode
	origin   Vec2
	anchor   Vec2
	opacity  float64
	capacity int
}

// WithInit sets a callback that runs once before NewController returns.
func WithInit(fn InitFunc) ControllerOption {
	return func(c *controllerConfig) { c.onInit = fn }
}

func WithBlendMode(b BlendMode) ControllerOption {
	return func(c *controllerConfig) { c.blend = b }
}

func WithOrigin(v Vec2) ControllerOption {
	return func(c *controllerConfig) { c.origin = v }
}

func WithAnchor(v Vec2) ControllerOption {
	return func(c *controllerConfig) { c.anchor = v }
}

func WithOpacity(o float64) ControllerOption {
	return func(c *controllerConfig) { c.opacity = o }
}

// WithCapacity preallocates room for n particles.
func WithCapacity(n int) ControllerOption {
	return func(c *controllerConfig) { c.capacity = n }
}

// NewController creates a controller drawing from frames. Defaults: origin
// top-left, anchor at frame center, opacity 1, BlendNormal. If an init
// callback is given it runs before NewController returns, with Elapsed
// still zero.
func NewController(frames FrameProvider, onTick TickHandler, opts ...ControllerOption) *Controller {
	cfg := controllerConfig{
		origin:  Vec2{-1, -1},
		opacity: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Controller{
		Frames:    frames,
		OnTick:    onTick,
		BlendMode: cfg.blend,
		Origin:    cfg.origin,
		Anchor:    cfg.anchor,
		Opacity:   cfg.opacity,
	}
	if cfg.capacity > 0 {
		c.Particles = make([]*Particle, 0, cfg.capacity)
	}
	if cfg.onInit != nil {
		cfg.onInit(c)
	}
	return c
}

// Tick records the scheduler's elapsed time and marks a render pass due.
// It never touches the particles or calls OnTick.
func (c *Controller) Tick(elapsed time.Duration) {
	if c.disposed {
		return
	}
	c.lastElapsed = elapsed
	c.renderDue = true
}

// RenderDue reports whether a Tick has arrived since the last ExecuteOnTick.
func (c *Controller) RenderDue() bool { return c.renderDue }

// Elapsed returns the elapsed time recorded by the most recent Tick.
func (c *Controller) Elapsed() time.Duration { return c.lastElapsed }

// ExecuteOnTick runs the tick handler with the most recent elapsed time and
// the current canvas size, and clears the render-due signal.
func (c *Controller) ExecuteOnTick(size Size) {
	c.renderDue = false
	if c.disposed || c.OnTick == nil {
		return
	}
	c.OnTick.OnTick(c, c.lastElapsed, size)
}

// Dispose detaches the controller. Further ticks are ignored. Dispose is
// idempotent; it is not resumable.
func (c *Controller) Dispose() {
	c.disposed = true
	c.renderDue = false
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool { return c.disposed }

// Spawn appends p on top of the draw list and returns it.
func (c *Controller) Spawn(p *Particle) *Particle {
	c.Particles = append(c.Particles, p)
	return p
}

// RemoveFunc drops every particle for which remove returns true, keeping the
// draw order of the rest. It returns the number removed.
func (c *Controller) RemoveFunc(remove func(*Particle) bool) int {
	kept := c.Particles[:0]
	for _, p := range c.Particles {
		if !remove(p) {
			kept = append(kept, p)
		}
	}
	n := len(c.Particles) - len(kept)
	// Nil the tail so removed particles can be collected.
	for i := len(kept); i < len(c.Particles); i++ {
		c.Particles[i] = nil
	}
	c.Particles = kept
	return n
}

// RemoveExpired drops particles whose Age has reached their Lifespan.
func (c *Controller) RemoveExpired() int {
	return c.RemoveFunc((*Particle).Expired)
}

// Clear removes every particle.
func (c *Controller) Clear() {
	clear(c.Particles)
	c.Particles = c.Particles[:0]
}
