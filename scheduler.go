package particlefield

import "time"

// Clock supplies the current time to a Scheduler.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock (monotonic reading included).
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is advanced explicitly. Useful for deterministic stepping and
// tests.
type ManualClock struct {
	t time.Time
}

// NewManualClock returns a clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Scheduler is the frame clock driving one Controller. The host calls Frame
// once per display refresh; while running, each Frame polls any registered
// Pollers and then ticks the controller with the time elapsed since Start.
// Stopped time is not counted, so elapsed never decreases.
type Scheduler struct {
	c       *Controller
	clock   Clock
	pollers []Poller

	running  bool
	disposed bool
	started  time.Time     // start of the current running span
	banked   time.Duration // elapsed time accumulated before the current span
	frames   int
}

// NewScheduler returns a stopped scheduler for c. A nil clock uses
// SystemClock.
func NewScheduler(c *Controller, clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{c: c, clock: clock}
}

// AddPoller registers p to be polled at the start of every running frame.
func (s *Scheduler) AddPoller(p Poller) {
	s.pollers = append(s.pollers, p)
}

// Start begins or resumes ticking. It has no effect once disposed.
func (s *Scheduler) Start() {
	if s.running || s.disposed {
		return
	}
	s.running = true
	s.started = s.clock.Now()
}

// Stop pauses ticking. Particles keep their state.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.banked += s.clock.Now().Sub(s.started)
	s.running = false
}

// Running reports whether the scheduler is ticking.
func (s *Scheduler) Running() bool { return s.running }

// Frames returns how many ticks have been issued.
func (s *Scheduler) Frames() int { return s.frames }

// Elapsed returns the running time accumulated so far.
func (s *Scheduler) Elapsed() time.Duration {
	if !s.running {
		return s.banked
	}
	return s.banked + s.clock.Now().Sub(s.started)
}

// Frame advances one display refresh. It returns false when the scheduler
// is stopped or disposed and no tick was issued.
func (s *Scheduler) Frame() bool {
	if !s.running || s.disposed {
		return false
	}
	for _, p := range s.pollers {
		p.Poll()
	}
	s.frames++
	s.c.Tick(s.Elapsed())
	return true
}

// Dispose stops the scheduler for good and detaches its controller. It is
// safe to call more than once and from deferred cleanup.
func (s *Scheduler) Dispose() {
	if s.disposed {
		return
	}
	s.Stop()
	s.disposed = true
	s.pollers = nil
	if s.c != nil {
		s.c.Dispose()
	}
}

// Disposed reports whether Dispose has been called.
func (s *Scheduler) Disposed() bool { return s.disposed }
