package sim

import (
	"log"
	"sync"
)

// TickEvent is the event that drives a periodic component one step forward.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent.
func MakeTickEvent(handler Handler, t VTimeInSec) TickEvent {
	evt := TickEvent{}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = t
	return evt
}

// A Ticker is an object that updates its state once per cadence interval.
type Ticker interface {
	Tick(now VTimeInSec)
}

// A PeriodicScheduler schedules tick events at a fixed interval until it is
// stopped.
//
// The interval is a plain wall-of-simulation-time gap: the next tick is the
// current tick time plus the interval. A tick that is already in the event
// queue when Stop lands is still dispatched by the engine, but the owning
// component swallows it silently, which is how a task observes cancellation
// at its next yield point.
type PeriodicScheduler struct {
	lock      sync.Mutex
	handler   Handler
	engine    Engine
	interval  VTimeInSec
	secondary bool

	nextTickTime VTimeInSec
	stopped      bool
}

// NewPeriodicScheduler creates a scheduler that schedules primary tick
// events every interval.
func NewPeriodicScheduler(
	handler Handler,
	engine Engine,
	interval VTimeInSec,
) *PeriodicScheduler {
	if interval <= 0 {
		log.Panic("tick interval must be positive")
	}

	s := new(PeriodicScheduler)
	s.handler = handler
	s.engine = engine
	s.interval = interval
	s.nextTickTime = -1

	return s
}

// NewSecondaryPeriodicScheduler creates a scheduler whose tick events are
// secondary, so that same-time primary events (e.g., the coordinator's stop
// event) always run first.
func NewSecondaryPeriodicScheduler(
	handler Handler,
	engine Engine,
	interval VTimeInSec,
) *PeriodicScheduler {
	s := NewPeriodicScheduler(handler, engine, interval)
	s.secondary = true
	return s
}

// Interval returns the gap between two consecutive ticks.
func (s *PeriodicScheduler) Interval() VTimeInSec {
	return s.interval
}

// StartAt schedules the first tick at time t.
func (s *PeriodicScheduler) StartAt(t VTimeInSec) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		log.Panic("cannot start a stopped periodic scheduler")
	}

	if s.nextTickTime >= t {
		return
	}

	s.nextTickTime = t
	s.scheduleTick(t)
}

// TickAfter schedules the tick that follows a tick handled at time now.
func (s *PeriodicScheduler) TickAfter(now VTimeInSec) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return
	}

	t := now + s.interval
	if s.nextTickTime >= t {
		return
	}

	s.nextTickTime = t
	s.scheduleTick(t)
}

func (s *PeriodicScheduler) scheduleTick(t VTimeInSec) {
	tick := MakeTickEvent(s.handler, t)
	if s.secondary {
		tick.secondary = true
	}
	s.engine.Schedule(tick)
}

// Stop cancels the periodic task. Stopping twice is a no-op.
func (s *PeriodicScheduler) Stop() {
	s.lock.Lock()
	s.stopped = true
	s.lock.Unlock()
}

// Stopped reports whether the task has been cancelled.
func (s *PeriodicScheduler) Stopped() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.stopped
}

// A PeriodicComponent drives a Ticker once per interval until it is stopped.
type PeriodicComponent struct {
	*ComponentBase
	*PeriodicScheduler

	ticker Ticker
}

// NewPeriodicComponent creates a component that ticks at a fixed interval.
func NewPeriodicComponent(
	name string,
	engine Engine,
	interval VTimeInSec,
	ticker Ticker,
) *PeriodicComponent {
	c := new(PeriodicComponent)
	c.ComponentBase = NewComponentBase(name)
	c.PeriodicScheduler = NewPeriodicScheduler(c, engine, interval)
	c.ticker = ticker
	return c
}

// NewSecondaryPeriodicComponent creates a periodic component whose ticks are
// secondary events.
func NewSecondaryPeriodicComponent(
	name string,
	engine Engine,
	interval VTimeInSec,
	ticker Ticker,
) *PeriodicComponent {
	c := new(PeriodicComponent)
	c.ComponentBase = NewComponentBase(name)
	c.PeriodicScheduler = NewSecondaryPeriodicScheduler(c, engine, interval)
	c.ticker = ticker
	return c
}

// Handle triggers the tick function and schedules the next tick. A tick that
// arrives after the component is stopped is acknowledged without output.
func (c *PeriodicComponent) Handle(e Event) error {
	if c.Stopped() {
		return nil
	}

	c.ticker.Tick(e.Time())
	c.TickAfter(e.Time())

	return nil
}
