package ohmmeter

import (
	"log"

	"github.com/ohmlab/circuitsim/sim"
)

// Builder can build ohmmeters.
type Builder struct {
	engine   sim.Engine
	averager Averager
	interval sim.VTimeInSec
}

// MakeBuilder creates a builder with default parameters: an instantaneous
// ohmmeter reporting every second.
func MakeBuilder() Builder {
	return Builder{
		averager: Instantaneous(),
		interval: 1.0,
	}
}

// WithEngine sets the engine that drives the ohmmeter.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithAverager sets the averaging policy.
func (b Builder) WithAverager(a Averager) Builder {
	b.averager = a
	return b
}

// WithInterval sets the reporting interval, in seconds.
func (b Builder) WithInterval(interval sim.VTimeInSec) Builder {
	b.interval = interval
	return b
}

// Build creates an ohmmeter with the given name.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("ohmmeter requires an engine")
	}

	if b.averager == nil {
		log.Panic("ohmmeter requires an averaging policy")
	}

	c := new(Comp)
	c.averager = b.averager
	c.PeriodicComponent = sim.NewSecondaryPeriodicComponent(
		name, b.engine, b.interval, c)

	return c
}
