package meter

import (
	"log"

	"github.com/ohmlab/circuitsim/sim"
)

// Builder can build meters.
type Builder struct {
	engine    sim.Engine
	circuit   Circuit
	quantity  Quantity
	interval  sim.VTimeInSec
	observers []Observer
}

// MakeBuilder creates a builder with default parameters: a voltmeter that
// samples every 0.1 seconds.
func MakeBuilder() Builder {
	return Builder{
		quantity: Voltage,
		interval: 0.1,
	}
}

// WithEngine sets the engine that drives the meter.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithCircuit sets the circuit the meter reads from.
func (b Builder) WithCircuit(c Circuit) Builder {
	b.circuit = c
	return b
}

// WithQuantity sets the quantity the meter measures.
func (b Builder) WithQuantity(q Quantity) Builder {
	b.quantity = q
	return b
}

// WithInterval sets the sampling interval, in seconds.
func (b Builder) WithInterval(interval sim.VTimeInSec) Builder {
	b.interval = interval
	return b
}

// WithObservers adds observers that receive every sample. Observers are
// notified in the order they are added.
func (b Builder) WithObservers(os ...Observer) Builder {
	b.observers = append(b.observers, os...)
	return b
}

// Build creates a meter with the given name.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("meter requires an engine")
	}

	if b.circuit == nil {
		log.Panic("meter requires a circuit")
	}

	c := new(Comp)
	c.circuit = b.circuit
	c.quantity = b.quantity
	c.observers = append([]Observer(nil), b.observers...)
	c.PeriodicComponent = sim.NewSecondaryPeriodicComponent(
		name, b.engine, b.interval, c)

	return c
}
