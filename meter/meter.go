// Package meter provides the periodic instruments that sample the circuit:
// the voltmeter and the ammeter.
package meter

import (
	"fmt"
	"log"
	"sync"

	"github.com/ohmlab/circuitsim/sim"
)

// HookPosSample is invoked on a meter right after it records a sample. The
// hook context carries the Sample as Item.
var HookPosSample = &sim.HookPos{Name: "Sample"}

// Quantity selects which scalar of the circuit a meter extracts.
type Quantity int

// The measurable quantities.
const (
	Voltage Quantity = iota
	Current
)

// Kind returns the instrument name that measures the quantity.
func (q Quantity) Kind() string {
	switch q {
	case Voltage:
		return "Voltmeter"
	case Current:
		return "Ammeter"
	default:
		log.Panicf("unknown quantity %d", q)
		return ""
	}
}

// Unit returns the unit suffix printed after a reading.
func (q Quantity) Unit() string {
	switch q {
	case Voltage:
		return "V"
	case Current:
		return "A"
	default:
		log.Panicf("unknown quantity %d", q)
		return ""
	}
}

// A Sample is one reading taken by a meter.
type Sample struct {
	Value float64
	Time  sim.VTimeInSec
}

// A Circuit is anything a meter can read voltage and current from.
type Circuit interface {
	Values(t sim.VTimeInSec) (v, i float64)
}

// An Observer receives every sample a meter takes, in sampling order.
type Observer interface {
	Observe(q Quantity, s Sample)
}

// Comp is a meter: a periodic component that reads the circuit once per
// interval, keeps the latest sample, and pushes it to its observers.
type Comp struct {
	*sim.PeriodicComponent

	circuit   Circuit
	quantity  Quantity
	observers []Observer

	sampleLock sync.Mutex
	lastSample Sample
	hasSample  bool
}

// Tick reads the circuit, records the sample, pushes it to the observers,
// and prints the reading.
func (c *Comp) Tick(now sim.VTimeInSec) {
	v, i := c.circuit.Values(now)

	value := v
	if c.quantity == Current {
		value = i
	}

	s := Sample{Value: value, Time: now}

	c.sampleLock.Lock()
	c.lastSample = s
	c.hasSample = true
	c.sampleLock.Unlock()

	for _, o := range c.observers {
		o.Observe(c.quantity, s)
	}

	fmt.Printf("%s reading at timestamp %.2f s : %.6f %s\n",
		c.quantity.Kind(), float64(now), value, c.quantity.Unit())

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosSample,
		Item:   s,
	})
}

// Quantity returns the quantity the meter measures.
func (c *Comp) Quantity() Quantity {
	return c.quantity
}

// LastSample returns the most recent sample. The second return value is
// false before the first tick.
func (c *Comp) LastSample() (Sample, bool) {
	c.sampleLock.Lock()
	defer c.sampleLock.Unlock()

	return c.lastSample, c.hasSample
}
