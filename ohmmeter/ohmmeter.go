// Package ohmmeter provides the component that estimates the load resistance
// from the voltmeter and ammeter readings.
package ohmmeter

import (
	"fmt"
	"sync"

	"github.com/ohmlab/circuitsim/meter"
	"github.com/ohmlab/circuitsim/sim"
)

// HookPosEstimate is invoked on an ohmmeter right after it reports an
// estimate. The hook context carries the Estimate as Item.
var HookPosEstimate = &sim.HookPos{Name: "Estimate"}

// An Estimate is one reported resistance value.
type Estimate struct {
	Value float64
	Time  sim.VTimeInSec
	Mode  string
}

// Comp is an ohmmeter. It receives voltage and current samples pushed by the
// meters and periodically reports a resistance estimate through its averaging
// policy. It stays silent until both quantities have been observed at least
// once.
type Comp struct {
	*sim.PeriodicComponent

	lock       sync.Mutex
	averager   Averager
	voltage    float64
	current    float64
	hasVoltage bool
	hasCurrent bool

	sampledVoltage float64
	sampledCurrent float64
	hasSampled     bool

	lastEstimate Estimate
	hasEstimate  bool
}

// SetVoltage stores the latest voltage reading. Setters are total and
// per-field; the averager only sees the pair the reporting tick reads.
func (c *Comp) SetVoltage(v float64, _ sim.VTimeInSec) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.voltage = v
	c.hasVoltage = true
}

// SetCurrent stores the latest current reading.
func (c *Comp) SetCurrent(i float64, _ sim.VTimeInSec) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.current = i
	c.hasCurrent = true
}

// sampleLocked feeds the averager one resistance sample computed from the
// latest pair. A pair that did not change since the previous tick is not
// sampled again.
func (c *Comp) sampleLocked(now sim.VTimeInSec) {
	if c.hasSampled &&
		c.voltage == c.sampledVoltage &&
		c.current == c.sampledCurrent {
		return
	}

	c.averager.Record(resistance(c.voltage, c.current), now)
	c.sampledVoltage = c.voltage
	c.sampledCurrent = c.current
	c.hasSampled = true
}

// Observe makes an ohmmeter a meter observer, dispatching each pushed sample
// to the matching setter.
func (c *Comp) Observe(q meter.Quantity, s meter.Sample) {
	switch q {
	case meter.Voltage:
		c.SetVoltage(s.Value, s.Time)
	case meter.Current:
		c.SetCurrent(s.Value, s.Time)
	}
}

// Mode returns the label of the averaging policy.
func (c *Comp) Mode() string {
	return c.averager.Mode()
}

// Tick samples the latest pair of readings at most once and reports one
// estimate. Nothing is sampled or reported while either quantity is still
// unobserved.
func (c *Comp) Tick(now sim.VTimeInSec) {
	c.lock.Lock()

	if !c.hasVoltage || !c.hasCurrent {
		c.lock.Unlock()
		return
	}

	c.sampleLocked(now)

	est := Estimate{
		Value: c.averager.Estimate(now),
		Time:  now,
		Mode:  c.averager.Mode(),
	}
	c.lastEstimate = est
	c.hasEstimate = true

	c.lock.Unlock()

	fmt.Printf("Ohmmeter calculated RL (%s): %.6f Ω\n", est.Mode, est.Value)

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosEstimate,
		Item:   est,
	})
}

// LastEstimate returns the most recent reported estimate. The second return
// value is false before the first report.
func (c *Comp) LastEstimate() (Estimate, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.lastEstimate, c.hasEstimate
}
