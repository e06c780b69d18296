package ohmmeter

import (
	"math"

	"github.com/ohmlab/circuitsim/sim"
)

// An Averager is the policy that turns a stream of resistance observations
// into the value an ohmmeter reports.
type Averager interface {
	// Mode returns the label printed with each estimate.
	Mode() string

	// Record feeds one resistance observation taken at time t.
	Record(r float64, t sim.VTimeInSec)

	// Estimate returns the value to report at time now.
	Estimate(now sim.VTimeInSec) float64
}

type instantaneous struct {
	r float64
}

// Instantaneous returns the policy that reports the resistance computed from
// the most recent readings.
func Instantaneous() Averager {
	return &instantaneous{r: math.Inf(1)}
}

func (a *instantaneous) Mode() string {
	return "instantaneous"
}

func (a *instantaneous) Record(r float64, _ sim.VTimeInSec) {
	a.r = r
}

func (a *instantaneous) Estimate(_ sim.VTimeInSec) float64 {
	return a.r
}

type observation struct {
	r float64
	t sim.VTimeInSec
}

type rollingAverage struct {
	window  sim.VTimeInSec
	history []observation
}

// RollingAverage returns the policy that reports the arithmetic mean of the
// resistance observations recorded no longer than window ago. It reports
// +Inf when the window holds no observation.
func RollingAverage(window sim.VTimeInSec) Averager {
	return &rollingAverage{window: window}
}

func (a *rollingAverage) Mode() string {
	return "rolling average"
}

func (a *rollingAverage) Record(r float64, t sim.VTimeInSec) {
	a.history = append(a.history, observation{r: r, t: t})
}

func (a *rollingAverage) Estimate(now sim.VTimeInSec) float64 {
	a.prune(now)

	if len(a.history) == 0 {
		return math.Inf(1)
	}

	sum := 0.0
	for _, o := range a.history {
		sum += o.r
	}

	return sum / float64(len(a.history))
}

// prune drops observations older than the window. An observation exactly one
// window old is retained.
func (a *rollingAverage) prune(now sim.VTimeInSec) {
	keepFrom := 0
	for keepFrom < len(a.history) && now-a.history[keepFrom].t > a.window {
		keepFrom++
	}
	a.history = a.history[keepFrom:]
}

// resistance applies Ohm's law. A zero current reads as an open circuit, so
// the result is +Inf rather than an error.
func resistance(v, i float64) float64 {
	if i == 0 {
		return math.Inf(1)
	}

	return v / i
}
