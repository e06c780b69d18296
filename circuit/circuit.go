// Package circuit models a DC circuit with two linearly-changing resistors.
//
// The circuit under simulation is:
//
//	+-- R1 -+----- R2 ----+
//	|       |             |
//	|       +-- RL -- A --+
//	|       |             |
//	|       +----- V -----+
//	|                     |
//	+-------- VS ---------+
//
// RL is a fixed load resistor, VS is a DC voltage source, and R1 and R2 are
// variable resistors that change linearly over the configured duration. The
// voltage across RL and the current through RL follow the closed-form
// solution of Kirchhoff's laws:
//
//	I = VS / (R1 + RL + R1*RL/R2)
//	V = I * RL
package circuit

import (
	"log"
	"sync"

	"github.com/ohmlab/circuitsim/sim"
)

// Config holds the immutable parameters of a circuit model.
type Config struct {
	// R1Start and R1End are the resistances of R1, in ohms, at the start and
	// at the end of the ramp.
	R1Start, R1End float64

	// R2Start and R2End are the resistances of R2, in ohms.
	R2Start, R2End float64

	// RL is the fixed resistance of the load resistor, in ohms.
	RL float64

	// VS is the source voltage, in volts.
	VS float64

	// Duration is the length of the resistance ramp, in seconds.
	Duration sim.VTimeInSec
}

// DefaultConfig returns the parameters of the reference scenario: R1 ramps
// 0 -> 100 kΩ while R2 ramps 100 kΩ -> 0 over 10 seconds, with a 30 kΩ load
// and a 10 V source.
func DefaultConfig() Config {
	return Config{
		R1Start:  0,
		R1End:    100_000,
		R2Start:  100_000,
		R2End:    0,
		RL:       30_000,
		VS:       10,
		Duration: 10,
	}
}

// A Model is a circuit whose state is a pure function of elapsed time.
//
// A model must be started before any reading is taken. After Start, the
// model is read-only and can be shared by any number of instruments.
type Model struct {
	cfg Config

	startLock sync.Mutex
	startTime sim.VTimeInSec
	started   bool
}

// NewModel creates a circuit model with the given parameters.
func NewModel(cfg Config) *Model {
	if cfg.Duration <= 0 {
		log.Panic("circuit ramp duration must be positive")
	}

	return &Model{cfg: cfg}
}

// Config returns the parameters of the model.
func (m *Model) Config() Config {
	return m.cfg
}

// Start marks time now as the beginning of the resistance ramp. A model can
// only be started once.
func (m *Model) Start(now sim.VTimeInSec) {
	m.startLock.Lock()
	defer m.startLock.Unlock()

	if m.started {
		log.Panic("circuit model is already started")
	}

	m.startTime = now
	m.started = true
}

// StartTime returns the time at which the model was started.
func (m *Model) StartTime() sim.VTimeInSec {
	m.startLock.Lock()
	defer m.startLock.Unlock()

	m.mustBeStarted()

	return m.startTime
}

// Resistances returns R1 and R2 at time t, linearly interpolated between the
// configured start and end values over the ramp duration. Times beyond the
// duration keep extrapolating linearly.
func (m *Model) Resistances(t sim.VTimeInSec) (r1, r2 float64) {
	m.startLock.Lock()
	m.mustBeStarted()
	elapsed := float64(t - m.startTime)
	m.startLock.Unlock()

	progress := elapsed / float64(m.cfg.Duration)
	r1 = m.cfg.R1Start + (m.cfg.R1End-m.cfg.R1Start)*progress
	r2 = m.cfg.R2Start + (m.cfg.R2End-m.cfg.R2Start)*progress

	return r1, r2
}

// Values returns the voltage across RL and the current through RL at time t.
//
// Division follows IEEE-754 float semantics and never panics: when R2 is
// zero with R1 positive, the series term diverges and the current collapses
// to zero; when R1 and R2 are both zero, the 0/0 term yields NaN, which
// propagates to both results.
func (m *Model) Values(t sim.VTimeInSec) (v, i float64) {
	r1, r2 := m.Resistances(t)

	i = m.cfg.VS / (r1 + m.cfg.RL + r1*m.cfg.RL/r2)
	v = i * m.cfg.RL

	return v, i
}

func (m *Model) mustBeStarted() {
	if !m.started {
		log.Panic("circuit model must be started before it is read")
	}
}
