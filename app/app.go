// Package app assembles the circuit, the instruments, and the engine into a
// runnable simulation and coordinates their lifetime.
package app

import (
	"github.com/ohmlab/circuitsim/circuit"
	"github.com/ohmlab/circuitsim/datarecording"
	"github.com/ohmlab/circuitsim/meter"
	"github.com/ohmlab/circuitsim/monitoring"
	"github.com/ohmlab/circuitsim/ohmmeter"
	"github.com/ohmlab/circuitsim/sim"
)

// stopEvent tells the application that the simulation reached its configured
// duration.
type stopEvent struct {
	*sim.EventBase
}

// An Application is a fully assembled simulation. It owns the engine, the
// circuit model, the four instruments, and the optional monitoring and
// recording services.
type Application struct {
	engine   sim.Engine
	model    *circuit.Model
	duration sim.VTimeInSec

	voltmeter       *meter.Comp
	ammeter         *meter.Comp
	instantOhmmeter *ohmmeter.Comp
	rollingOhmmeter *ohmmeter.Comp

	monitor     *monitoring.Monitor
	monitorURL  string
	recorder    datarecording.DataRecorder
	progressBar *monitoring.ProgressBar
}

// Run executes the simulation from the engine's current time for the
// configured duration. It starts the circuit ramp, kick-starts every
// instrument, and schedules the stop event that cancels them all. Run
// returns after the engine drained every pending event, so every instrument
// has acknowledged its cancellation by then.
func (a *Application) Run() error {
	start := a.engine.CurrentTime()
	a.model.Start(start)

	a.voltmeter.StartAt(start)
	a.ammeter.StartAt(start)
	a.instantOhmmeter.StartAt(start)
	a.rollingOhmmeter.StartAt(start)

	a.engine.Schedule(stopEvent{
		EventBase: sim.NewEventBase(start+a.duration, a),
	})

	err := a.engine.Run()
	if err != nil {
		return err
	}

	a.engine.Finished()

	if a.recorder != nil {
		a.recorder.Flush()
	}

	return nil
}

// Handle reacts to the stop event by cancelling every instrument. Ticks that
// are already scheduled at or after this moment are swallowed by their
// components, so no reading or estimate is reported at or after the stop
// time.
func (a *Application) Handle(_ sim.Event) error {
	a.voltmeter.Stop()
	a.ammeter.Stop()
	a.instantOhmmeter.Stop()
	a.rollingOhmmeter.Stop()

	if a.progressBar != nil {
		a.progressBar.SetFinished(a.progressBar.Total)
	}

	return nil
}

// Terminate releases the services owned by the application.
func (a *Application) Terminate() {
	if a.recorder != nil {
		a.recorder.Close()
	}
}

// Engine returns the event engine of the application.
func (a *Application) Engine() sim.Engine {
	return a.engine
}

// Model returns the circuit model under simulation.
func (a *Application) Model() *circuit.Model {
	return a.model
}

// Voltmeter returns the voltage sampler.
func (a *Application) Voltmeter() *meter.Comp {
	return a.voltmeter
}

// Ammeter returns the current sampler.
func (a *Application) Ammeter() *meter.Comp {
	return a.ammeter
}

// InstantOhmmeter returns the estimator that reports instantaneous values.
func (a *Application) InstantOhmmeter() *ohmmeter.Comp {
	return a.instantOhmmeter
}

// RollingOhmmeter returns the estimator that reports rolling averages.
func (a *Application) RollingOhmmeter() *ohmmeter.Comp {
	return a.rollingOhmmeter
}

// DataRecorder returns the data recorder, or nil when recording is disabled.
func (a *Application) DataRecorder() datarecording.DataRecorder {
	return a.recorder
}

// Monitor returns the monitor, or nil when monitoring is disabled.
func (a *Application) Monitor() *monitoring.Monitor {
	return a.monitor
}

// MonitorURL returns the address the monitoring server listens on, or an
// empty string when monitoring is disabled.
func (a *Application) MonitorURL() string {
	return a.monitorURL
}
