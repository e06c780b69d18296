package app

import (
	"log"
	"os"

	"github.com/rs/xid"

	"github.com/ohmlab/circuitsim/circuit"
	"github.com/ohmlab/circuitsim/datarecording"
	"github.com/ohmlab/circuitsim/meter"
	"github.com/ohmlab/circuitsim/monitoring"
	"github.com/ohmlab/circuitsim/ohmmeter"
	"github.com/ohmlab/circuitsim/sim"
)

// Builder can build applications.
type Builder struct {
	cfg               circuit.Config
	voltmeterInterval sim.VTimeInSec
	ammeterInterval   sim.VTimeInSec
	ohmmeterInterval  sim.VTimeInSec
	rollingWindow     sim.VTimeInSec

	parallelEngine bool
	eventLogging   bool

	monitorOn   bool
	monitorPort int

	recordingOn    bool
	outputFileName string
	recorder       datarecording.DataRecorder
}

// MakeBuilder creates a builder with the reference scenario and the default
// instrument cadence.
func MakeBuilder() Builder {
	return Builder{
		cfg:               circuit.DefaultConfig(),
		voltmeterInterval: 0.1,
		ammeterInterval:   0.3,
		ohmmeterInterval:  1.0,
		rollingWindow:     2.0,
		monitorOn:         true,
		recordingOn:       true,
	}
}

// WithConfig sets the circuit parameters.
func (b Builder) WithConfig(cfg circuit.Config) Builder {
	b.cfg = cfg
	return b
}

// WithVoltmeterInterval sets the voltmeter sampling interval, in seconds.
func (b Builder) WithVoltmeterInterval(i sim.VTimeInSec) Builder {
	b.voltmeterInterval = i
	return b
}

// WithAmmeterInterval sets the ammeter sampling interval, in seconds.
func (b Builder) WithAmmeterInterval(i sim.VTimeInSec) Builder {
	b.ammeterInterval = i
	return b
}

// WithOhmmeterInterval sets the estimate reporting interval, in seconds.
func (b Builder) WithOhmmeterInterval(i sim.VTimeInSec) Builder {
	b.ohmmeterInterval = i
	return b
}

// WithRollingWindow sets the width of the rolling-average window, in seconds.
func (b Builder) WithRollingWindow(w sim.VTimeInSec) Builder {
	b.rollingWindow = w
	return b
}

// WithParallelEngine sets the application to use a parallel engine.
func (b Builder) WithParallelEngine() Builder {
	b.parallelEngine = true
	return b
}

// WithEventLogging makes the engine log every dispatched event to stderr.
func (b Builder) WithEventLogging() Builder {
	b.eventLogging = true
	return b
}

// WithoutMonitoring sets the application to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutDataRecording sets the application to not record results.
func (b Builder) WithoutDataRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithDataRecorder injects a recorder backend, overriding the default SQLite
// file.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the application.
func (b Builder) Build() *Application {
	b.parametersMustBeValid()

	a := &Application{duration: b.cfg.Duration}

	a.engine = sim.NewSerialEngine()
	if b.parallelEngine {
		a.engine = sim.NewParallelEngine()
	}

	if b.eventLogging {
		a.engine.AcceptHook(sim.NewEventLogger(
			log.New(os.Stderr, "", 0)))
	}

	a.model = circuit.NewModel(b.cfg)

	a.instantOhmmeter = ohmmeter.MakeBuilder().
		WithEngine(a.engine).
		WithAverager(ohmmeter.Instantaneous()).
		WithInterval(b.ohmmeterInterval).
		Build("InstantOhmmeter")
	a.rollingOhmmeter = ohmmeter.MakeBuilder().
		WithEngine(a.engine).
		WithAverager(ohmmeter.RollingAverage(b.rollingWindow)).
		WithInterval(b.ohmmeterInterval).
		Build("RollingOhmmeter")

	a.voltmeter = meter.MakeBuilder().
		WithEngine(a.engine).
		WithCircuit(a.model).
		WithQuantity(meter.Voltage).
		WithInterval(b.voltmeterInterval).
		WithObservers(a.instantOhmmeter, a.rollingOhmmeter).
		Build("Voltmeter")
	a.ammeter = meter.MakeBuilder().
		WithEngine(a.engine).
		WithCircuit(a.model).
		WithQuantity(meter.Current).
		WithInterval(b.ammeterInterval).
		WithObservers(a.instantOhmmeter, a.rollingOhmmeter).
		Build("Ammeter")

	if b.monitorOn {
		b.buildMonitor(a)
	}

	if b.recordingOn {
		b.buildRecording(a)
	}

	return a
}

func (b Builder) buildMonitor(a *Application) {
	a.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		a.monitor.WithPortNumber(b.monitorPort)
	}

	a.monitor.RegisterEngine(a.engine)
	a.monitor.RegisterComponent(a.voltmeter)
	a.monitor.RegisterComponent(a.ammeter)
	a.monitor.RegisterComponent(a.instantOhmmeter)
	a.monitor.RegisterComponent(a.rollingOhmmeter)

	a.progressBar = a.monitor.CreateProgressBar("Simulated time (‰)", 1000)

	a.monitorURL = a.monitor.StartServer()
}

func (b Builder) buildRecording(a *Application) {
	a.recorder = b.recorder
	if a.recorder == nil {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "circuitsim_" + xid.New().String()
		}
		a.recorder = datarecording.NewSQLiteRecorder(outputPath)
	}

	hook := newRecordingHook(a.recorder, a.progressBar, b.cfg.Duration)
	a.voltmeter.AcceptHook(hook)
	a.ammeter.AcceptHook(hook)
	a.instantOhmmeter.AcceptHook(hook)
	a.rollingOhmmeter.AcceptHook(hook)
}
