package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ohmlab/circuitsim/app"
	"github.com/ohmlab/circuitsim/circuit"
	"github.com/ohmlab/circuitsim/datarecording"
	"github.com/ohmlab/circuitsim/sim"
)

var runFlags struct {
	r1Start  float64
	r1End    float64
	r2Start  float64
	r2End    float64
	load     float64
	source   float64
	duration float64

	voltmeterInterval float64
	ammeterInterval   float64
	ohmmeterInterval  float64
	window            float64

	parallel  bool
	logEvents bool

	monitor     bool
	monitorPort int
	openMonitor bool

	noRecord bool
	output   string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the circuit simulation",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runSimulation()
	},
}

func runSimulation() error {
	builder := app.MakeBuilder().
		WithConfig(circuit.Config{
			R1Start:  runFlags.r1Start,
			R1End:    runFlags.r1End,
			R2Start:  runFlags.r2Start,
			R2End:    runFlags.r2End,
			RL:       runFlags.load,
			VS:       runFlags.source,
			Duration: sim.VTimeInSec(runFlags.duration),
		}).
		WithVoltmeterInterval(sim.VTimeInSec(runFlags.voltmeterInterval)).
		WithAmmeterInterval(sim.VTimeInSec(runFlags.ammeterInterval)).
		WithOhmmeterInterval(sim.VTimeInSec(runFlags.ohmmeterInterval)).
		WithRollingWindow(sim.VTimeInSec(runFlags.window))

	if runFlags.parallel {
		builder = builder.WithParallelEngine()
	}

	if runFlags.logEvents {
		builder = builder.WithEventLogging()
	}

	if !runFlags.monitor {
		builder = builder.WithoutMonitoring()
	} else if runFlags.monitorPort > 0 {
		builder = builder.WithMonitorPort(runFlags.monitorPort)
	}

	builder = configureRecording(builder)

	a := builder.Build()
	defer a.Terminate()

	if runFlags.openMonitor && a.MonitorURL() != "" {
		a.Monitor().OpenBrowser(a.MonitorURL())
	}

	return a.Run()
}

// configureRecording picks the recording backend. A ClickHouse server from
// the environment wins over the default SQLite file.
func configureRecording(builder app.Builder) app.Builder {
	if runFlags.noRecord {
		return builder.WithoutDataRecording()
	}

	addr := os.Getenv("CIRCUITSIM_CLICKHOUSE_ADDR")
	if addr == "" {
		if runFlags.output != "" {
			builder = builder.WithOutputFileName(runFlags.output)
		}
		return builder
	}

	batchSize := 0
	if s := os.Getenv("CIRCUITSIM_CLICKHOUSE_BATCH_SIZE"); s != "" {
		b, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"Ignoring invalid CIRCUITSIM_CLICKHOUSE_BATCH_SIZE: %s\n", s)
		} else {
			batchSize = b
		}
	}

	recorder := datarecording.NewClickHouseRecorder(
		datarecording.ClickHouseOptions{
			Addr:      addr,
			Database:  os.Getenv("CIRCUITSIM_CLICKHOUSE_DATABASE"),
			Username:  os.Getenv("CIRCUITSIM_CLICKHOUSE_USERNAME"),
			Password:  os.Getenv("CIRCUITSIM_CLICKHOUSE_PASSWORD"),
			BatchSize: batchSize,
		})

	return builder.WithDataRecorder(recorder)
}

func init() {
	defaultCfg := circuit.DefaultConfig()

	runCmd.Flags().Float64Var(&runFlags.r1Start, "r1-start",
		defaultCfg.R1Start, "initial resistance of R1, in ohms")
	runCmd.Flags().Float64Var(&runFlags.r1End, "r1-end",
		defaultCfg.R1End, "final resistance of R1, in ohms")
	runCmd.Flags().Float64Var(&runFlags.r2Start, "r2-start",
		defaultCfg.R2Start, "initial resistance of R2, in ohms")
	runCmd.Flags().Float64Var(&runFlags.r2End, "r2-end",
		defaultCfg.R2End, "final resistance of R2, in ohms")
	runCmd.Flags().Float64Var(&runFlags.load, "load",
		defaultCfg.RL, "resistance of the load resistor, in ohms")
	runCmd.Flags().Float64Var(&runFlags.source, "source",
		defaultCfg.VS, "source voltage, in volts")
	runCmd.Flags().Float64Var(&runFlags.duration, "duration",
		float64(defaultCfg.Duration), "simulated duration, in seconds")

	runCmd.Flags().Float64Var(&runFlags.voltmeterInterval,
		"voltmeter-interval", 0.1, "voltmeter sampling interval, in seconds")
	runCmd.Flags().Float64Var(&runFlags.ammeterInterval,
		"ammeter-interval", 0.3, "ammeter sampling interval, in seconds")
	runCmd.Flags().Float64Var(&runFlags.ohmmeterInterval,
		"ohmmeter-interval", 1.0, "estimate reporting interval, in seconds")
	runCmd.Flags().Float64Var(&runFlags.window,
		"window", 2.0, "rolling-average window, in seconds")

	runCmd.Flags().BoolVar(&runFlags.parallel, "parallel", false,
		"use the parallel event engine")
	runCmd.Flags().BoolVar(&runFlags.logEvents, "log-events", false,
		"log every dispatched event to stderr")

	runCmd.Flags().BoolVar(&runFlags.monitor, "monitor", true,
		"serve the monitoring API while the simulation runs")
	runCmd.Flags().IntVar(&runFlags.monitorPort, "monitor-port", 0,
		"port of the monitoring server, 0 picks a random port")
	runCmd.Flags().BoolVar(&runFlags.openMonitor, "open-monitor", false,
		"open the monitor URL in the default browser")

	runCmd.Flags().BoolVar(&runFlags.noRecord, "no-record", false,
		"disable result recording")
	runCmd.Flags().StringVar(&runFlags.output, "output", "",
		"output file name of the SQLite recorder, without extension")

	rootCmd.AddCommand(runCmd)
}
