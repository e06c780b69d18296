package app

import (
	"github.com/ohmlab/circuitsim/datarecording"
	"github.com/ohmlab/circuitsim/meter"
	"github.com/ohmlab/circuitsim/monitoring"
	"github.com/ohmlab/circuitsim/ohmmeter"
	"github.com/ohmlab/circuitsim/sim"
)

// SampleRow is the schema of the "samples" table: one row per meter reading.
type SampleRow struct {
	Instrument string
	Time       float64
	Value      float64
}

// EstimateRow is the schema of the "estimates" table: one row per reported
// resistance estimate.
type EstimateRow struct {
	Mode  string
	Time  float64
	Value float64
}

// recordingHook stores every reading and estimate in the data recorder and
// moves the progress bar along the simulated time axis.
type recordingHook struct {
	recorder datarecording.DataRecorder
	bar      *monitoring.ProgressBar
	duration sim.VTimeInSec
}

func newRecordingHook(
	recorder datarecording.DataRecorder,
	bar *monitoring.ProgressBar,
	duration sim.VTimeInSec,
) *recordingHook {
	recorder.CreateTable("samples", SampleRow{})
	recorder.CreateTable("estimates", EstimateRow{})

	return &recordingHook{
		recorder: recorder,
		bar:      bar,
		duration: duration,
	}
}

// Func records the item carried by the hook context.
func (h *recordingHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case meter.HookPosSample:
		s := ctx.Item.(meter.Sample)
		h.recorder.InsertData("samples", SampleRow{
			Instrument: ctx.Domain.(sim.Named).Name(),
			Time:       float64(s.Time),
			Value:      s.Value,
		})
		h.advance(s.Time)
	case ohmmeter.HookPosEstimate:
		est := ctx.Item.(ohmmeter.Estimate)
		h.recorder.InsertData("estimates", EstimateRow{
			Mode:  est.Mode,
			Time:  float64(est.Time),
			Value: est.Value,
		})
		h.advance(est.Time)
	}
}

func (h *recordingHook) advance(t sim.VTimeInSec) {
	if h.bar == nil {
		return
	}

	permille := uint64(t / h.duration * 1000)
	if permille > 1000 {
		permille = 1000
	}

	h.bar.SetFinished(permille)
}
