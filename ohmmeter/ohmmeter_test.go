package ohmmeter_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ohmlab/circuitsim/meter"
	"github.com/ohmlab/circuitsim/ohmmeter"
	"github.com/ohmlab/circuitsim/sim"
)

var _ = Describe("Ohmmeter", func() {
	var (
		engine sim.Engine
		om     *ohmmeter.Comp
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		om = ohmmeter.MakeBuilder().
			WithEngine(engine).
			WithAverager(ohmmeter.Instantaneous()).
			Build("Ohmmeter")
	})

	It("should stay silent until both quantities were observed", func() {
		om.SetVoltage(10, 0)

		om.Tick(1.0)

		_, ok := om.LastEstimate()
		Expect(ok).To(BeFalse())
	})

	It("should estimate from the latest pair of readings", func() {
		om.SetVoltage(10, 0)
		om.SetCurrent(0.001, 0)

		om.Tick(1.0)

		est, ok := om.LastEstimate()
		Expect(ok).To(BeTrue())
		Expect(est.Value).To(Equal(10_000.0))
		Expect(est.Time).To(Equal(sim.VTimeInSec(1.0)))
		Expect(est.Mode).To(Equal("instantaneous"))
	})

	It("should read an open circuit as +Inf", func() {
		om.SetVoltage(10, 0)
		om.SetCurrent(0, 0)

		om.Tick(1.0)

		est, _ := om.LastEstimate()
		Expect(math.IsInf(est.Value, 1)).To(BeTrue())
	})

	It("should dispatch pushed samples by quantity", func() {
		om.Observe(meter.Voltage, meter.Sample{Value: 6, Time: 0.1})
		om.Observe(meter.Current, meter.Sample{Value: 0.002, Time: 0.3})

		om.Tick(1.0)

		est, _ := om.LastEstimate()
		Expect(est.Value).To(Equal(3_000.0))
	})

	It("should sample the latest pair at most once per tick", func() {
		rolling := ohmmeter.MakeBuilder().
			WithEngine(engine).
			WithAverager(ohmmeter.RollingAverage(2.0)).
			Build("RollingOhmmeter")

		rolling.SetCurrent(0.001, 0)
		rolling.SetVoltage(10, 0)
		rolling.SetVoltage(20, 0.1)
		rolling.SetVoltage(30, 0.2)

		rolling.Tick(1.0)

		// Only the 30 V / 1 mA pair the tick reads is sampled.
		est, _ := rolling.LastEstimate()
		Expect(est.Value).To(Equal(30_000.0))
		Expect(est.Mode).To(Equal("rolling average"))
	})

	It("should not sample again when the readings did not change", func() {
		rolling := ohmmeter.MakeBuilder().
			WithEngine(engine).
			WithAverager(ohmmeter.RollingAverage(2.0)).
			Build("RollingOhmmeter")

		rolling.SetVoltage(10, 0)
		rolling.SetCurrent(0.001, 0)
		rolling.Tick(1.0)
		rolling.Tick(2.0)

		rolling.SetVoltage(20, 2.5)
		rolling.Tick(3.0)

		// The unchanged pair at t=2 adds nothing, so the window at t=3
		// holds 10 kΩ from t=1 and 20 kΩ from t=3.
		est, _ := rolling.LastEstimate()
		Expect(est.Value).To(Equal(15_000.0))
	})

	It("should panic when built without an engine", func() {
		Expect(func() {
			ohmmeter.MakeBuilder().Build("Ohmmeter")
		}).To(Panic())
	})
})
