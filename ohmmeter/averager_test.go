package ohmmeter_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ohmlab/circuitsim/ohmmeter"
)

var _ = Describe("Instantaneous", func() {
	It("should report the last recorded resistance", func() {
		a := ohmmeter.Instantaneous()

		a.Record(100, 0)
		a.Record(200, 1)

		Expect(a.Estimate(5)).To(Equal(200.0))
	})
})

var _ = Describe("RollingAverage", func() {
	var a ohmmeter.Averager

	BeforeEach(func() {
		a = ohmmeter.RollingAverage(2.0)
	})

	It("should report +Inf when nothing was recorded", func() {
		Expect(math.IsInf(a.Estimate(0), 1)).To(BeTrue())
	})

	It("should report the mean of the retained observations", func() {
		a.Record(100, 0)
		a.Record(200, 0.5)
		a.Record(300, 1.0)

		Expect(a.Estimate(1.0)).To(Equal(200.0))
	})

	It("should drop observations older than the window", func() {
		a.Record(100, 0)
		a.Record(200, 2.5)

		Expect(a.Estimate(3.0)).To(Equal(200.0))
	})

	It("should retain an observation exactly one window old", func() {
		a.Record(100, 1.0)
		a.Record(300, 3.0)

		Expect(a.Estimate(3.0)).To(Equal(200.0))
	})

	It("should report +Inf after every observation expired", func() {
		a.Record(100, 0)

		Expect(math.IsInf(a.Estimate(10), 1)).To(BeTrue())
	})
})
