package system

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/forcekit/internal/backend"
)

var _ = Describe("Replicate", func() {
	var sys *System[clock]

	BeforeEach(func() {
		sys = New[clock](nil)
		AddForce[cpu64, float64](sys, drift{rate: 1})
		sys.Advance()
	})

	It("gives every replica its own identity", func() {
		replicas := sys.Replicate(3)

		Expect(replicas).To(HaveLen(3))
		ids := map[string]bool{sys.ID.String(): true}
		for _, r := range replicas {
			ids[r.ID.String()] = true
			Expect(r.Step()).To(Equal(sys.Step()))
		}
		Expect(ids).To(HaveLen(4))
	})

	It("starts every replica with equal forces", func() {
		for _, r := range sys.Replicate(2) {
			Expect(r.Forces().Equal(sys.Forces())).To(BeTrue())
		}
	})

	It("keeps registrations isolated between replicas", func() {
		replicas := sys.Replicate(2)
		AddForce[cpu64, float64](replicas[0], drift{rate: 10})

		st := &clock{step: 1}
		Expect(Sum[cpu64, float64](replicas[0], st)).To(Equal(11.0))
		Expect(Sum[cpu64, float64](replicas[1], st)).To(Equal(1.0))
		Expect(Sum[cpu64, float64](sys, st)).To(Equal(1.0))
	})

	It("survives a reset of the original", func() {
		replicas := sys.Replicate(1)
		sys.Reset()

		_, ok := ComputeFirst[cpu64, float64](sys, &clock{})
		Expect(ok).To(BeFalse())
		Expect(replicas[0].Forces().Len()).To(Equal(1))
		Expect(replicas[0].Step()).To(Equal(uint64(1)))
	})

	It("does not surface registrations under another precision", func() {
		_, ok := ComputeFirst[backend.CPU[float32], float32](sys, &clock{})
		Expect(ok).To(BeFalse())
	})
})
