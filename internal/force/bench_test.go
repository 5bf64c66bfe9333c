package force

import "testing"

func benchRegistry(n int) *Registry[frame] {
	reg := NewRegistry[frame](nil)
	for i := 0; i < n; i++ {
		AddForce[cpu64, float64](reg, stepped{scale: float64(i)})
	}
	return reg
}

func BenchmarkComputeFirst(b *testing.B) {
	reg := benchRegistry(1)
	st := &frame{step: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ComputeFirst[cpu64, float64](reg, st)
	}
}

func BenchmarkComputeBoxed(b *testing.B) {
	reg := benchRegistry(1)
	e := Entries[cpu64](reg)[0]
	st := &frame{step: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.ComputeBoxed(st).(float64)
	}
}

func BenchmarkSum(b *testing.B) {
	reg := benchRegistry(64)
	st := &frame{step: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sum[cpu64, float64](reg, st)
	}
}
