package force

import (
	"context"
	"testing"

	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constVec struct {
	v vector.Vec3[float64]
}

func (c constVec) Force(*frame) vector.Vec3[float64] { return c.v }

func TestSum_SequentialInsertionOrder(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3}

	forward := NewRegistry[frame](nil)
	for _, v := range values {
		AddForce[cpu64, float64](forward, constF64{v})
	}
	reverse := NewRegistry[frame](nil)
	for i := len(values) - 1; i >= 0; i-- {
		AddForce[cpu64, float64](reverse, constF64{values[i]})
	}

	want := 0.0
	for _, v := range values {
		want += v
	}
	wantReverse := 0.0
	for i := len(values) - 1; i >= 0; i-- {
		wantReverse += values[i]
	}

	assert.Equal(t, want, Sum[cpu64, float64](forward, &frame{}))
	assert.Equal(t, wantReverse, Sum[cpu64, float64](reverse, &frame{}))
	assert.NotEqual(t, want, wantReverse, "rounding depends on order")
	assert.InDelta(t, want, wantReverse, 1e-12)
}

func TestSum_EmptyIsIdentity(t *testing.T) {
	reg := NewRegistry[frame](nil)
	AddForce[cpu64, float64](reg, constF64{1})

	assert.Equal(t, float32(0), Sum[cpu32, float32](reg, &frame{}))
	assert.Equal(t, int8(0), Sum[cpuI8, int8](reg, &frame{}))
}

func TestSum_Integers(t *testing.T) {
	reg := NewRegistry[frame](nil)
	for _, v := range []int8{3, -1, -1, 5} {
		AddForce[cpuI8, int8](reg, constI8{v})
	}
	assert.Equal(t, int8(6), Sum[cpuI8, int8](reg, &frame{}))
}

func TestFold_Custom(t *testing.T) {
	reg := NewRegistry[frame](nil)
	for _, v := range []float64{3, -7, 2} {
		AddForce[cpu64, float64](reg, constF64{v})
	}

	maxAbs := Fold[cpu64, float64](reg, &frame{}, 0, func(acc, x float64) float64 {
		if x < 0 {
			x = -x
		}
		if x > acc {
			return x
		}
		return acc
	})
	assert.Equal(t, 7.0, maxAbs)
}

func TestAggregate_Vectors(t *testing.T) {
	type vcpu = backend.CPU[vector.Vec3[float64]]
	reg := NewRegistry[frame](nil)
	AddForce[vcpu, vector.Vec3[float64]](reg, constVec{vector.NewVec3(1.0, 0.0, 0.0)})
	AddForce[vcpu, vector.Vec3[float64]](reg, constVec{vector.NewVec3(0.0, 2.0, 0.0)})
	AddForce[vcpu, vector.Vec3[float64]](reg, constVec{vector.NewVec3(0.0, 0.0, -3.0)})

	got := Aggregate[vcpu, vector.Vec3[float64]](reg, &frame{})
	assert.Equal(t, vector.NewVec3(1.0, 2.0, -3.0), got)
}

func TestFoldParallel_MatchesFold(t *testing.T) {
	reg := NewRegistry[frame](nil)
	for i := 0; i < 200; i++ {
		AddForce[cpu64, float64](reg, stepped{scale: 0.1 * float64(i+1)})
	}
	st := &frame{step: 7}
	add := func(acc, x float64) float64 { return acc + x }

	want := Fold[cpu64, float64](reg, st, 0, add)
	for _, limit := range []int{0, 1, 4, 64} {
		got, err := FoldParallel[cpu64, float64](context.Background(), reg, st, 0, add, limit)
		require.NoError(t, err)
		assert.Equal(t, want, got, "limit %d must be bit-identical", limit)
	}
}

func TestFoldParallel_Canceled(t *testing.T) {
	reg := NewRegistry[frame](nil)
	AddForce[cpu64, float64](reg, constF64{1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := FoldParallel[cpu64, float64](ctx, reg, &frame{}, -1, func(acc, x float64) float64 { return acc + x }, 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1.0, got)
}

func TestFoldParallel_Empty(t *testing.T) {
	reg := NewRegistry[frame](nil)

	got, err := FoldParallel[cpu64, float64](context.Background(), reg, &frame{}, 5, func(acc, x float64) float64 { return acc + x }, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestSumEnergy_SkipsForcesWithoutEnergy(t *testing.T) {
	reg := NewRegistry[frame](nil)
	AddForce[cpu64, float64](reg, spring{k: 2})
	AddForce[cpu64, float64](reg, constF64{100})
	AddForce[cpu64, float64](reg, spring{k: 4})
	st := &frame{x: 1}

	assert.Equal(t, 3.0, SumEnergy[cpu64, float64](reg, st))
	assert.Equal(t, 100.0-2.0-4.0, Sum[cpu64, float64](reg, st))
}
