package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1.0, 2.0, 3.0)
	b := NewVec3(4.0, 5.0, 6.0)

	assert.Equal(t, NewVec3(5.0, 7.0, 9.0), a.Add(b))
	assert.Equal(t, NewVec3(3.0, 3.0, 3.0), b.Sub(a))
	assert.Equal(t, NewVec3(2.0, 4.0, 6.0), a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVec3_ZeroIsIdentity(t *testing.T) {
	var zero Vec3[float32]
	v := NewVec3[float32](1.5, -2, 0.25)

	assert.Equal(t, v, zero.Add(v))
	assert.Equal(t, v, v.Add(zero))
}

func TestVec3_Norm(t *testing.T) {
	tests := []struct {
		v    Vec3[float64]
		want float64
	}{
		{NewVec3(3.0, 4.0, 0.0), 5.0},
		{NewVec3(0.0, 0.0, 0.0), 0.0},
		{NewVec3(1.0, 1.0, 1.0), math.Sqrt(3)},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.v.Norm(), 1e-12)
	}
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 1.5, Magnitude(1.5))
	assert.Equal(t, -1.0, Magnitude(int8(-1)))
	assert.InDelta(t, 5.0, Magnitude(NewVec3[float32](3, 4, 0)), 1e-6)
	assert.True(t, math.IsNaN(Magnitude("nope")))
}
