package forces

import (
	"math"
	"testing"

	"github.com/san-kum/forcekit/internal/force"
	"github.com/san-kum/forcekit/internal/vector"
	"github.com/stretchr/testify/assert"
)

func TestFrame_Advance(t *testing.T) {
	var f Frame
	f.Advance(0.5)
	f.Advance(0.5)

	assert.Equal(t, uint64(2), f.Step)
	assert.InDelta(t, 1.0, f.Time, 1e-12)
	assert.InDelta(t, math.Cos(1), f.Position.X, 1e-12)
	assert.InDelta(t, 1.0, f.Position.Norm(), 1e-12)
}

func TestReferenceForces(t *testing.T) {
	f := &Frame{Time: 2, Position: vector.NewVec3(0.5, 0.0, 0.0)}

	assert.Equal(t, 3.0, Constant[float64]{3}.Force(f))
	assert.Equal(t, float32(5), Ramp[float32]{Offset: 1, Rate: 2}.Force(f))

	s := Spring[float64]{K: 4, Rest: 1}
	assert.Equal(t, 2.0, s.Force(f))
	assert.Equal(t, 0.5, s.Energy(f))

	a := Along[Constant[float64]]{Scalar: Constant[float64]{2}, Direction: vector.NewVec3(0.0, 1.0, 0.0)}
	assert.Equal(t, vector.NewVec3(0.0, 2.0, 0.0), a.Force(f))
}

func TestReferenceForces_Registrable(t *testing.T) {
	reg := force.NewRegistry[Frame](nil)
	force.AddForce[CPU64, float64](reg, Spring[float64]{K: 1})
	force.AddForce[CPU32, float32](reg, Ramp[float32]{Rate: 1})
	force.AddForce[CPUVec, vector.Vec3[float64]](reg, Along[Spring[float64]]{Scalar: Spring[float64]{K: 1}, Direction: vector.NewVec3(1.0, 0.0, 0.0)})

	assert.Equal(t, 3, reg.Len())
	assert.Len(t, reg.Backends(), 3)
}
