package forces

import (
	"github.com/san-kum/forcekit/internal/force"
	"github.com/san-kum/forcekit/internal/vector"
)

// Constant returns Value regardless of the frame.
type Constant[V comparable] struct {
	Value V
}

func (c Constant[V]) Force(*Frame) V { return c.Value }

// Ramp returns Offset + Rate*t.
type Ramp[T vector.Float] struct {
	Offset T
	Rate   T
}

func (r Ramp[T]) Force(f *Frame) T {
	return r.Offset + r.Rate*T(f.Time)
}

// Spring pulls the probe's X coordinate towards Rest with stiffness K.
type Spring[T vector.Float] struct {
	K    T
	Rest T
}

func (s Spring[T]) Force(f *Frame) T {
	return -s.K * (T(f.Position.X) - s.Rest)
}

func (s Spring[T]) Energy(f *Frame) T {
	d := T(f.Position.X) - s.Rest
	return s.K * d * d / 2
}

// Along scales Direction by a scalar force.
type Along[F force.Registrable[float64, Frame]] struct {
	Scalar    F
	Direction vector.Vec3[float64]
}

func (a Along[F]) Force(f *Frame) vector.Vec3[float64] {
	return a.Direction.Scale(a.Scalar.Force(f))
}
