package forces

import (
	"math"

	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/vector"
)

// Backends the reference forces are registered for.
type (
	CPU64  = backend.CPU[float64]
	CPU32  = backend.CPU[float32]
	CPUVec = backend.CPU[vector.Vec3[float64]]
)

// Frame is the state read by the reference forces.
type Frame struct {
	Step     uint64
	Time     float64
	Position vector.Vec3[float64]
}

// Advance moves the clock by dt. The probe position traces a unit circle in
// the XY plane so position-dependent forces change every step.
func (f *Frame) Advance(dt float64) {
	f.Step++
	f.Time += dt
	f.Position = vector.NewVec3(math.Cos(f.Time), math.Sin(f.Time), 0)
}
