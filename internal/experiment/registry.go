package experiment

import (
	"sort"

	"github.com/san-kum/forcekit/internal/force"
	"github.com/san-kum/forcekit/internal/forces"
	"github.com/san-kum/forcekit/internal/system"
	"github.com/san-kum/forcekit/internal/vector"
)

// Output precisions a spec can ask for.
const (
	PrecisionF64  = "f64"
	PrecisionF32  = "f32"
	PrecisionVec3 = "vec3"
)

// Spec describes one force to register.
type Spec struct {
	Name      string    `koanf:"name" yaml:"name" json:"name"`
	Kind      string    `koanf:"kind" yaml:"kind" json:"kind"`
	Precision string    `koanf:"precision" yaml:"precision" json:"precision"`
	Value     float64   `koanf:"value" yaml:"value" json:"value"`
	Rate      float64   `koanf:"rate" yaml:"rate,omitempty" json:"rate,omitempty"`
	Direction []float64 `koanf:"direction" yaml:"direction,omitempty" json:"direction,omitempty"`
}

func (s Spec) direction() (vector.Vec3[float64], error) {
	if len(s.Direction) == 0 {
		return vector.NewVec3(1.0, 0.0, 0.0), nil
	}
	if len(s.Direction) != 3 {
		return vector.Vec3[float64]{}, ErrInvalidDirection
	}
	return vector.NewVec3(s.Direction[0], s.Direction[1], s.Direction[2]), nil
}

type builder func(sys *system.System[forces.Frame], s Spec) error

// Registry maps force kinds to builders.
type Registry struct {
	kinds map[string]builder
}

func NewRegistry() *Registry {
	r := &Registry{
		kinds: make(map[string]builder),
	}

	r.kinds["constant"] = func(sys *system.System[forces.Frame], s Spec) error {
		return addScalar(sys, s,
			forces.Constant[float64]{Value: s.Value},
			forces.Constant[float32]{Value: float32(s.Value)})
	}
	r.kinds["ramp"] = func(sys *system.System[forces.Frame], s Spec) error {
		return addScalar(sys, s,
			forces.Ramp[float64]{Offset: s.Value, Rate: s.Rate},
			forces.Ramp[float32]{Offset: float32(s.Value), Rate: float32(s.Rate)})
	}
	r.kinds["spring"] = func(sys *system.System[forces.Frame], s Spec) error {
		return addScalar(sys, s,
			forces.Spring[float64]{K: s.Value, Rest: s.Rate},
			forces.Spring[float32]{K: float32(s.Value), Rest: float32(s.Rate)})
	}

	return r
}

// addScalar registers the double or single precision variant, or lifts the
// double precision one onto s.Direction.
func addScalar[F force.Registrable[float64, forces.Frame], G force.Registrable[float32, forces.Frame]](sys *system.System[forces.Frame], s Spec, f64 F, f32 G) error {
	switch s.Precision {
	case PrecisionF64, "":
		system.AddForce[forces.CPU64, float64](sys, f64)
	case PrecisionF32:
		system.AddForce[forces.CPU32, float32](sys, f32)
	case PrecisionVec3:
		dir, err := s.direction()
		if err != nil {
			return err
		}
		system.AddForce[forces.CPUVec, vector.Vec3[float64]](sys, forces.Along[F]{Scalar: f64, Direction: dir})
	default:
		return &UnknownPrecisionError{Precision: s.Precision}
	}
	return nil
}

// Apply registers the force described by s into sys.
func (r *Registry) Apply(sys *system.System[forces.Frame], s Spec) error {
	fn, ok := r.kinds[s.Kind]
	if !ok {
		return &UnknownKindError{Kind: s.Kind, Available: r.ListKinds()}
	}
	return fn(sys, s)
}

// ListKinds returns the registered kinds, sorted.
func (r *Registry) ListKinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
