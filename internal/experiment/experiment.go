package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/force"
	"github.com/san-kum/forcekit/internal/forces"
	"github.com/san-kum/forcekit/internal/system"
	"github.com/san-kum/forcekit/internal/vector"
)

type Config struct {
	Steps    int
	Dt       float64
	Parallel bool
	Workers  int
	Forces   []Spec
}

// Sample is what one step measured on every reference backend. Energy sums
// the energies of the scalar forces on both CPU[float64] and CPU[float32];
// vector forces carry no energy.
type Sample struct {
	Step   uint64               `json:"step"`
	Time   float64              `json:"time"`
	F64    float64              `json:"f64"`
	F32    float32              `json:"f32"`
	Vec    vector.Vec3[float64] `json:"vec"`
	Energy float64              `json:"energy"`
}

type Result struct {
	Samples  []Sample
	Backends []backend.Info
}

type Experiment struct {
	cfg    Config
	sys    *system.System[forces.Frame]
	frame  forces.Frame
	logger *slog.Logger
}

// New creates an experiment. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Experiment{
		cfg:    cfg,
		logger: logger,
	}
}

// Setup creates a fresh session and registers every configured force.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.validateConfig(); err != nil {
		return err
	}

	sys := system.New[forces.Frame](e.logger)
	for i, s := range e.cfg.Forces {
		if err := reg.Apply(sys, s); err != nil {
			return &SpecError{Index: i, Name: s.Name, Wrapped: err}
		}
	}
	e.sys = sys
	e.frame = forces.Frame{}
	e.logger.Info("experiment ready",
		"session", sys.ID.String(),
		"forces", sys.Forces().Len(),
		"backends", len(sys.Forces().Backends()),
	)
	return nil
}

func (e *Experiment) validateConfig() error {
	if e.cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, e.cfg.Dt)
	}
	if e.cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrParameterBounds, e.cfg.Steps)
	}
	if e.cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrParameterBounds, e.cfg.Workers)
	}
	return nil
}

// Step advances the clock once and measures every backend.
func (e *Experiment) Step(ctx context.Context) (Sample, error) {
	if e.sys == nil {
		return Sample{}, ErrNotSetup
	}

	e.frame.Advance(e.cfg.Dt)
	e.sys.Advance()
	return e.measure(ctx)
}

func (e *Experiment) measure(ctx context.Context) (Sample, error) {
	reg := e.sys.Forces()
	s := Sample{
		Step: e.frame.Step,
		Time: e.frame.Time,
	}

	if e.cfg.Parallel {
		f64, err := force.FoldParallel[forces.CPU64, float64](ctx, reg, &e.frame, 0, addF64, e.cfg.Workers)
		if err != nil {
			return s, err
		}
		s.F64 = f64
	} else {
		s.F64 = force.Sum[forces.CPU64, float64](reg, &e.frame)
	}
	s.F32 = force.Sum[forces.CPU32, float32](reg, &e.frame)
	s.Vec = force.Aggregate[forces.CPUVec, vector.Vec3[float64]](reg, &e.frame)
	s.Energy = force.SumEnergy[forces.CPU64, float64](reg, &e.frame) +
		float64(force.SumEnergy[forces.CPU32, float32](reg, &e.frame))
	return s, nil
}

func addF64(acc, x float64) float64 { return acc + x }

// Run performs every configured step and collects the samples.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sys == nil {
		return nil, ErrNotSetup
	}

	result := &Result{
		Samples:  make([]Sample, 0, e.cfg.Steps),
		Backends: e.sys.Forces().Backends(),
	}

	for i := 0; i < e.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s, err := e.Step(ctx)
		if err != nil {
			return result, err
		}
		result.Samples = append(result.Samples, s)
	}

	e.logger.Debug("experiment finished", "steps", len(result.Samples))
	return result, nil
}

// System returns the underlying session for direct queries.
func (e *Experiment) System() *system.System[forces.Frame] {
	return e.sys
}

// Frame returns the current clock.
func (e *Experiment) Frame() forces.Frame {
	return e.frame
}
