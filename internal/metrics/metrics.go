// Package metrics summarizes the samples of an experiment run.
package metrics

import (
	"math"

	"github.com/san-kum/forcekit/internal/experiment"
)

// Metric accumulates one number over a run.
type Metric interface {
	Name() string
	Observe(s experiment.Sample)
	Value() float64
	Reset()
}

// Selector extracts the observed quantity from a sample.
type Selector func(s experiment.Sample) float64

func F64(s experiment.Sample) float64     { return s.F64 }
func F32(s experiment.Sample) float64     { return float64(s.F32) }
func VecNorm(s experiment.Sample) float64 { return s.Vec.Norm() }
func Energy(s experiment.Sample) float64  { return s.Energy }

// Default returns the metrics recorded with every stored run.
func Default() []Metric {
	return []Metric{
		NewMean("mean_f64", F64),
		NewMean("mean_f32", F32),
		NewPeak("peak_f64", F64),
		NewPeak("peak_vec", VecNorm),
		NewEnergyDrift(),
	}
}

// Collect feeds samples through ms and returns their values by name.
func Collect(samples []experiment.Sample, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range samples {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

type Mean struct {
	name    string
	pick    Selector
	total   float64
	samples int
}

func NewMean(name string, pick Selector) *Mean {
	return &Mean{name: name, pick: pick}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(s experiment.Sample) {
	m.total += m.pick(s)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Mean) Reset() {
	m.total = 0
	m.samples = 0
}

// Peak tracks the largest absolute value.
type Peak struct {
	name string
	pick Selector
	max  float64
}

func NewPeak(name string, pick Selector) *Peak {
	return &Peak{name: name, pick: pick}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s experiment.Sample) {
	p.max = math.Max(p.max, math.Abs(p.pick(s)))
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() { p.max = 0 }

// EnergyDrift is the largest relative departure of the energy aggregate from
// its first observed value. It stays 0 while the first energy is 0.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s experiment.Sample) {
	if e.samples == 0 {
		e.initial = s.Energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(s.Energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Bounded is the fraction of samples whose selected value stays within
// threshold in absolute value.
type Bounded struct {
	name       string
	pick       Selector
	threshold  float64
	violations int
	samples    int
}

func NewBounded(name string, pick Selector, threshold float64) *Bounded {
	return &Bounded{name: name, pick: pick, threshold: threshold}
}

func (b *Bounded) Name() string { return b.name }

func (b *Bounded) Observe(s experiment.Sample) {
	b.samples++
	if math.Abs(b.pick(s)) > b.threshold {
		b.violations++
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}
