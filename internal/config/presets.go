package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/forcekit/internal/experiment"
)

var Presets = map[string]*Config{
	"gravity": {
		Steps: 100, Dt: 0.1,
		Forces: []experiment.Spec{
			{Name: "gravity", Kind: "constant", Precision: experiment.PrecisionF64, Value: -9.81},
			{Name: "gravity32", Kind: "constant", Precision: experiment.PrecisionF32, Value: -9.81},
			{Name: "down", Kind: "constant", Precision: experiment.PrecisionVec3, Value: 9.81, Direction: []float64{0, 0, -1}},
		},
	},
	"oscillator": {
		Steps: 400, Dt: 0.02,
		Forces: []experiment.Spec{
			{Name: "spring", Kind: "spring", Precision: experiment.PrecisionF64, Value: 10},
			{Name: "spring32", Kind: "spring", Precision: experiment.PrecisionF32, Value: 10},
			{Name: "tether", Kind: "spring", Precision: experiment.PrecisionVec3, Value: 2, Rate: 0.5, Direction: []float64{1, 0, 0}},
		},
	},
	"ramp": {
		Steps: 200, Dt: 0.05,
		Forces: []experiment.Spec{
			{Name: "thrust", Kind: "ramp", Precision: experiment.PrecisionF64, Value: 0, Rate: 0.5},
			{Name: "brake", Kind: "ramp", Precision: experiment.PrecisionF64, Value: 1, Rate: -0.25},
			{Name: "thrust32", Kind: "ramp", Precision: experiment.PrecisionF32, Value: 0, Rate: 0.5},
		},
	},
	"crowd": {
		Steps: 100, Dt: 0.05, Parallel: true, Workers: 8,
		Forces: crowd(64),
	},
}

func crowd(n int) []experiment.Spec {
	specs := make([]experiment.Spec, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, experiment.Spec{
			Name:      fmt.Sprintf("spring%d", i),
			Kind:      "spring",
			Precision: experiment.PrecisionF64,
			Value:     1 + float64(i)/float64(n),
			Rate:      float64(i%8) / 8,
		})
	}
	return specs
}

// UnknownPresetError is returned when a preset name is not registered.
type UnknownPresetError struct {
	Name      string
	Available []string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("config: unknown preset %q (available: %v)", e.Name, e.Available)
}

// GetPreset returns a copy of the named preset with unset ambient fields
// filled from the defaults.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, &UnknownPresetError{Name: name, Available: ListPresets()}
	}

	cfg := DefaultConfig()
	cfg.Steps = p.Steps
	cfg.Dt = p.Dt
	cfg.Parallel = p.Parallel
	cfg.Workers = p.Workers
	cfg.Forces = append([]experiment.Spec(nil), p.Forces...)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
