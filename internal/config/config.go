package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/san-kum/forcekit/internal/experiment"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	DefaultSteps    = 200
	DefaultDt       = 0.05
	DefaultWorkers  = 0
	DefaultDataDir  = "data/runs"
	DefaultLogLevel = "info"

	// EnvPrefix is stripped from environment variables: FORCEKIT_DT -> dt.
	EnvPrefix = "FORCEKIT_"
)

var (
	ErrInvalidLogLevel = errors.New("config: invalid log level")
	ErrNoForces        = errors.New("config: no forces configured")
)

type Config struct {
	Steps    int               `koanf:"steps" yaml:"steps"`
	Dt       float64           `koanf:"dt" yaml:"dt"`
	Parallel bool              `koanf:"parallel" yaml:"parallel"`
	Workers  int               `koanf:"workers" yaml:"workers"`
	DataDir  string            `koanf:"data_dir" yaml:"data_dir"`
	LogLevel string            `koanf:"log_level" yaml:"log_level"`
	Plot     bool              `koanf:"plot" yaml:"plot"`
	Forces   []experiment.Spec `koanf:"forces" yaml:"forces"`
}

func DefaultConfig() *Config {
	return &Config{
		Steps:    DefaultSteps,
		Dt:       DefaultDt,
		Workers:  DefaultWorkers,
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Forces:   defaultForces(),
	}
}

func defaultForces() []experiment.Spec {
	return []experiment.Spec{
		{Name: "gravity", Kind: "constant", Precision: experiment.PrecisionF64, Value: -9.81},
		{Name: "tether", Kind: "spring", Precision: experiment.PrecisionF64, Value: 4},
		{Name: "drag", Kind: "constant", Precision: experiment.PrecisionF32, Value: -0.5},
		{Name: "wind", Kind: "ramp", Precision: experiment.PrecisionVec3, Value: 0.2, Rate: 0.1, Direction: []float64{1, 1, 0}},
	}
}

// Load builds a Config from, lowest to highest precedence: defaults, the YAML
// file at path (skipped when empty), FORCEKIT_ environment variables and the
// flags in flags that were explicitly set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"steps":     def.Steps,
		"dt":        def.Dt,
		"parallel":  def.Parallel,
		"workers":   def.Workers,
		"data_dir":  def.DataDir,
		"log_level": def.LogLevel,
		"plot":      def.Plot,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if key == "data" {
				key = "data_dir"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if !k.Exists("forces") {
		cfg.Forces = def.Forces
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values the runner cannot recover from.
func (c *Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", experiment.ErrParameterBounds, c.Steps)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", experiment.ErrParameterBounds, c.Dt)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", experiment.ErrParameterBounds, c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if len(c.Forces) == 0 {
		return ErrNoForces
	}
	return nil
}

// Experiment returns the runner configuration.
func (c *Config) Experiment() experiment.Config {
	return experiment.Config{
		Steps:    c.Steps,
		Dt:       c.Dt,
		Parallel: c.Parallel,
		Workers:  c.Workers,
		Forces:   c.Forces,
	}
}
