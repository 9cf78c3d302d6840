// Package config loads solver/transmitter configuration from an
// optional YAML file and lets command-line flags override it,
// grounded on the teacher's gopkg.in/yaml.v3 usage (src/deviceid.go)
// and spf13/pflag usage (src/appserver.go, cmd/direwolf).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doismellburning/phasefield/internal/solver"
)

// Config is the host driver's configuration surface, spec.md §6:
// "target file path, serial port name, baud rate, solver parameters,
// grid size N, and maximum focal distance."
type Config struct {
	Target   string  `yaml:"target"`
	Port     string  `yaml:"port"`
	Baud     int     `yaml:"baud"`
	GridSize int     `yaml:"grid_size"`
	MaxDistM float64 `yaml:"max_dist_m"`

	Iters        int     `yaml:"iters"`
	SliceSizeM   float64 `yaml:"slice_size_m"`
	EmitterSizeM float64 `yaml:"emitter_size_m"`
	AmpRes       int     `yaml:"amp_res"`
	PhaseRes     int     `yaml:"phase_res"`
	FrequencyHz  float64 `yaml:"emitter_freq_hz"`
	SoundSpeedMS float64 `yaml:"sound_speed_m_per_s"`
}

// Default mirrors the parameters used throughout
// original_source/UltrasonicHaptics.py.
func Default() Config {
	return Config{
		Port:         "COM1",
		Baud:         9600,
		GridSize:     32,
		MaxDistM:     0.25,
		Iters:        50,
		SliceSizeM:   0.16,
		EmitterSizeM: 0.01,
		AmpRes:       0,
		PhaseRes:     32,
		FrequencyHz:  40000,
		SoundSpeedMS: 343,
	}
}

// Load reads a YAML config file on top of Default(); a missing file is
// not an error (every field just keeps its default).
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SolverOptions projects the solving-relevant fields into
// solver.Options.
func (c Config) SolverOptions(distanceM float64) solver.Options {
	return solver.Options{
		DistanceM:    distanceM,
		Iters:        c.Iters,
		SliceSizeM:   c.SliceSizeM,
		FrequencyHz:  c.FrequencyHz,
		SoundSpeedMS: c.SoundSpeedMS,
		EmitterSizeM: c.EmitterSizeM,
		AmpRes:       c.AmpRes,
		PhaseRes:     c.PhaseRes,
	}
}
