// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/user/delogo/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for delogo.
type Config struct {
	// Sampling
	SampleCount int   `yaml:"sample_count"`
	Seed        int64 `yaml:"seed"`

	// Detection
	Threshold float64 `yaml:"threshold"`
	Sigma     float64 `yaml:"sigma"`
	Cutoff    float64 `yaml:"cutoff"`

	// Decoding
	Workers         int `yaml:"workers"`
	DecodeTimeoutMs int `yaml:"decode_timeout_ms"`

	// Encoding
	Codec  string `yaml:"codec"`
	CRF    int    `yaml:"crf"`
	Preset string `yaml:"preset"`

	// Upscaling
	UpscaleFactor int    `yaml:"upscale_factor"`
	UpscaleModel  string `yaml:"upscale_model"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Sampling
		SampleCount: 50,
		Seed:        42,

		// Detection
		Threshold: 10,
		Sigma:     3,
		Cutoff:    0.2,

		// Decoding
		Workers:         4,
		DecodeTimeoutMs: 20000,

		// Encoding
		Codec:  "libx265",
		CRF:    18,
		Preset: "slow",

		// Upscaling
		UpscaleFactor: 4,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		SampleCount: c.SampleCount,
		Seed:        c.Seed,

		Threshold: c.Threshold,
		Sigma:     c.Sigma,
		Cutoff:    c.Cutoff,

		Workers:         c.Workers,
		DecodeTimeoutMs: c.DecodeTimeoutMs,
	}
}
