// Package config loads the botsim server configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Sim    SimConfig    `yaml:"sim"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type SimConfig struct {
	// TickInterval paces the drive integration and telemetry frames.
	TickInterval time.Duration `yaml:"tick_interval"`
	// FenceRadius is the synthetic boundary the ultrasonic sensor ranges
	// against, in meters.
	FenceRadius float64 `yaml:"fence_radius"`
}

// Load reads a YAML file over the defaults. A missing file is an error;
// callers that want pure defaults use Default directly.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Sim: SimConfig{
			TickInterval: time.Second,
			FenceRadius:  25,
		},
	}
}
