package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TopologyPath string

	Apply        bool
	Timeout      time.Duration
	PollInterval time.Duration

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.TopologyPath == "" {
		return nil, errors.New("TopologyPath is a required configuration field and cannot be empty")
	}
	if cfg.Apply && cfg.Timeout <= 0 {
		return nil, errors.New("Timeout must be positive when applying a plan")
	}
	if cfg.Apply && cfg.PollInterval <= 0 {
		return nil, errors.New("PollInterval must be positive when applying a plan")
	}

	return &cfg, nil
}
