package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	IndexPollingInterval time.Duration `mapstructure:"index-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.IndexPollingInterval <= 0 {
		return errors.New("index-polling-interval must be positive")
	}
	return nil
}
