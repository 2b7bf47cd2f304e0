package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Db      DbConfig      `mapstructure:"db"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Api     ApiConfig     `mapstructure:"api"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Poller  PollerConfig  `mapstructure:"poller"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Ledger.Validate(); err != nil {
		return err
	}
	if err := cfg.Db.Validate(); err != nil {
		return err
	}
	if err := cfg.Queue.Validate(); err != nil {
		return err
	}
	if err := cfg.Api.Validate(); err != nil {
		return err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}
	if err := cfg.Poller.Validate(); err != nil {
		return err
	}
	return nil
}

// New returns a validated Config loaded from the given YAML file.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", cfgFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
