package config

import (
	"fmt"
	"time"
)

type QueueConfig struct {
	QueueUser           string        `mapstructure:"queue-user"`
	QueuePassword       string        `mapstructure:"queue-password"`
	Url                 string        `mapstructure:"url"`
	Exchange            string        `mapstructure:"exchange"`
	PublishTimeout      time.Duration `mapstructure:"publish-timeout"`
	MsgMaxRetryAttempts uint          `mapstructure:"msg-max-retry-attempts"`
	RetryInterval       time.Duration `mapstructure:"retry-interval"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return fmt.Errorf("queue user is required")
	}
	if cfg.QueuePassword == "" {
		return fmt.Errorf("queue password is required")
	}
	if cfg.Url == "" {
		return fmt.Errorf("queue url is required")
	}
	if cfg.Exchange == "" {
		return fmt.Errorf("queue exchange is required")
	}
	if cfg.PublishTimeout <= 0 {
		return fmt.Errorf("publish-timeout must be positive")
	}
	if cfg.MsgMaxRetryAttempts == 0 {
		return fmt.Errorf("msg-max-retry-attempts must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("retry-interval must be positive")
	}
	return nil
}
