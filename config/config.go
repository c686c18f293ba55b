package config

import (
	"custody/core"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("CUSTODY")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	withDefaults(config)

	if _, err := govalidator.ValidateStruct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func withDefaults(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "custody"
	}

	if cfg.Redis.Stream == "" {
		cfg.Redis.Stream = "custody:notifications"
	}

	if cfg.Webhook.Timeout <= 0 {
		cfg.Webhook.Timeout = 10 * time.Second
	}

	if cfg.Relay.Batch <= 0 {
		cfg.Relay.Batch = 100
	}

	if cfg.Relay.Interval <= 0 {
		cfg.Relay.Interval = 500 * time.Millisecond
	}

	if cfg.Relay.Settle <= 0 {
		cfg.Relay.Settle = 30 * time.Second
	}
}
