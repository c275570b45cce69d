package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Webhook credentials are
// deliberately not checked here: a missing Pushover token or Telegram chat id
// surfaces as a per-webhook warning at send time so one bad entry never blocks
// the daemon from starting.
func (c *Config) Validate() error {
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateWebhooks(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.RequestTimeout <= 0 {
		return errors.New("http.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateWebhooks() error {
	for i, hook := range c.Notifications.Webhooks {
		if !hook.Provider.Valid() {
			return fmt.Errorf("notifications.webhooks[%d]: unknown provider %q", i, string(hook.Provider))
		}
	}
	return nil
}
