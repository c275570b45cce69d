package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeHTTP()
	c.normalizeWebhooks()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv("COURIER_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	c.Paths.Socket = strings.TrimSpace(c.Paths.Socket)
	if c.Paths.Socket != "" {
		if c.Paths.Socket, err = expandPath(c.Paths.Socket); err != nil {
			return fmt.Errorf("paths.socket: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeHTTP() {
	c.HTTP.UserAgent = strings.TrimSpace(c.HTTP.UserAgent)
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaultUserAgent
	}
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeWebhooks() {
	for i := range c.Notifications.Webhooks {
		hook := &c.Notifications.Webhooks[i]
		hook.URL = strings.TrimSpace(hook.URL)
		hook.PushoverUserKey = strings.TrimSpace(hook.PushoverUserKey)
		hook.PushoverAPIToken = strings.TrimSpace(hook.PushoverAPIToken)
		hook.TelegramChatID = strings.TrimSpace(hook.TelegramChatID)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
