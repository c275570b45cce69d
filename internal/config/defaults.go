package config

const (
	defaultLogDir         = "~/.local/share/courier/logs"
	defaultAPIBind        = "127.0.0.1:7519"
	defaultRequestTimeout = 10
	defaultUserAgent      = "Courier-Go/0.1.0"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. Webhook
// notifications start disabled with an empty destination list; callers opt in
// through the config file.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		HTTP: HTTP{
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		Notifications: Notifications{
			WebhookNotificationsEnabled: false,
			Webhooks:                    nil,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
