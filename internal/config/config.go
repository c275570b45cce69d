package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory, bind address, and socket configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
	Socket   string `toml:"socket"`
}

// HTTP contains settings for the outbound webhook HTTP client.
type HTTP struct {
	RequestTimeout int    `toml:"request_timeout"`
	UserAgent      string `toml:"user_agent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Webhook describes one configured notification destination.
//
// Pushover entries need a user key and an API token; the token may be given
// explicitly via pushover_api_token or embedded in the URL query string as
// token=... for compatibility with older configs. Telegram entries need a chat
// id. Both are checked at send time, not at load time, so a misconfigured
// entry degrades to a per-webhook warning instead of failing the whole config.
type Webhook struct {
	Enabled          bool     `toml:"enabled" json:"enabled"`
	Provider         Provider `toml:"provider" json:"provider"`
	URL              string   `toml:"url" json:"webhook_url"`
	PushoverUserKey  string   `toml:"pushover_user_key" json:"pushover_user_key,omitempty"`
	PushoverAPIToken string   `toml:"pushover_api_token" json:"pushover_api_token,omitempty"`
	TelegramChatID   string   `toml:"telegram_chat_id" json:"telegram_chat_id,omitempty"`
}

// Notifications contains the webhook notification settings: the global enable
// flag plus the ordered destination list.
type Notifications struct {
	WebhookNotificationsEnabled bool      `toml:"webhook_notifications_enabled"`
	Webhooks                    []Webhook `toml:"webhooks"`
}

// Config encapsulates all configuration values for Courier.
//
// Configuration sections by subsystem:
//   - Paths: log directory, HTTP API bind address/token, IPC socket
//   - HTTP: outbound webhook client settings
//   - Notifications: global enable flag and webhook endpoint list
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	HTTP          HTTP          `toml:"http"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/courier/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// ResolveConfigPath resolves the config file the daemon and CLI would use for
// the given override (empty means the default search order) and reports
// whether the file exists.
func ResolveConfigPath(path string) (string, bool, error) {
	return resolveConfigPath(path)
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("courier.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates directories required for daemon operation.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
