package config

import (
	"errors"
	"sync"
)

// Store holds the current configuration behind a reader/writer lock.
//
// Readers obtain immutable snapshots and never observe a partially applied
// reload. The lock is held only long enough to copy the data out; callers
// perform any I/O after the snapshot is taken.
type Store struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// NewStore wraps an already loaded configuration. path records where the
// config was resolved from so Reload can re-read the same file.
func NewStore(cfg *Config, path string) *Store {
	return &Store{cfg: cfg, path: path}
}

// Current returns the active configuration. The returned pointer must be
// treated as read-only; it is shared with other readers.
func (s *Store) Current() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Path returns the resolved configuration file path.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// NotificationSettings returns a snapshot of the notification settings with
// the webhook list cloned, so dispatch code can iterate it after the lock is
// released without racing a concurrent reload.
func (s *Store) NotificationSettings() Notifications {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := Notifications{
		WebhookNotificationsEnabled: s.cfg.Notifications.WebhookNotificationsEnabled,
	}
	if len(s.cfg.Notifications.Webhooks) > 0 {
		snapshot.Webhooks = make([]Webhook, len(s.cfg.Notifications.Webhooks))
		copy(snapshot.Webhooks, s.cfg.Notifications.Webhooks)
	}
	return snapshot
}

// Replace swaps in a new configuration.
func (s *Store) Replace(cfg *Config) error {
	if cfg == nil {
		return errors.New("replace config: nil config")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// Reload re-reads the configuration file the store was created from and swaps
// it in atomically. On error the previous configuration stays active.
func (s *Store) Reload() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()

	cfg, resolved, _, err := Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.path = resolved
	return nil
}
