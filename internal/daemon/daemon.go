package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"courier/internal/api"
	"courier/internal/config"
	"courier/internal/logging"
	"courier/internal/metrics"
	"courier/internal/notify"
)

// Daemon coordinates notification dispatch and enforces single-instance
// execution.
type Daemon struct {
	store      *config.Store
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics

	lockPath string
	lock     *flock.Flock

	api *apiServer

	running    atomic.Bool
	dispatches atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs a daemon with initialized dependencies. The API server bind
// address and token are read once at construction; changing them requires a
// restart, while webhook settings follow the store on reload.
func New(store *config.Store, dispatcher *notify.Dispatcher, logger *slog.Logger, mets *metrics.Metrics) (*Daemon, error) {
	if store == nil || dispatcher == nil || logger == nil {
		return nil, errors.New("daemon requires config store, dispatcher, and logger")
	}

	cfg := store.Current()
	lockPath := filepath.Join(cfg.Paths.LogDir, "courierd.lock")
	d := &Daemon{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    mets,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and launches the HTTP API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another courier daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("courier daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("courier daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Notify dispatches a notification to every enabled webhook. Delivery is fire
// and forget; per-webhook failures are logged by the dispatcher and never
// surface here.
func (d *Daemon) Notify(ctx context.Context, title, message string, meta notify.Metadata) {
	d.dispatches.Add(1)
	d.dispatcher.Send(ctx, title, message, meta)
}

// TestNotification sends a canned notification through the current
// configuration so operators can verify their webhook setup.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	settings := d.store.NotificationSettings()
	if !settings.WebhookNotificationsEnabled {
		return false, "webhook notifications are disabled", nil
	}
	enabled := 0
	for _, hook := range settings.Webhooks {
		if hook.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return false, "no enabled webhooks configured", nil
	}

	d.Notify(ctx, "Courier Test Notification", "If you can read this, webhook delivery is working.", notify.NewMetadata())
	return true, fmt.Sprintf("test notification dispatched to %d webhook(s)", enabled), nil
}

// Reload re-reads the configuration file and swaps it in. On error the
// previous configuration stays active.
func (d *Daemon) Reload() (api.ReloadResponse, error) {
	if err := d.store.Reload(); err != nil {
		d.logger.Warn("config reload failed", logging.Error(err))
		return api.ReloadResponse{ConfigPath: d.store.Path()}, err
	}
	settings := d.store.NotificationSettings()
	d.logger.Info("configuration reloaded",
		logging.String("config", d.store.Path()),
		logging.Int("webhooks", len(settings.Webhooks)))
	return api.ReloadResponse{
		Reloaded:     true,
		ConfigPath:   d.store.Path(),
		WebhookCount: len(settings.Webhooks),
	}, nil
}

// Webhooks returns the configured webhooks with credentials redacted.
func (d *Daemon) Webhooks() api.WebhookListResponse {
	settings := d.store.NotificationSettings()
	return api.WebhookListResponse{
		NotificationsEnabled: settings.WebhookNotificationsEnabled,
		Webhooks:             api.SummarizeWebhooks(settings.Webhooks),
	}
}

// Status returns the current daemon status.
func (d *Daemon) Status() api.DaemonStatus {
	settings := d.store.NotificationSettings()
	enabled := 0
	for _, hook := range settings.Webhooks {
		if hook.Enabled {
			enabled++
		}
	}
	return api.DaemonStatus{
		Running:              d.running.Load(),
		PID:                  os.Getpid(),
		ConfigPath:           d.store.Path(),
		LockFilePath:         d.lockPath,
		NotificationsEnabled: settings.WebhookNotificationsEnabled,
		WebhookCount:         len(settings.Webhooks),
		EnabledWebhookCount:  enabled,
		DispatchesTotal:      d.dispatches.Load(),
	}
}
