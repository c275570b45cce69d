package daemon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"courier/internal/config"
	"courier/internal/logging"
	"courier/internal/notify"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.LogDir = t.TempDir()
	cfg.HTTP.RequestTimeout = 2
	return cfg
}

func newTestDaemon(t *testing.T, cfg *config.Config) *Daemon {
	t.Helper()
	store := config.NewStore(cfg, filepath.Join(cfg.Paths.LogDir, "config.toml"))
	dispatcher := notify.NewDispatcher(store, cfg.HTTP, logging.NewNop(), nil)
	d, err := New(store, dispatcher, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestDaemonStartEnforcesSingleInstance(t *testing.T) {
	cfg := newTestConfig(t)
	first := newTestDaemon(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first start: %v", err)
	}
	defer first.Stop()

	second := newTestDaemon(t, cfg)
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected second instance to fail lock acquisition")
	}
}

func TestDaemonStatusCountsWebhooks(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Notifications.WebhookNotificationsEnabled = true
	cfg.Notifications.Webhooks = []config.Webhook{
		{Enabled: true, Provider: config.ProviderSlack, URL: "https://example.com/a"},
		{Enabled: false, Provider: config.ProviderDiscord, URL: "https://example.com/b"},
	}
	d := newTestDaemon(t, cfg)

	status := d.Status()
	if status.Running {
		t.Fatal("daemon should not report running before Start")
	}
	if status.WebhookCount != 2 || status.EnabledWebhookCount != 1 {
		t.Fatalf("unexpected webhook counts: %+v", status)
	}
	if !status.NotificationsEnabled {
		t.Fatal("notifications should report enabled")
	}
}

func TestTestNotificationReportsConfigurationProblems(t *testing.T) {
	cfg := newTestConfig(t)
	d := newTestDaemon(t, cfg)

	sent, detail, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if sent {
		t.Fatalf("expected no send while disabled, got %q", detail)
	}

	cfg.Notifications.WebhookNotificationsEnabled = true
	sent, detail, err = d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if sent || detail != "no enabled webhooks configured" {
		t.Fatalf("expected no-webhooks detail, got sent=%v detail=%q", sent, detail)
	}
}

func TestTestNotificationDispatches(t *testing.T) {
	var mu sync.Mutex
	received := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		received++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := newTestConfig(t)
	cfg.Notifications.WebhookNotificationsEnabled = true
	cfg.Notifications.Webhooks = []config.Webhook{
		{Enabled: true, Provider: config.ProviderGeneric, URL: server.URL},
	}
	d := newTestDaemon(t, cfg)

	sent, _, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if !sent {
		t.Fatal("expected test notification to be sent")
	}
	mu.Lock()
	defer mu.Unlock()
	if received != 1 {
		t.Fatalf("expected 1 webhook request, got %d", received)
	}
	if d.Status().DispatchesTotal != 1 {
		t.Fatalf("expected dispatch counter 1, got %d", d.Status().DispatchesTotal)
	}
}
