package ipc_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"courier/internal/config"
	"courier/internal/daemon"
	"courier/internal/ipc"
	"courier/internal/logging"
	"courier/internal/notify"
)

func writeTestConfig(t *testing.T, dir, webhookURL string) string {
	t.Helper()
	content := fmt.Sprintf(`[paths]
log_dir = %q

[notifications]
webhook_notifications_enabled = true

[[notifications.webhooks]]
enabled = true
provider = "GENERIC"
url = %q
`, dir, webhookURL)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func newTestServer(t *testing.T, webhookURL string) (*ipc.Client, *config.Store) {
	t.Helper()
	dir := t.TempDir()
	path := writeTestConfig(t, dir, webhookURL)
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Paths.APIBind = ""

	store := config.NewStore(cfg, resolved)
	logger := logging.NewNop()
	dispatcher := notify.NewDispatcher(store, cfg.HTTP, logger, nil)
	d, err := daemon.New(store, dispatcher, logger, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socketPath := filepath.Join(dir, "courier.sock")
	server, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	t.Cleanup(server.Close)
	server.Serve()

	client, err := ipc.Dial(socketPath)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, store
}

func TestIPCStatusAndWebhooks(t *testing.T) {
	client, _ := newTestServer(t, "https://example.com/hook")

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.WebhookCount != 1 || status.EnabledWebhookCount != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}

	hooks, err := client.Webhooks()
	if err != nil {
		t.Fatalf("Webhooks: %v", err)
	}
	if len(hooks.Webhooks) != 1 || hooks.Webhooks[0].Provider != "GENERIC" {
		t.Fatalf("unexpected webhooks: %+v", hooks.Webhooks)
	}
}

func TestIPCNotifyDispatches(t *testing.T) {
	var received atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, _ := newTestServer(t, server.URL)

	resp, err := client.Notify(ipc.NotifyRequest{Title: "Task Complete", Message: "done"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if !resp.Accepted {
		t.Fatal("expected notification to be accepted")
	}
	if received.Load() != 1 {
		t.Fatalf("expected 1 webhook delivery, got %d", received.Load())
	}

	if _, err := client.Notify(ipc.NotifyRequest{Message: "no title"}); err == nil {
		t.Fatal("expected validation error for missing title")
	}
}

func TestIPCTestNotification(t *testing.T) {
	var received atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, _ := newTestServer(t, server.URL)

	resp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if !resp.Sent {
		t.Fatalf("expected test notification to send: %q", resp.Message)
	}
	if received.Load() != 1 {
		t.Fatalf("expected 1 webhook delivery, got %d", received.Load())
	}
}

func TestIPCReloadPicksUpChanges(t *testing.T) {
	client, store := newTestServer(t, "https://example.com/hook")

	updated := fmt.Sprintf(`[paths]
log_dir = %q

[notifications]
webhook_notifications_enabled = false
`, filepath.Dir(store.Path()))
	if err := os.WriteFile(store.Path(), []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	resp, err := client.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !resp.Reloaded || resp.WebhookCount != 0 {
		t.Fatalf("unexpected reload response: %+v", resp)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.NotificationsEnabled {
		t.Fatal("expected notifications disabled after reload")
	}
}
