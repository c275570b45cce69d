package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"courier/internal/config"
	"courier/internal/daemon"
	"courier/internal/ipc"
	"courier/internal/logging"
	"courier/internal/notify"
)

type cliTestEnv struct {
	store      *config.Store
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	received   *atomic.Int64
}

func writeCLIConfig(t *testing.T, path, logDir, webhookURL string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
log_dir = %q
api_bind = ""

[notifications]
webhook_notifications_enabled = true

[[notifications.webhooks]]
enabled = true
provider = "SLACK"
url = %q
`, logDir, webhookURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	var received atomic.Int64
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(webhook.Close)

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	writeCLIConfig(t, configPath, base, webhook.URL)

	cfg, resolved, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	store := config.NewStore(cfg, resolved)
	logger := logging.NewNop()
	dispatcher := notify.NewDispatcher(store, cfg.HTTP, logger, nil)
	d, err := daemon.New(store, dispatcher, logger, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := filepath.Join(base, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	t.Cleanup(func() {
		cancel()
		srv.Close()
		_ = d.Close()
	})

	return &cliTestEnv{
		store:      store,
		daemon:     d,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
		received:   &received,
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got %q", want, output)
	}
}

func TestCLIStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Webhooks:           1 (1 enabled)")

	out, _, err = runCLI(t, []string{"status", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}
	requireContains(t, out, `"webhook_count": 1`)
}

func TestCLIWebhooksCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"webhooks"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("webhooks: %v", err)
	}
	requireContains(t, out, "Slack")

	out, _, err = runCLI(t, []string{"webhooks", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("webhooks --json: %v", err)
	}
	requireContains(t, out, `"provider": "SLACK"`)
}

func TestCLISendCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"send", "Task Complete", "all green"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	requireContains(t, out, "Notification dispatched")
	if env.received.Load() != 1 {
		t.Fatalf("expected 1 webhook delivery, got %d", env.received.Load())
	}

	if _, _, err := runCLI(t, []string{"send", "Only Title"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected argument error for missing message")
	}

	if _, _, err := runCLI(t, []string{"send", "t", "m", "--task-id", "nope"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for malformed task id")
	}
}

func TestCLISendDirect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"send", "--direct", "Build Failed", "exit 1"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("send --direct: %v", err)
	}
	requireContains(t, out, "Notification dispatched to 1 webhook(s)")
	if env.received.Load() != 1 {
		t.Fatalf("expected 1 webhook delivery, got %d", env.received.Load())
	}
}

func TestCLITestNotifyCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"test-notify"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "test notification dispatched")
	if env.received.Load() != 1 {
		t.Fatalf("expected 1 webhook delivery, got %d", env.received.Load())
	}
}

func TestCLIReloadCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"reload"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	requireContains(t, out, "Reloaded")
}
