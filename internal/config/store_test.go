package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"courier/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "courier.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestStoreSnapshotIsIsolatedFromReload(t *testing.T) {
	tempDir := t.TempDir()
	path := writeConfig(t, tempDir, `
[notifications]
webhook_notifications_enabled = true

[[notifications.webhooks]]
enabled = true
provider = "GENERIC"
url = "https://example.com/one"
`)

	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	store := config.NewStore(cfg, resolved)

	snapshot := store.NotificationSettings()
	if len(snapshot.Webhooks) != 1 || snapshot.Webhooks[0].URL != "https://example.com/one" {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	writeConfig(t, tempDir, `
[notifications]
webhook_notifications_enabled = false
`)
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	// The earlier snapshot is unaffected by the swap.
	if !snapshot.WebhookNotificationsEnabled || len(snapshot.Webhooks) != 1 {
		t.Fatalf("snapshot mutated by reload: %+v", snapshot)
	}

	fresh := store.NotificationSettings()
	if fresh.WebhookNotificationsEnabled || len(fresh.Webhooks) != 0 {
		t.Fatalf("expected reloaded settings, got %+v", fresh)
	}
}

func TestStoreReloadKeepsPreviousConfigOnError(t *testing.T) {
	tempDir := t.TempDir()
	path := writeConfig(t, tempDir, `
[notifications]
webhook_notifications_enabled = true
`)

	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	store := config.NewStore(cfg, resolved)

	writeConfig(t, tempDir, `this is not toml = = =`)
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error for malformed file")
	}

	if !store.NotificationSettings().WebhookNotificationsEnabled {
		t.Fatal("expected previous config to remain active after failed reload")
	}
}

func TestStoreReplaceRejectsNil(t *testing.T) {
	cfg := config.Default()
	store := config.NewStore(&cfg, "")
	if err := store.Replace(nil); err == nil {
		t.Fatal("expected error replacing with nil config")
	}
}
