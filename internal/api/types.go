package api

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"courier/internal/config"
	"courier/internal/notify"
)

// NotifyRequest is a notification submission from the HTTP API or the CLI.
// Identifier fields carry UUIDs as strings so clients in any language can
// produce them without a UUID library.
type NotifyRequest struct {
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Metadata *RequestMetadata `json:"metadata,omitempty"`
}

// RequestMetadata mirrors notify.Metadata on the wire.
type RequestMetadata struct {
	TaskID      string `json:"task_id,omitempty"`
	TaskTitle   string `json:"task_title,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	ExecutionID string `json:"execution_id,omitempty"`
	ExitCode    *int64 `json:"exit_code,omitempty"`
}

// Validate rejects requests without a title or message.
func (r NotifyRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("notify request: title is required")
	}
	if r.Message == "" {
		return fmt.Errorf("notify request: message is required")
	}
	return nil
}

// NotifyMetadata converts the wire metadata into the dispatcher's form,
// parsing UUID fields and reporting the first malformed one.
func (r NotifyRequest) NotifyMetadata() (notify.Metadata, error) {
	meta := notify.NewMetadata()
	if r.Metadata == nil {
		return meta, nil
	}
	m := r.Metadata
	if m.TaskID != "" {
		id, err := uuid.Parse(m.TaskID)
		if err != nil {
			return meta, fmt.Errorf("notify request: invalid task_id: %w", err)
		}
		meta.TaskID = &id
	}
	if m.TaskTitle != "" {
		title := m.TaskTitle
		meta.TaskTitle = &title
	}
	if m.ProjectID != "" {
		id, err := uuid.Parse(m.ProjectID)
		if err != nil {
			return meta, fmt.Errorf("notify request: invalid project_id: %w", err)
		}
		meta.ProjectID = &id
	}
	if m.ProjectName != "" {
		name := m.ProjectName
		meta.ProjectName = &name
	}
	if m.WorkspaceID != "" {
		id, err := uuid.Parse(m.WorkspaceID)
		if err != nil {
			return meta, fmt.Errorf("notify request: invalid workspace_id: %w", err)
		}
		meta.WorkspaceID = &id
	}
	if m.ExecutionID != "" {
		id, err := uuid.Parse(m.ExecutionID)
		if err != nil {
			return meta, fmt.Errorf("notify request: invalid execution_id: %w", err)
		}
		meta.ExecutionID = &id
	}
	if m.ExitCode != nil {
		meta = meta.WithExitCode(*m.ExitCode)
	}
	return meta, nil
}

// WebhookSummary describes a configured webhook with credentials redacted.
type WebhookSummary struct {
	Provider    string `json:"provider"`
	Enabled     bool   `json:"enabled"`
	URL         string `json:"webhook_url"`
	HasUserKey  bool   `json:"has_user_key"`
	HasAPIToken bool   `json:"has_api_token"`
	HasChatID   bool   `json:"has_chat_id"`
}

// SummarizeWebhooks maps configured webhooks to redacted summaries. The URL
// is truncated at the query string: legacy Pushover configs carry the API
// token as a token= parameter, which must never leave the daemon.
func SummarizeWebhooks(hooks []config.Webhook) []WebhookSummary {
	summaries := make([]WebhookSummary, 0, len(hooks))
	for _, hook := range hooks {
		summaries = append(summaries, WebhookSummary{
			Provider:    hook.Provider.String(),
			Enabled:     hook.Enabled,
			URL:         redactedURL(hook.URL),
			HasUserKey:  hook.PushoverUserKey != "",
			HasAPIToken: hook.PushoverAPIToken != "",
			HasChatID:   hook.TelegramChatID != "",
		})
	}
	return summaries
}

func redactedURL(url string) string {
	if idx := strings.Index(url, "?"); idx >= 0 {
		return url[:idx] + "?..."
	}
	return url
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running              bool   `json:"running"`
	PID                  int    `json:"pid"`
	ConfigPath           string `json:"config_path"`
	LockFilePath         string `json:"lock_file_path"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	WebhookCount         int    `json:"webhook_count"`
	EnabledWebhookCount  int    `json:"enabled_webhook_count"`
	DispatchesTotal      uint64 `json:"dispatches_total"`
}

// ReloadResponse reports the outcome of a configuration reload.
type ReloadResponse struct {
	Reloaded     bool   `json:"reloaded"`
	ConfigPath   string `json:"config_path"`
	WebhookCount int    `json:"webhook_count"`
}

// WebhookListResponse wraps the redacted webhook summaries.
type WebhookListResponse struct {
	NotificationsEnabled bool             `json:"notifications_enabled"`
	Webhooks             []WebhookSummary `json:"webhooks"`
}
