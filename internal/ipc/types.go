package ipc

import "courier/internal/api"

// NotifyRequest carries a notification submission over the socket. It reuses
// the HTTP API wire shape so both surfaces accept identical payloads.
type NotifyRequest = api.NotifyRequest

// NotifyResponse acknowledges a dispatched notification.
type NotifyResponse struct {
	Accepted bool `json:"accepted"`
}

// TestNotificationRequest triggers a canned notification.
type TestNotificationRequest struct{}

// TestNotificationResponse reports whether the test notification went out.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// ReloadRequest asks the daemon to re-read its configuration file.
type ReloadRequest struct{}

// ReloadResponse reports the reload outcome.
type ReloadResponse = api.ReloadResponse

// WebhooksRequest lists the configured webhooks.
type WebhooksRequest struct{}

// WebhooksResponse carries the redacted webhook summaries.
type WebhooksResponse = api.WebhookListResponse

// StatusRequest retrieves daemon runtime information.
type StatusRequest struct{}

// StatusResponse carries daemon runtime information.
type StatusResponse = api.DaemonStatus
