// Package api defines wire-format types and converters for the IPC and HTTP
// API layer. It translates notification requests and daemon state into
// transport-friendly DTOs so clients never couple to internal types.
//
// # Key Types
//
// NotifyRequest: a notification submission with optional task metadata.
//
// WebhookSummary: a configured webhook with credentials redacted.
//
// DaemonStatus: aggregated runtime information for status commands.
//
// # Converters
//
// NotifyRequest.Metadata() parses the wire metadata (string UUIDs, optional
// fields) into a notify.Metadata, rejecting malformed identifiers.
//
// SummarizeWebhooks maps configured webhooks to redacted summaries.
//
// # Design Notes
//
// DTOs use snake_case JSON tags matching the payloads the dispatcher emits.
// Credentials never appear in responses; summaries report only whether a
// credential is present.
package api
