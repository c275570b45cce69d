// Package notify translates task lifecycle events into provider-specific
// webhook payloads and fans them out over HTTP.
//
// The Dispatcher reads a snapshot of the configured webhook endpoints, formats
// one payload per enabled destination (Slack blocks, Discord embeds, Pushover,
// Telegram, or a flat generic JSON shape), and posts each independently.
// Failures are contained per webhook: a formatting or transport error is
// logged as a warning and never propagates to the caller or affects sibling
// destinations. There are no retries, no queueing, and no delivery guarantees.
package notify
