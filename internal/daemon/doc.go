// Package daemon coordinates the long-running Courier process and its system
// integration points.
//
// It wires the configuration store, the webhook dispatcher, and the HTTP API
// into a single lifecycle with flock-based locking to prevent multiple
// instances. The daemon exposes the operations the IPC and HTTP surfaces
// share: submitting notifications, sending a test notification, reloading the
// configuration, and reporting status.
//
// Keep orchestration logic here: payload formatting and delivery live in the
// notify package while the daemon focuses on startup, shutdown, and high
// level coordination.
package daemon
