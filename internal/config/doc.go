// Package config loads, normalizes, and validates Courier configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// COURIER_API_TOKEN. The Config type centralizes every knob the daemon and CLI
// need, including the ordered webhook endpoint list that drives notification
// fan-out.
//
// The Store type wraps a Config behind a reader/writer lock so the daemon can
// swap configuration on reload while dispatch code reads consistent snapshots.
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical provider tags, and clear validation errors.
package config
