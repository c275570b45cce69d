package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"courier/internal/config"
	"courier/internal/logging"
)

// SettingsSource supplies the current notification settings. Implementations
// must return a snapshot: the dispatcher iterates the webhook list after the
// call returns, so the slice must not be mutated by concurrent reloads.
type SettingsSource interface {
	NotificationSettings() config.Notifications
}

// StaticSettings adapts a fixed Notifications value into a SettingsSource for
// one-shot dispatch outside the daemon.
type StaticSettings config.Notifications

// NotificationSettings returns the wrapped settings unchanged.
func (s StaticSettings) NotificationSettings() config.Notifications {
	return config.Notifications(s)
}

// Recorder receives per-attempt delivery metrics. A nil Recorder disables
// instrumentation.
type Recorder interface {
	RecordDispatch()
	RecordAttempt(provider string, duration time.Duration, err error)
}

// Failure reasons attached to delivery errors, recoverable via FailureReason.
const (
	FailureConfig    = "config"
	FailureTransport = "transport"
	FailureProtocol  = "protocol"
)

type deliveryError struct {
	reason string
	err    error
}

func (e *deliveryError) Error() string { return e.err.Error() }
func (e *deliveryError) Unwrap() error { return e.err }

// FailureReason classifies a delivery error for metrics labels. Errors raised
// before any network I/O (missing credentials, payload encoding, unknown
// provider) count as config failures.
func FailureReason(err error) string {
	var de *deliveryError
	if errors.As(err, &de) {
		return de.reason
	}
	return FailureConfig
}

// Dispatcher fans a notification out to every enabled webhook endpoint.
type Dispatcher struct {
	settings SettingsSource
	client   *http.Client
	logger   *slog.Logger
	recorder Recorder

	userAgent   string
	pushoverURL string
}

// NewDispatcher builds a dispatcher. The HTTP client timeout and user agent
// come from the http config section; recorder may be nil.
func NewDispatcher(settings SettingsSource, httpCfg config.HTTP, logger *slog.Logger, recorder Recorder) *Dispatcher {
	timeout := time.Duration(httpCfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	userAgent := strings.TrimSpace(httpCfg.UserAgent)
	if userAgent == "" {
		userAgent = "Courier-Go/0.1.0"
	}

	return &Dispatcher{
		settings:    settings,
		client:      &http.Client{Timeout: timeout},
		logger:      logging.NewComponentLogger(logger, "dispatcher"),
		recorder:    recorder,
		userAgent:   userAgent,
		pushoverURL: defaultPushoverEndpoint,
	}
}

// Send delivers a notification to every enabled webhook. It is fire and
// forget: the global disable flag short-circuits before any I/O, each
// webhook's failure is logged and swallowed, and dispatch attempts follow the
// configured list order. The settings lock is released before the first
// network call (NotificationSettings returns a snapshot).
func (d *Dispatcher) Send(ctx context.Context, title, message string, meta Metadata) {
	settings := d.settings.NotificationSettings()
	if !settings.WebhookNotificationsEnabled {
		return
	}
	if d.recorder != nil {
		d.recorder.RecordDispatch()
	}

	for _, hook := range settings.Webhooks {
		if !hook.Enabled {
			continue
		}

		start := time.Now()
		var err error
		switch hook.Provider {
		case config.ProviderSlack:
			err = d.sendSlack(ctx, hook, title, message, meta)
		case config.ProviderDiscord:
			err = d.sendDiscord(ctx, hook, title, message, meta)
		case config.ProviderPushover:
			err = d.sendPushover(ctx, hook, title, message, meta)
		case config.ProviderTelegram:
			err = d.sendTelegram(ctx, hook, title, message, meta)
		case config.ProviderGeneric:
			err = d.sendGeneric(ctx, hook, title, message, meta)
		default:
			err = fmt.Errorf("unknown webhook provider %q", string(hook.Provider))
		}

		if d.recorder != nil {
			d.recorder.RecordAttempt(hook.Provider.String(), time.Since(start), err)
		}
		if err != nil {
			d.logger.Warn("webhook notification failed",
				logging.String(logging.FieldProvider, hook.Provider.String()),
				logging.String("reason", FailureReason(err)),
				logging.Error(err))
		}
	}
}

func (d *Dispatcher) sendSlack(ctx context.Context, hook config.Webhook, title, message string, meta Metadata) error {
	return d.postJSON(ctx, hook.URL, slackPayload(title, message, meta))
}

func (d *Dispatcher) sendDiscord(ctx context.Context, hook config.Webhook, title, message string, meta Metadata) error {
	return d.postJSON(ctx, hook.URL, discordPayload(title, message, meta, time.Now()))
}

func (d *Dispatcher) sendPushover(ctx context.Context, hook config.Webhook, title, message string, meta Metadata) error {
	payload, err := pushoverPayload(title, message, meta, hook)
	if err != nil {
		return err
	}
	// Pushover has a single API endpoint; the configured URL only carries the
	// legacy token parameter.
	return d.postJSON(ctx, d.pushoverURL, payload)
}

func (d *Dispatcher) sendTelegram(ctx context.Context, hook config.Webhook, title, message string, meta Metadata) error {
	payload, err := telegramPayload(title, message, meta, hook)
	if err != nil {
		return err
	}
	return d.postJSON(ctx, hook.URL, payload)
}

func (d *Dispatcher) sendGeneric(ctx context.Context, hook config.Webhook, title, message string, meta Metadata) error {
	return d.postJSON(ctx, hook.URL, genericPayload(title, message, meta, time.Now()))
}

func (d *Dispatcher) postJSON(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return &deliveryError{reason: FailureTransport, err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &deliveryError{
			reason: FailureProtocol,
			err:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
