package notify

import (
	"fmt"
	"net/url"
	"strings"

	"courier/internal/config"
)

// pushoverEndpoint is where Pushover messages are posted, regardless of the
// URL stored in the webhook entry.
const defaultPushoverEndpoint = "https://api.pushover.net/1/messages.json"

type pushoverMessage struct {
	Token   string `json:"token"`
	User    string `json:"user"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// pushoverToken resolves the API token for a Pushover webhook. An explicit
// pushover_api_token wins; otherwise the token= query parameter of the stored
// URL is used, which older configs relied on.
func pushoverToken(hook config.Webhook) (string, error) {
	if hook.PushoverAPIToken != "" {
		return hook.PushoverAPIToken, nil
	}
	parsed, err := url.Parse(hook.URL)
	if err == nil {
		if token := strings.TrimSpace(parsed.Query().Get("token")); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("pushover API token not configured: set pushover_api_token or a token= parameter on the URL")
}

// pushoverPayload builds the Pushover message body. Metadata details are
// appended to the message as plain "Label: value" lines.
func pushoverPayload(title, message string, meta Metadata, hook config.Webhook) (pushoverMessage, error) {
	if hook.PushoverUserKey == "" {
		return pushoverMessage{}, fmt.Errorf("pushover user key not configured")
	}
	token, err := pushoverToken(hook)
	if err != nil {
		return pushoverMessage{}, err
	}

	full := message
	if details := metadataDetails(meta, "%s: %s"); len(details) > 0 {
		full += "\n\n" + strings.Join(details, "\n")
	}

	return pushoverMessage{
		Token:   token,
		User:    hook.PushoverUserKey,
		Title:   title,
		Message: full,
	}, nil
}
