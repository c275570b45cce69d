package notify

import "time"

// genericMessage is the unopinionated JSON shape. Metadata is embedded so its
// keys land flat at the top level; absent fields serialize as explicit nulls,
// giving machine consumers a stable key set.
type genericMessage struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Metadata
}

// genericPayload always succeeds; it has no provider-specific requirements.
func genericPayload(title, message string, meta Metadata, now time.Time) genericMessage {
	return genericMessage{
		Title:     title,
		Message:   message,
		Timestamp: now.UTC().Format(time.RFC3339),
		Metadata:  meta,
	}
}
