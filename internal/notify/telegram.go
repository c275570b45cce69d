package notify

import (
	"fmt"
	"strings"

	"courier/internal/config"
)

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// telegramPayload builds a Telegram sendMessage body with HTML formatting: a
// bold title, the message, and bold-labeled metadata detail lines.
func telegramPayload(title, message string, meta Metadata, hook config.Webhook) (telegramMessage, error) {
	if hook.TelegramChatID == "" {
		return telegramMessage{}, fmt.Errorf("telegram chat ID not configured")
	}

	text := fmt.Sprintf("<b>%s</b>\n\n%s", title, message)
	if details := metadataDetails(meta, "<b>%s:</b> %s"); len(details) > 0 {
		text += "\n\n" + strings.Join(details, "\n")
	}

	return telegramMessage{
		ChatID:    hook.TelegramChatID,
		Text:      text,
		ParseMode: "HTML",
	}, nil
}
