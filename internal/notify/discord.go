package notify

import (
	"time"
)

// discordEmbedColor is the fixed accent color applied to every embed.
const discordEmbedColor = 5814783

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Timestamp   string         `json:"timestamp"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// discordPayload builds a single-embed Discord document. The fields array is
// attached only when metadata contributes at least one entry.
func discordPayload(title, message string, meta Metadata, now time.Time) discordMessage {
	embed := discordEmbed{
		Title:       title,
		Description: message,
		Timestamp:   now.UTC().Format(time.RFC3339),
		Color:       discordEmbedColor,
	}

	if meta.ProjectName != nil {
		embed.Fields = append(embed.Fields, discordField{Name: "Project", Value: *meta.ProjectName, Inline: true})
	}
	if meta.TaskID != nil {
		embed.Fields = append(embed.Fields, discordField{Name: "Task ID", Value: meta.TaskID.String(), Inline: true})
	}
	if meta.ProjectID != nil {
		embed.Fields = append(embed.Fields, discordField{Name: "Project ID", Value: meta.ProjectID.String(), Inline: true})
	}
	if meta.ExitCode != nil {
		embed.Fields = append(embed.Fields, discordField{Name: "Exit Code", Value: formatInt(*meta.ExitCode), Inline: true})
	}

	return discordMessage{Embeds: []discordEmbed{embed}}
}
