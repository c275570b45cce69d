package notify

import (
	"fmt"
	"strconv"
)

// metadataDetails renders the human-readable detail lines shared by the text
// oriented providers (Pushover, Telegram). format receives (label, value).
func metadataDetails(meta Metadata, format string) []string {
	var details []string
	if meta.ProjectName != nil {
		details = append(details, fmt.Sprintf(format, "Project", *meta.ProjectName))
	}
	if meta.TaskID != nil {
		details = append(details, fmt.Sprintf(format, "Task ID", meta.TaskID.String()))
	}
	if meta.ExitCode != nil {
		details = append(details, fmt.Sprintf(format, "Exit Code", formatInt(*meta.ExitCode)))
	}
	return details
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
