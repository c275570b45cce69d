package notify

import "fmt"

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

// slackPayload builds a Slack blocks document: a plain-text header, a mrkdwn
// section, and a trailing context block only when metadata contributes at
// least one element.
func slackPayload(title, message string, meta Metadata) slackMessage {
	blocks := []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: title}},
		{Type: "section", Text: &slackText{Type: "mrkdwn", Text: message}},
	}

	var elements []slackText
	if meta.ProjectName != nil {
		elements = append(elements, slackText{Type: "mrkdwn", Text: fmt.Sprintf("*Project:* %s", *meta.ProjectName)})
	}
	if meta.TaskID != nil {
		elements = append(elements, slackText{Type: "mrkdwn", Text: fmt.Sprintf("*Task ID:* %s", meta.TaskID)})
	}
	if meta.ExitCode != nil {
		elements = append(elements, slackText{Type: "mrkdwn", Text: fmt.Sprintf("*Exit Code:* %d", *meta.ExitCode)})
	}
	if len(elements) > 0 {
		blocks = append(blocks, slackBlock{Type: "context", Elements: elements})
	}

	return slackMessage{Blocks: blocks}
}
