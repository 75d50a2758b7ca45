package services

import "strings"

// MessageParser turns free-text chat messages into candidate item names.
type MessageParser struct{}

func NewMessageParser() *MessageParser {
	return &MessageParser{}
}

// ParseItems splits the text on newlines, then on commas within each line.
// Tokens are trimmed and blanks dropped.
func (p *MessageParser) ParseItems(text string) []string {
	var items []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.Contains(line, ",") {
			for _, part := range strings.Split(line, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					items = append(items, trimmed)
				}
			}
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
