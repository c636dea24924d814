package services

import (
	"strings"

	"github.com/Perfect-Cube/Reflex/internal/models"
)

// FormatTranscript renders the message log as the sender-labeled text the
// evaluator and analyst roles consume.
func FormatTranscript(msgs []models.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, capitalize(m.Sender)+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
