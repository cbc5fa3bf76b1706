// Package utils holds small pure helpers shared by the chat session and the views.
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// titleMaxRunes is the longest title kept before truncation.
const titleMaxRunes = 30

// titleEllipsis is appended to truncated titles.
const titleEllipsis = "..."

// GenerateID returns a short opaque identifier for conversations and messages.
func GenerateID() string {
	return shortuuid.New()
}

// GenerateTitle derives a conversation title from its first message.
// Text longer than 30 runes is cut to 30 runes and suffixed with "...".
func GenerateTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= titleMaxRunes {
		return firstMessage
	}
	return string(runes[:titleMaxRunes]) + titleEllipsis
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FormatRelative renders t relative to now for list entries ("just now", "5m ago", "3h ago").
// Anything older than a day is shown as a short date.
func FormatRelative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return t.Format("Jan 2")
	}
}

// Plural picks the singular or plural form for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
