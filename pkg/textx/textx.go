// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
)

// StripControl removes control characters except tab/newline/CR. It does not
// trim: callers that need the raw length of extracted text (for the
// empty-document diagnostics) must see leading/trailing whitespace intact.
func StripControl(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	return strings.TrimSpace(StripControl(s))
}
