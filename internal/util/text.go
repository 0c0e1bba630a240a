package util

import "strings"

// NormalizeText drops invalid UTF-8 and NUL bytes, turns non-breaking spaces
// into plain ones and collapses whitespace runs.
func NormalizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	sanitized = strings.ReplaceAll(sanitized, "\x00", "")
	sanitized = strings.ReplaceAll(sanitized, "\u00a0", " ")
	return strings.Join(strings.Fields(sanitized), " ")
}
