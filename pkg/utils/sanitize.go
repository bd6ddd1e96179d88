package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EscapeSQLWildcards escapes SQL LIKE/ILIKE wildcard characters so user
// input can be embedded in pattern queries.
func EscapeSQLWildcards(input string) string {
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery prepares a search string for safe ILIKE usage and
// wraps it with % for partial matching.
func SanitizeSearchQuery(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > 100 {
		input = input[:100]
	}
	input = EscapeSQLWildcards(input)
	return "%" + input + "%"
}

// SanitizeHTML escapes HTML entities in user-generated content.
func SanitizeHTML(input string) string {
	return html.EscapeString(input)
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// ValidateUsername checks if a display name contains only allowed
// characters (alphanumeric, underscores, hyphens; 3-30 characters).
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// TruncateString truncates a string to at most maxLen bytes without
// splitting a multi-byte rune.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// DefaultAvatarURL derives a deterministic placeholder avatar from the user
// id when no image has been uploaded.
func DefaultAvatarURL(userID string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", userID)
}
