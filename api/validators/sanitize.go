package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the value at maxLen
// runes. Free-text fields carry accented pt-BR input, so the cut is rune
// aware rather than byte aware.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
