// backend/utils/text.go
package utils

import "strings"

// Truncate caps a string at max runes, trimming surrounding whitespace first.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
