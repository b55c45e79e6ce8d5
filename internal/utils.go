package internal

import (
	"strings"
	"unicode"
)

// maxFilenameRunes bounds the readable part of generated file names
const maxFilenameRunes = 40

// SanitizeFilename creates a safe filename from a string. Niqqud and other
// combining marks are dropped so the name carries the bare letters, runs of
// anything else collapse to a single underscore.
func SanitizeFilename(s string) string {
	var b strings.Builder
	count := 0
	lastUnderscore := false

	for _, r := range s {
		if count >= maxFilenameRunes {
			break
		}
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if lastUnderscore {
				continue
			}
			b.WriteRune('_')
			lastUnderscore = true
		}
		count++
	}

	result := strings.Trim(b.String(), "_")
	if result == "" {
		return "clip"
	}
	return result
}
