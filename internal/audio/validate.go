package audio

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrEmptyText is returned for blank input
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrNoHebrew is returned when the input has no Hebrew letters
	ErrNoHebrew = errors.New("text must contain Hebrew characters")
)

// ValidateHebrewText validates that the input text contains Hebrew script
func ValidateHebrewText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	for _, r := range text {
		if unicode.In(r, unicode.Hebrew) {
			return nil
		}
	}

	return ErrNoHebrew
}
