// Package ssml builds the speech markup that carries a phonetic hint to the
// synthesis service.
package ssml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// DefaultAlphabet is the phoneme alphabet announced to the synthesizer
const DefaultAlphabet = "ipa"

// ErrEmptyPhonetic is returned when there is no transcription to embed
var ErrEmptyPhonetic = errors.New("phonetic string is empty")

// Build wraps display in a phoneme element whose ph attribute carries the
// phonetic transcription. Both values are escaped for XML.
func Build(display, phonetic, alphabet string) (string, error) {
	if err := Validate(phonetic); err != nil {
		return "", err
	}
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}

	var b strings.Builder
	b.WriteString(`<speak><phoneme alphabet="`)
	b.WriteString(escape(alphabet))
	b.WriteString(`" ph="`)
	b.WriteString(escape(phonetic))
	b.WriteString(`">`)
	b.WriteString(escape(display))
	b.WriteString(`</phoneme></speak>`)

	return b.String(), nil
}

// Validate rejects transcriptions that cannot be embedded in markup
func Validate(phonetic string) error {
	if strings.TrimSpace(phonetic) == "" {
		return ErrEmptyPhonetic
	}
	for i, r := range phonetic {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return fmt.Errorf("phonetic string has control character %U at byte %d", r, i)
		}
	}
	return nil
}

func escape(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on writer errors, which bytes.Buffer never returns
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
