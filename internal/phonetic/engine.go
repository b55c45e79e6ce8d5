package phonetic

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	tavRune    = '\u05EA'
	dageshRune = '\u05BC'
	maqafRune  = '\u05BE'
	shinDot    = '\u05C1'
	sinDot     = '\u05C2'
	rafe       = '\u05BF'

	// closing sound of a word final kamatz + hey
	wordFinalHey = "uh"
)

// letterModifiers are placed directly after their consonant, in this order
var letterModifiers = []rune{dageshRune, shinDot, sinDot, rafe}

// Stages records the output of every pass of a single conversion
type Stages struct {
	Input      string
	Normalized string
	Softened   string
	Dialect    string
	General    string
	Final      string
}

// Transliterate converts vowelized Hebrew text into the phonetic string for
// the given dialect. Characters not covered by any table pass through
// unchanged.
func Transliterate(text string, d Dialect) string {
	return Trace(text, d).Final
}

// Trace runs the same passes as Transliterate and keeps every intermediate
// result. The pass order is fixed.
func Trace(text string, d Dialect) Stages {
	st := Stages{Input: text}
	st.Normalized = Normalize(text)
	st.Softened = Soften(st.Normalized)
	st.Dialect = DialectTable(d).Apply(st.Softened)
	st.General = GeneralTable.Apply(st.Dialect)
	st.Final = CorrectWordEndings(st.General, d)
	return st
}

// Normalize composes text to NFC and then moves the marks that modify the
// letter itself (dagesh, shin dot, sin dot, rafe) to sit directly after the
// consonant, dagesh first. NFC orders vowel points before them, which would
// hide the dagesh from the one position lookahead of Soften and leave a
// shin or sin dot between a vowel symbol and the next letter.
func Normalize(text string) string {
	runes := []rune(norm.NFC.String(text))
	out := make([]rune, 0, len(runes))

	for i := 0; i < len(runes); {
		r := runes[i]
		out = append(out, r)
		i++
		if isMark(r) {
			continue
		}

		j := i
		for j < len(runes) && isMark(runes[j]) {
			j++
		}
		out = appendCluster(out, runes[i:j])
		i = j
	}

	return string(out)
}

// appendCluster appends the marks of one consonant with the letter
// modifiers first, everything else in its original order
func appendCluster(out, cluster []rune) []rune {
	for _, m := range letterModifiers {
		for _, r := range cluster {
			if r == m {
				out = append(out, r)
			}
		}
	}
	for _, r := range cluster {
		if !isLetterModifier(r) {
			out = append(out, r)
		}
	}
	return out
}

// Soften renders every Tav that is not immediately followed by a dagesh as
// "s". Only the next code point is inspected; a Tav at the end of the
// string counts as undageshed.
func Soften(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		if r == tavRune && !strings.HasPrefix(text[i+utf8.RuneLen(r):], Dagesh) {
			b.WriteString("s")
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// CorrectWordEndings replaces a word final "<kamatz symbol> + Hey" with
// "uh". Words are split on whitespace and maqaf, separators are kept as
// they are, and trailing punctuation or marks do not stop a match. Marks
// left between the symbol and the Hey (meteg, cantillation) are kept after
// the "uh".
func CorrectWordEndings(s string, d Dialect) string {
	trigger := KamatzSymbol(d)
	if trigger == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	start := -1
	for i, r := range s {
		if isSeparator(r) {
			if start >= 0 {
				b.WriteString(correctWord(s[start:i], trigger))
				start = -1
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		b.WriteString(correctWord(s[start:], trigger))
	}

	return b.String()
}

func correctWord(word, trigger string) string {
	core := strings.TrimRightFunc(word, isTrailing)
	if !strings.HasSuffix(core, Hey) {
		return word
	}

	body := core[:len(core)-len(Hey)]
	stem := strings.TrimRightFunc(body, isMark)
	if !strings.HasSuffix(stem, trigger) {
		return word
	}

	marks := body[len(stem):]
	return stem[:len(stem)-len(trigger)] + wordFinalHey + marks + word[len(core):]
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == maqafRune
}

func isTrailing(r rune) bool {
	return unicode.IsPunct(r) || isMark(r)
}

func isLetterModifier(r rune) bool {
	for _, m := range letterModifiers {
		if r == m {
			return true
		}
	}
	return false
}
