package phonetic

import (
	"fmt"
	"strings"
)

// Dialect selects which vowel table is used during transliteration
type Dialect int

const (
	// Lithuanian is the Litvish pronunciation (kamatz as "o")
	Lithuanian Dialect = iota
	// Hasidic is the Hasidic pronunciation (kamatz as "u")
	Hasidic
)

// Dialects lists every supported dialect in a stable order
var Dialects = []Dialect{Lithuanian, Hasidic}

// String returns the canonical lower-case dialect name
func (d Dialect) String() string {
	switch d {
	case Lithuanian:
		return "lithuanian"
	case Hasidic:
		return "hasidic"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// Valid reports whether d is one of the supported dialects
func (d Dialect) Valid() bool {
	return d == Lithuanian || d == Hasidic
}

// ParseDialect converts a user supplied name into a Dialect
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lithuanian", "litvish", "lt":
		return Lithuanian, nil
	case "hasidic", "chasidic", "hs":
		return Hasidic, nil
	default:
		return Lithuanian, fmt.Errorf("unknown dialect: %q (use lithuanian or hasidic)", name)
	}
}
