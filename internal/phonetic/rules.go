package phonetic

import "strings"

// Hebrew code points referenced by the rule tables
const (
	Tav         = "\u05EA"
	Hey         = "\u05D4"
	Vav         = "\u05D5"
	Dagesh      = "\u05BC"
	Kamatz      = "\u05B8"
	Cholam      = "\u05B9"
	CholamHaser = "\u05BA" // holam haser for vav
	Tzere       = "\u05B5"
	Patach      = "\u05B7"
	Segol       = "\u05B6"
	Hiriq       = "\u05B4"
	Kubutz      = "\u05BB"
)

// Rule replaces every occurrence of Pattern with Replacement
type Rule struct {
	Pattern     string
	Replacement string
}

// Table is an ordered list of rules. Rules are applied one after another
// in slice order, so a compound pattern must come before any rule whose
// pattern is a substring of it.
type Table []Rule

// Apply runs every rule of the table over s in order
func (t Table) Apply(s string) string {
	for _, r := range t {
		s = strings.ReplaceAll(s, r.Pattern, r.Replacement)
	}
	return s
}

// dialectVowels holds the dialect sensitive symbols
type dialectVowels struct {
	kamatz string
	cholam string
	tzere  string
}

var dialectSymbols = map[Dialect]dialectVowels{
	Lithuanian: {kamatz: "o", cholam: "oy", tzere: "ey"},
	Hasidic:    {kamatz: "u", cholam: "ay", tzere: "ey"},
}

// DialectTable returns the ordered vowel table for d. An unsupported
// dialect yields an empty table.
func DialectTable(d Dialect) Table {
	v, ok := dialectSymbols[d]
	if !ok {
		return nil
	}
	return Table{
		// vav + cholam (full writing) must run before the bare mark
		{Pattern: Vav + Cholam, Replacement: v.cholam},
		{Pattern: Vav + CholamHaser, Replacement: v.cholam},
		{Pattern: Cholam, Replacement: v.cholam},
		{Pattern: Kamatz, Replacement: v.kamatz},
		{Pattern: Tzere, Replacement: v.tzere},
	}
}

// KamatzSymbol returns the symbol the dialect table emits for kamatz
func KamatzSymbol(d Dialect) string {
	return dialectSymbols[d].kamatz
}

// GeneralTable maps the dialect independent marks. The dagesh is dropped
// because Tav hardness has already been resolved by Soften.
var GeneralTable = Table{
	{Pattern: Patach, Replacement: "a"},
	{Pattern: Segol, Replacement: "e"},
	{Pattern: Hiriq, Replacement: "i"},
	{Pattern: Kubutz, Replacement: "u"},
	{Pattern: Dagesh, Replacement: ""},
}
