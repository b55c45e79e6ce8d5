package processor

import (
	"io"

	"github.com/pterm/pterm"
)

// RenderStages writes a table of every intermediate string of result
func RenderStages(w io.Writer, result *Result) error {
	data := pterm.TableData{
		{"Stage", "Text"},
		{"Input", result.Text},
		{"Vowelized", result.Vowelized},
		{"Tav softened", result.Stages.Softened},
		{"Dialect vowels (" + result.Dialect.String() + ")", result.Stages.Dialect},
		{"General vowels", result.Stages.General},
		{"Phonetic", result.Phonetic},
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(data).
		WithWriter(w).
		Render()
}
