// Package batch reads line-oriented batch files of Hebrew texts.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/havara/internal/phonetic"
)

// Entry is one text read from a batch file
type Entry struct {
	Line int // 1-based line number in the source file
	Text string

	// Dialect overrides the run's dialect when HasDialect is set
	Dialect    phonetic.Dialect
	HasDialect bool
}

// ReadBatchFile reads texts from a file, one per line.
// Supports formats:
// - Text only: "בָּרוּךְ אַתָּה" (uses the dialect given on the command line)
// - With dialect: "hasidic | בָּרוּךְ אַתָּה"
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		if entry.Text == "" {
			continue
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

func parseLine(line string) (Entry, error) {
	prefix, text, found := strings.Cut(line, "|")
	if !found {
		return Entry{Text: line}, nil
	}

	dialect, err := phonetic.ParseDialect(strings.TrimSpace(prefix))
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Text:       strings.TrimSpace(text),
		Dialect:    dialect,
		HasDialect: true,
	}, nil
}
