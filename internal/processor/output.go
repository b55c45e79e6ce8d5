package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/havara/internal"
	"codeberg.org/snonux/havara/internal/audio"
	"codeberg.org/snonux/havara/internal/phonetic"
)

// ClipPath returns where the audio for text in dialect d is written. The
// name depends only on the text and dialect, so reruns find earlier clips.
func (p *Processor) ClipPath(text string, d phonetic.Dialect) (string, error) {
	ext, err := audio.OutputExtension(p.options.Format)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s%s", internal.SanitizeFilename(text), d, ext)
	return filepath.Join(p.options.OutputDir, name), nil
}

// saveClip writes the audio and a transcript next to it
func (p *Processor) saveClip(result *Result) (string, error) {
	path, err := p.ClipPath(result.Text, result.Dialect)
	if err != nil {
		return "", err
	}

	if err := audio.WriteFile(path, result.Audio); err != nil {
		return "", err
	}

	transcript := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
	if err := os.WriteFile(transcript, []byte(formatTranscript(result)), 0644); err != nil {
		fmt.Fprintf(p.out, "  Warning: Failed to save transcript: %v\n", err)
	}

	return path, nil
}

func formatTranscript(result *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "text: %s\n", result.Text)
	fmt.Fprintf(&b, "vowelized: %s\n", result.Vowelized)
	fmt.Fprintf(&b, "dialect: %s\n", result.Dialect)
	fmt.Fprintf(&b, "phonetic: %s\n", result.Phonetic)
	if result.Fallback {
		b.WriteString("note: vowelization failed, transcribed from unvowelized text\n")
	}
	return b.String()
}

func clipExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
