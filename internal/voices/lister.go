package voices

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"codeberg.org/snonux/havara/internal/audio"
)

// Lister prints the voices available from a provider
type Lister struct {
	source audio.VoiceLister
	name   string
	out    io.Writer
}

// NewLister creates a new voice lister writing to out
func NewLister(name string, source audio.VoiceLister, out io.Writer) *Lister {
	return &Lister{
		source: source,
		name:   name,
		out:    out,
	}
}

// ListAvailableVoices prints the voices for language, grouped by family
func (l *Lister) ListAvailableVoices(ctx context.Context, language string) error {
	if l.source == nil {
		return fmt.Errorf("%s provider cannot list voices", l.name)
	}

	voices, err := l.source.ListVoices(ctx, language)
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	groups := make(map[string][]audio.Voice)
	for _, v := range voices {
		family := Family(v.Name)
		groups[family] = append(groups[family], v)
	}

	families := make([]string, 0, len(groups))
	for family := range groups {
		families = append(families, family)
	}
	sort.Strings(families)

	fmt.Fprintf(l.out, "Available %s voices for %s:\n", l.name, language)
	if len(voices) == 0 {
		fmt.Fprintln(l.out, "  No voices found")
		return nil
	}

	for _, family := range families {
		group := groups[family]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })

		fmt.Fprintf(l.out, "\n%s:\n", family)
		for _, v := range group {
			fmt.Fprintf(l.out, "  %s%s\n", v.Name, details(v))
		}
	}

	return nil
}

// Family extracts the voice family from a Cloud TTS voice name such as
// "he-IL-Wavenet-B". Names without a family are grouped as "Other".
func Family(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) < 4 {
		return "Other"
	}
	return strings.Join(parts[2:len(parts)-1], "-")
}

func details(v audio.Voice) string {
	var fields []string
	if v.Gender != "" {
		fields = append(fields, v.Gender)
	}
	if v.SampleRate > 0 {
		fields = append(fields, fmt.Sprintf("%d Hz", v.SampleRate))
	}
	if len(fields) == 0 {
		return ""
	}
	return " (" + strings.Join(fields, ", ") + ")"
}
