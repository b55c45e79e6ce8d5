package processor

import (
	"context"
	"fmt"

	"codeberg.org/snonux/havara/internal/audio"
	"codeberg.org/snonux/havara/internal/batch"
)

// Summary counts the outcome of a batch run
type Summary struct {
	Total     int
	Processed int
	Skipped   int
	Errors    int
}

// ProcessBatch processes every text in a batch file. Entries whose clip
// already exists are skipped; per-entry failures are reported and counted
// without stopping the run.
func (p *Processor) ProcessBatch(ctx context.Context, filename string) (*Summary, error) {
	entries, err := batch.ReadBatchFile(filename)
	if err != nil {
		return nil, err
	}

	// Validate before spending any requests
	for _, entry := range entries {
		if err := audio.ValidateHebrewText(entry.Text); err != nil {
			return nil, fmt.Errorf("invalid text on line %d '%s': %w", entry.Line, entry.Text, err)
		}
	}

	summary := &Summary{Total: len(entries)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			p.printSummary(summary)
			return summary, err
		}

		d := p.options.Dialect
		if entry.HasDialect {
			d = entry.Dialect
		}

		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Text)

		if !p.options.PhoneticOnly {
			if path, err := p.ClipPath(entry.Text, d); err == nil && clipExists(path) {
				fmt.Fprintf(p.out, "  ✓ Skipping '%s' - already processed in %s\n", entry.Text, path)
				summary.Skipped++
				continue
			}
		}

		if _, err := p.process(ctx, entry.Text, d); err != nil {
			fmt.Fprintf(p.errOut, "Error processing '%s': %v\n", entry.Text, err)
			summary.Errors++
			continue
		}
		summary.Processed++
	}

	p.printSummary(summary)

	if summary.Errors > 0 {
		return summary, fmt.Errorf("%w: %d of %d entries failed", ErrBatchFailures, summary.Errors, summary.Total)
	}
	return summary, nil
}

func (p *Processor) printSummary(s *Summary) {
	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total texts: %d\n", s.Total)
	fmt.Fprintf(p.out, "Processed: %d\n", s.Processed)
	fmt.Fprintf(p.out, "Skipped (already complete): %d\n", s.Skipped)
	if s.Errors > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", s.Errors)
	}
	fmt.Fprintf(p.out, "================================\n")
}
