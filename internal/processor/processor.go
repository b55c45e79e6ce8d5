package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"

	"codeberg.org/snonux/havara/internal/audio"
	"codeberg.org/snonux/havara/internal/phonetic"
	"codeberg.org/snonux/havara/internal/vowelize"
)

// ErrBatchFailures is returned when some batch entries could not be processed
var ErrBatchFailures = errors.New("batch finished with errors")

// Options controls a processing run
type Options struct {
	Dialect   phonetic.Dialect
	OutputDir string
	Format    string // audio format, used for the clip file extension

	// PhoneticOnly stops after transliteration; no audio is requested
	PhoneticOnly bool
	// FallbackUnvowelized continues with the raw text when vowelization fails
	FallbackUnvowelized bool
	// Show renders every intermediate string as a table
	Show bool

	// RequestsPerSecond paces synthesis calls; zero disables pacing
	RequestsPerSecond float64
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Dialect:           phonetic.Lithuanian,
		OutputDir:         ".",
		Format:            "mp3",
		RequestsPerSecond: 2,
	}
}

// Result holds everything produced for one text
type Result struct {
	Text      string // input as given
	Vowelized string // input after vowelization
	Phonetic  string // Ashkenazi transcription sent to the synthesizer
	Dialect   phonetic.Dialect
	Stages    phonetic.Stages
	Audio     []byte

	// Fallback is set when the vowelizer failed and the raw text was used
	Fallback bool
}

// Processor handles the main text processing logic
type Processor struct {
	vowelizer vowelize.Vowelizer
	provider  audio.Provider
	options   Options
	limiter   *rate.Limiter

	out    io.Writer
	errOut io.Writer
}

// NewProcessor creates a new processor. provider may be nil when
// options.PhoneticOnly is set.
func NewProcessor(v vowelize.Vowelizer, provider audio.Provider, options Options) *Processor {
	if v == nil {
		v = vowelize.Passthrough{}
	}

	p := &Processor{
		vowelizer: v,
		provider:  provider,
		options:   options,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
	if options.RequestsPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), 1)
	}
	return p
}

// SetOutput redirects progress and error output
func (p *Processor) SetOutput(out, errOut io.Writer) {
	p.out = out
	p.errOut = errOut
}

// Convert runs the whole pipeline for text in the configured dialect
func (p *Processor) Convert(ctx context.Context, text string) (*Result, error) {
	return p.ConvertDialect(ctx, text, p.options.Dialect)
}

// ConvertDialect runs the whole pipeline for text in dialect d: vowelize,
// transliterate, then synthesize unless the run is phonetic-only.
func (p *Processor) ConvertDialect(ctx context.Context, text string, d phonetic.Dialect) (*Result, error) {
	if err := audio.ValidateHebrewText(text); err != nil {
		return nil, fmt.Errorf("invalid text '%s': %w", text, err)
	}

	result := &Result{Text: text, Dialect: d}

	fmt.Fprintf(p.out, "  Vowelizing (%s)...\n", p.vowelizer.Name())
	vowelized, err := p.vowelizer.Vowelize(ctx, text)
	if err != nil {
		if !p.options.FallbackUnvowelized || ctx.Err() != nil {
			return nil, fmt.Errorf("vowelization failed: %w", err)
		}
		fmt.Fprintf(p.out, "  Warning: vowelization failed, continuing with unvowelized text: %v\n", err)
		vowelized = text
		result.Fallback = true
	}
	result.Vowelized = vowelized

	result.Stages = phonetic.Trace(vowelized, d)
	result.Phonetic = result.Stages.Final
	fmt.Fprintf(p.out, "  Phonetic (%s): %s\n", d, result.Phonetic)

	if p.options.PhoneticOnly {
		return result, nil
	}
	if p.provider == nil {
		return nil, fmt.Errorf("no audio provider configured")
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(p.out, "  Generating audio (%s)...\n", p.provider.Name())
	data, err := p.provider.Synthesize(ctx, &audio.Request{
		DisplayText: text,
		Phonetic:    result.Phonetic,
	})
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}
	result.Audio = data

	return result, nil
}

// ProcessSingle processes one text from the command line
func (p *Processor) ProcessSingle(ctx context.Context, text string) (*Result, error) {
	if err := audio.ValidateHebrewText(text); err != nil {
		return nil, fmt.Errorf("invalid text '%s': %w", text, err)
	}

	fmt.Fprintf(p.out, "\nProcessing: %s\n", text)
	return p.process(ctx, text, p.options.Dialect)
}

func (p *Processor) process(ctx context.Context, text string, d phonetic.Dialect) (*Result, error) {
	result, err := p.ConvertDialect(ctx, text, d)
	if err != nil {
		return nil, err
	}

	if p.options.Show {
		if err := RenderStages(p.out, result); err != nil {
			fmt.Fprintf(p.out, "  Warning: failed to render stages: %v\n", err)
		}
	}

	if p.options.PhoneticOnly {
		return result, nil
	}

	path, err := p.saveClip(result)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "  Saved audio: %s\n", path)

	return result, nil
}
