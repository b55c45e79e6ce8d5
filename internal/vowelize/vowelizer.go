package vowelize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	// ErrUnknownProvider is returned for an unsupported provider name
	ErrUnknownProvider = errors.New("unknown vowelizer provider")
	// ErrEmptyResponse is returned when the service produced no text
	ErrEmptyResponse = errors.New("vowelizer returned no text")
)

// Vowelizer returns text with full niqqud attached to every letter
type Vowelizer interface {
	Vowelize(ctx context.Context, text string) (string, error)
	Name() string
}

// Genre selects the register the diacritizer should assume
type Genre string

const (
	GenreModern   Genre = "modern"
	GenreRabbinic Genre = "rabbinic"
	GenrePoetry   Genre = "poetry"
)

// ParseGenre validates a genre name
func ParseGenre(s string) (Genre, error) {
	switch g := Genre(strings.ToLower(strings.TrimSpace(s))); g {
	case GenreModern, GenreRabbinic, GenrePoetry:
		return g, nil
	default:
		return "", fmt.Errorf("unknown genre: %q (use modern, rabbinic or poetry)", s)
	}
}

// Completeness selects how many marks the diacritizer adds
type Completeness string

const (
	CompletenessFull    Completeness = "full"
	CompletenessPartial Completeness = "partial"
)

// ParseCompleteness validates a completeness name
func ParseCompleteness(s string) (Completeness, error) {
	switch c := Completeness(strings.ToLower(strings.TrimSpace(s))); c {
	case CompletenessFull, CompletenessPartial:
		return c, nil
	default:
		return "", fmt.Errorf("unknown completeness: %q (use full or partial)", s)
	}
}

// Options are passed with every vowelization request
type Options struct {
	Genre        Genre
	Completeness Completeness
}

// Config holds the settings for building a Vowelizer
type Config struct {
	Provider string // "dicta", "gemini" or "none"
	Options  Options

	// Dicta settings
	Endpoint string
	Timeout  time.Duration

	// Gemini settings
	GeminiKey   string
	GeminiModel string

	// Consecutive failures before the circuit opens, 0 disables the breaker
	BreakerFailures uint32
	BreakerCooldown time.Duration

	// Path of the sqlite cache, empty disables caching
	CachePath string
}

// DefaultConfig returns the default vowelizer configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: "dicta",
		Options: Options{
			Genre:        GenreRabbinic,
			Completeness: CompletenessFull,
		},
		Endpoint:        DefaultDictaEndpoint,
		Timeout:         30 * time.Second,
		GeminiModel:     DefaultGeminiModel,
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

// New builds the configured Vowelizer, wrapped in a circuit breaker and a
// cache when those are enabled. Use Close to release the cache.
func New(ctx context.Context, config *Config) (Vowelizer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var v Vowelizer
	switch config.Provider {
	case "dicta", "":
		v = NewDictaClient(config.Endpoint, config.Options, config.Timeout)
	case "gemini":
		g, err := NewGeminiVowelizer(ctx, config.GeminiKey, config.GeminiModel)
		if err != nil {
			return nil, err
		}
		v = g
	case "none":
		return Passthrough{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Provider)
	}

	if config.BreakerFailures > 0 {
		v = NewBreaker(v, config.BreakerFailures, config.BreakerCooldown)
	}

	if config.CachePath != "" {
		c, err := OpenCache(config.CachePath, v, config.Options)
		if err != nil {
			return nil, err
		}
		v = c
	}

	return v, nil
}

// Close releases resources held by v, if any
func Close(v Vowelizer) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Passthrough returns its input unchanged, for text that is already
// vowelized
type Passthrough struct{}

// Vowelize returns text as is
func (Passthrough) Vowelize(_ context.Context, text string) (string, error) {
	return text, nil
}

// Name returns the provider name
func (Passthrough) Name() string {
	return "none"
}
