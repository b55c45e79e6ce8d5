package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingKey is returned when a provider has no credential
	ErrMissingKey = errors.New("API key is required")
	// ErrUnknownProvider is returned for an unsupported provider name
	ErrUnknownProvider = errors.New("unknown audio provider")
	// ErrAuth is returned when the service rejects the credential
	ErrAuth = errors.New("authentication failed")
	// ErrQuota is returned when the service refuses because of quota
	ErrQuota = errors.New("quota exceeded")
	// ErrMalformed is returned when the service rejects the request
	ErrMalformed = errors.New("malformed request")
	// ErrNoAudio is returned when the service produced no audio
	ErrNoAudio = errors.New("no audio data received")
)

// Request is a single synthesis request. DisplayText is what the listener
// would read, Phonetic is the transcription that tells the synthesizer how
// to pronounce it.
type Request struct {
	DisplayText string
	Phonetic    string
}

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize returns encoded audio for the request
	Synthesize(ctx context.Context, req *Request) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string // Provider name: "google" or "openai"
	Format   string // Output format: "mp3", "wav" or "ogg"

	// Google Cloud TTS settings
	GoogleKey    string
	LanguageCode string  // e.g. "he-IL"
	Voice        string  // e.g. "he-IL-Standard-A"
	Pitch        float64 // semitones, -20 to 20
	SpeakingRate float64 // 0.25 to 4.0
	Alphabet     string  // phoneme alphabet announced in the markup

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string
	OpenAIInstruction string // Voice instructions for gpt-4o-mini-tts model
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:     "google",
		Format:       "mp3",
		LanguageCode: "he-IL",
		Voice:        "he-IL-Standard-A",
		Pitch:        -1.5,
		SpeakingRate: 1.0,
		Alphabet:     "ipa",

		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "onyx",
		OpenAIInstruction: "You are reading a romanized transcription of Ashkenazi Hebrew prayer. Pronounce every syllable exactly as written, slowly and clearly, in a traditional synagogue reading style.",
	}
}

// Validate checks the ranges of the numeric settings
func (c *Config) Validate() error {
	if c.SpeakingRate < 0.25 || c.SpeakingRate > 4.0 {
		return fmt.Errorf("speaking rate %.2f out of range (0.25 to 4.0)", c.SpeakingRate)
	}
	if c.Pitch < -20 || c.Pitch > 20 {
		return fmt.Errorf("pitch %.2f out of range (-20 to 20)", c.Pitch)
	}
	if _, err := OutputExtension(c.Format); err != nil {
		return err
	}
	return nil
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case "google", "":
		return NewGoogleProvider(ctx, config)
	case "openai":
		return NewOpenAIProvider(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Provider)
	}
}

// OutputExtension returns the file extension for an output format
func OutputExtension(format string) (string, error) {
	switch strings.ToLower(format) {
	case "mp3", "":
		return ".mp3", nil
	case "wav", "linear16":
		return ".wav", nil
	case "ogg", "opus":
		return ".ogg", nil
	default:
		return "", fmt.Errorf("unsupported audio format: %s (use mp3, wav or ogg)", format)
	}
}

// WriteFile writes audio data to path, creating parent directories
func WriteFile(path string, data []byte) error {
	if len(data) == 0 {
		return ErrNoAudio
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

// Close releases resources held by p, if any
func Close(p Provider) error {
	if c, ok := p.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
