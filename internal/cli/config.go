package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/havara/internal/audio"
	"codeberg.org/snonux/havara/internal/phonetic"
	"codeberg.org/snonux/havara/internal/processor"
	"codeberg.org/snonux/havara/internal/vowelize"
)

// AudioConfig builds the synthesis configuration. --api-key wins over the
// key found in the environment or config file.
func (f *Flags) AudioConfig() (*audio.Config, error) {
	config := audio.DefaultProviderConfig()
	config.Provider = f.Provider
	config.Format = f.Format
	config.LanguageCode = f.Language
	config.Voice = f.Voice
	config.SpeakingRate = f.Rate
	config.Pitch = f.Pitch
	config.OpenAIModel = f.OpenAIModel
	config.OpenAIVoice = f.OpenAIVoice
	if f.OpenAIInstruction != "" {
		config.OpenAIInstruction = f.OpenAIInstruction
	}

	config.GoogleKey = GetGoogleKey()
	config.OpenAIKey = GetOpenAIKey()
	if f.APIKey != "" {
		switch f.Provider {
		case "openai":
			config.OpenAIKey = f.APIKey
		default:
			config.GoogleKey = f.APIKey
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// VowelizerConfig builds the vowelizer configuration
func (f *Flags) VowelizerConfig() (*vowelize.Config, error) {
	genre, err := vowelize.ParseGenre(f.Genre)
	if err != nil {
		return nil, err
	}
	completeness, err := vowelize.ParseCompleteness(f.Completeness)
	if err != nil {
		return nil, err
	}

	config := vowelize.DefaultConfig()
	config.Provider = f.Vowelizer
	config.Options = vowelize.Options{Genre: genre, Completeness: completeness}
	config.GeminiKey = GetGeminiKey()
	if f.GeminiModel != "" {
		config.GeminiModel = f.GeminiModel
	}
	if f.DictaEndpoint != "" {
		config.Endpoint = f.DictaEndpoint
	}

	if f.Cache {
		path, err := DefaultCachePath()
		if err != nil {
			return nil, err
		}
		config.CachePath = path
	}

	return config, nil
}

// ProcessorOptions builds the options for a processing run
func (f *Flags) ProcessorOptions() (processor.Options, error) {
	dialect, err := phonetic.ParseDialect(f.Dialect)
	if err != nil {
		return processor.Options{}, err
	}
	if f.RequestsPerSecond < 0 {
		return processor.Options{}, fmt.Errorf("requests per second must not be negative")
	}

	options := processor.DefaultOptions()
	options.Dialect = dialect
	options.OutputDir = f.OutputDir
	options.Format = f.Format
	options.PhoneticOnly = f.PhoneticOnly
	options.FallbackUnvowelized = f.FallbackRaw
	options.Show = f.Show
	options.RequestsPerSecond = f.RequestsPerSecond
	return options, nil
}

// DefaultCachePath returns the location of the vowelization cache
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate cache directory: %w", err)
	}
	dir = filepath.Join(dir, "havara")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return filepath.Join(dir, "vowelized.db"), nil
}
