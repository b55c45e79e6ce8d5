package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/havara/internal"
)

// flagBindings maps flag names to their config file keys
var flagBindings = map[string]string{
	"output":              "output.directory",
	"dialect":             "transliteration.dialect",
	"provider":            "audio.provider",
	"format":              "audio.format",
	"language":            "audio.language",
	"voice":               "audio.voice",
	"rate":                "audio.rate",
	"pitch":               "audio.pitch",
	"openai-model":        "audio.openai_model",
	"openai-voice":        "audio.openai_voice",
	"openai-instruction":  "audio.openai_instruction",
	"vowelizer":           "vowelizer.provider",
	"genre":               "vowelizer.genre",
	"completeness":        "vowelizer.completeness",
	"gemini-model":        "vowelizer.gemini_model",
	"dicta-endpoint":      "vowelizer.dicta_endpoint",
	"cache":               "vowelizer.cache",
	"fallback-raw":        "vowelizer.fallback_raw",
	"requests-per-second": "batch.requests_per_second",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "havara [text]",
		Short: "Ashkenazi Hebrew pronunciation synthesizer",
		Long: `havara reads Hebrew liturgical text aloud in an Ashkenazi pronunciation.

The text is vowelized, transliterated into a Lithuanian or Hasidic
phonetic transcription, and spoken by a cloud TTS voice using the
transcription as a phoneme hint.

Examples:
  havara "ברוך אתה"                      # Lithuanian audio for one phrase
  havara -d hasidic "ברוך אתה" --show    # Hasidic, print every stage
  havara --phonetic-only "בָּרוּךְ אַתָּה"   # Transcription only, no audio
  havara --batch siddur.txt              # Process one text per line`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultOutputDir is where clips are written unless configured otherwise
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "havara-audio"
	}
	return filepath.Join(home, ".local", "state", "havara", "audio")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.havara.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Output directory")
	cmd.Flags().StringVarP(&flags.Dialect, "dialect", "d", flags.Dialect, "Pronunciation dialect: lithuanian or hasidic")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process texts from file (one per line, optional 'dialect | text')")
	cmd.Flags().BoolVar(&flags.Show, "show", false, "Print the vowelized and phonetic intermediate strings")
	cmd.Flags().BoolVar(&flags.PhoneticOnly, "phonetic-only", false, "Only print the phonetic transcription, do not synthesize audio")
	cmd.Flags().BoolVar(&flags.FallbackRaw, "fallback-raw", false, "Continue with the unvowelized text when vowelization fails")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List available voices for the selected provider and language")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the output directory to a timestamped archive")
	cmd.Flags().StringVar(&flags.APIKey, "api-key", "", "API key for the selected audio provider (overrides environment and config)")

	// Synthesis flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Audio provider: google or openai")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Audio format: mp3, wav or ogg")
	cmd.Flags().StringVar(&flags.Language, "language", flags.Language, "Voice language code")
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "Google voice name")
	cmd.Flags().Float64Var(&flags.Rate, "rate", flags.Rate, "Speaking rate (0.25 to 4.0)")
	cmd.Flags().Float64Var(&flags.Pitch, "pitch", flags.Pitch, "Pitch in semitones (-20 to 20, Google only)")
	cmd.Flags().Float64Var(&flags.RequestsPerSecond, "requests-per-second", flags.RequestsPerSecond, "Maximum synthesis requests per second (0 for unlimited)")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Vowelizer flags
	cmd.Flags().StringVar(&flags.Vowelizer, "vowelizer", flags.Vowelizer, "Vowelizer: dicta, gemini or none (text already vowelized)")
	cmd.Flags().StringVar(&flags.Genre, "genre", flags.Genre, "Text genre for vowelization: modern, rabbinic or poetry")
	cmd.Flags().StringVar(&flags.Completeness, "completeness", flags.Completeness, "Vowelization completeness: full or partial")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used by the gemini vowelizer")
	cmd.Flags().StringVar(&flags.DictaEndpoint, "dicta-endpoint", "", "Override the Dicta Nakdan endpoint")
	cmd.Flags().BoolVar(&flags.Cache, "cache", false, "Cache vowelized text in a local sqlite database")
	cmd.Flags().BoolVar(&flags.ClearCache, "clear-cache", false, "Remove every entry from the vowelization cache")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range flagBindings {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// ApplyConfig copies config file and environment values into every flag
// the user did not set explicitly
func ApplyConfig(cmd *cobra.Command) error {
	for name, key := range flagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed || !viper.IsSet(key) {
			continue
		}
		if err := flag.Value.Set(viper.GetString(key)); err != nil {
			return fmt.Errorf("invalid config value for %s: %w", key, err)
		}
	}
	return nil
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".havara" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".havara")
	}

	// Environment variables, e.g. HAVARA_AUDIO_VOICE for audio.voice
	viper.SetEnvPrefix("HAVARA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGoogleKey retrieves the Google Cloud API key from environment or config
func GetGoogleKey() string {
	return lookupKey("GOOGLE_API_KEY", "audio.google_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	return lookupKey("OPENAI_API_KEY", "audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	return lookupKey("GEMINI_API_KEY", "vowelizer.gemini_key")
}

func lookupKey(env, configKey string) string {
	if key := os.Getenv(env); key != "" {
		return key
	}
	return viper.GetString(configKey)
}
