package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// openAIVoices are the voices offered by the OpenAI speech endpoint
var openAIVoices = []string{"alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"}

// OpenAIProvider implements Provider interface for OpenAI TTS. The speech
// endpoint has no phoneme markup, so the phonetic string itself is read
// aloud.
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI %w", ErrMissingKey)
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Synthesize generates audio for the phonetic string using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, req *Request) ([]byte, error) {
	input := strings.TrimSpace(req.Phonetic)
	if input == "" {
		return nil, fmt.Errorf("%w: empty phonetic string", ErrMalformed)
	}

	format, err := openAIFormat(p.config.Format)
	if err != nil {
		return nil, err
	}

	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          input,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.SpeakingRate,
		ResponseFormat: format,
	}

	// Instructions are only honoured by the gpt-4o family
	if p.config.OpenAIInstruction != "" && strings.HasPrefix(p.config.OpenAIModel, "gpt-4o") {
		speechReq.Instructions = p.config.OpenAIInstruction
	}

	response, err := p.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoAudio
	}
	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI %w", ErrMissingKey)
	}
	return nil
}

// ListVoices returns the fixed OpenAI voice list. The voices are
// multilingual, so language is ignored.
func (p *OpenAIProvider) ListVoices(_ context.Context, _ string) ([]Voice, error) {
	voices := make([]Voice, 0, len(openAIVoices))
	for _, name := range openAIVoices {
		voices = append(voices, Voice{Name: name})
	}
	return voices, nil
}

func openAIFormat(format string) (openai.SpeechResponseFormat, error) {
	switch strings.ToLower(format) {
	case "mp3", "":
		return openai.SpeechResponseFormatMp3, nil
	case "wav", "linear16":
		return openai.SpeechResponseFormatWav, nil
	case "ogg", "opus":
		return openai.SpeechResponseFormatOpus, nil
	default:
		return "", fmt.Errorf("unsupported audio format: %s (use mp3, wav or ogg)", format)
	}
}

func classifyOpenAIError(err error) error {
	code := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		code = apiErr.HTTPStatusCode
	} else if errors.As(err, &reqErr) {
		code = reqErr.HTTPStatusCode
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("OpenAI TTS API error: %w: %v", ErrAuth, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("OpenAI TTS API error: %w: %v", ErrQuota, err)
	case http.StatusBadRequest:
		return fmt.Errorf("OpenAI TTS API error: %w: %v", ErrMalformed, err)
	default:
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
}
