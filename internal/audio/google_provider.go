package audio

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"codeberg.org/snonux/havara/internal/ssml"
)

// speechClient is the part of the Cloud TTS client used by GoogleProvider
type speechClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
	Close() error
}

// GoogleProvider implements Provider for Google Cloud Text-to-Speech. The
// phonetic string travels as an SSML phoneme hint around the display text.
type GoogleProvider struct {
	client speechClient
	config *Config
}

// NewGoogleProvider creates a Cloud TTS provider authenticated with an API key
func NewGoogleProvider(ctx context.Context, config *Config) (*GoogleProvider, error) {
	if config.GoogleKey == "" {
		return nil, fmt.Errorf("Google %w", ErrMissingKey)
	}

	client, err := texttospeech.NewClient(ctx, option.WithAPIKey(config.GoogleKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return newGoogleProvider(client, config), nil
}

func newGoogleProvider(client speechClient, config *Config) *GoogleProvider {
	return &GoogleProvider{client: client, config: config}
}

// Synthesize builds the phoneme markup and requests audio
func (p *GoogleProvider) Synthesize(ctx context.Context, req *Request) ([]byte, error) {
	markup, err := ssml.Build(req.DisplayText, req.Phonetic, p.config.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to build SSML: %w", err)
	}

	encoding, err := googleEncoding(p.config.Format)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: markup},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: p.config.LanguageCode,
			Name:         p.config.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
			Pitch:         p.config.Pitch,
			SpeakingRate:  p.config.SpeakingRate,
		},
	})
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.GetAudioContent()) == 0 {
		return nil, ErrNoAudio
	}
	return resp.GetAudioContent(), nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable checks that a key is configured. No request is made, since
// every request is billed.
func (p *GoogleProvider) IsAvailable() error {
	if p.config.GoogleKey == "" {
		return fmt.Errorf("Google %w", ErrMissingKey)
	}
	return nil
}

// ListVoices returns the voices Cloud TTS offers for a language
func (p *GoogleProvider) ListVoices(ctx context.Context, language string) ([]Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: language})
	if err != nil {
		return nil, classifyError(err)
	}

	voices := make([]Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		voices = append(voices, Voice{
			Name:       v.GetName(),
			Languages:  v.GetLanguageCodes(),
			Gender:     strings.ToLower(v.GetSsmlGender().String()),
			SampleRate: v.GetNaturalSampleRateHertz(),
		})
	}
	return voices, nil
}

// Close closes the underlying client
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

func googleEncoding(format string) (texttospeechpb.AudioEncoding, error) {
	switch strings.ToLower(format) {
	case "mp3", "":
		return texttospeechpb.AudioEncoding_MP3, nil
	case "wav", "linear16":
		return texttospeechpb.AudioEncoding_LINEAR16, nil
	case "ogg", "opus":
		return texttospeechpb.AudioEncoding_OGG_OPUS, nil
	default:
		return texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio format: %s (use mp3, wav or ogg)", format)
	}
}

// classifyError maps gRPC status codes onto the package errors
func classifyError(err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("Google TTS API error: %w: %v", ErrAuth, err)
	case codes.ResourceExhausted:
		return fmt.Errorf("Google TTS API error: %w: %v", ErrQuota, err)
	case codes.InvalidArgument:
		return fmt.Errorf("Google TTS API error: %w: %v", ErrMalformed, err)
	default:
		return fmt.Errorf("Google TTS API error: %w", err)
	}
}
