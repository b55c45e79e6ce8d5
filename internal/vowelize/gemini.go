package vowelize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

const geminiPrompt = `Add complete Hebrew niqqud (vowel points and dagesh) to the following text.
Keep every word, its order and its punctuation. Respond with only the vowelized text, nothing else.

%s`

// contentGenerator is the part of the genai client used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiVowelizer asks a Gemini model to add niqqud. It produces a single
// candidate per request.
type GeminiVowelizer struct {
	models contentGenerator
	model  string
}

// NewGeminiVowelizer creates a Gemini backed vowelizer
func NewGeminiVowelizer(ctx context.Context, apiKey, model string) (*GeminiVowelizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiVowelizer{models: client.Models, model: model}, nil
}

// Name returns the provider name
func (g *GeminiVowelizer) Name() string {
	return "gemini"
}

// Vowelize returns the model's vowelized rendering of text
func (g *GeminiVowelizer) Vowelize(ctx context.Context, text string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(geminiPrompt, text)),
		&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)},
	)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
