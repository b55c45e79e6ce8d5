package audio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newSpeechServer(t *testing.T, status int, body []byte, got *map[string]interface{}) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
		}
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOpenAIProvider(t *testing.T, baseURL string) *OpenAIProvider {
	t.Helper()

	config := DefaultProviderConfig()
	config.Provider = "openai"
	config.OpenAIKey = "test-key"
	config.OpenAIBaseURL = baseURL + "/v1"

	p, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}
	return p
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(&Config{}); !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}

	p, err := NewOpenAIProvider(&Config{OpenAIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}
	if p.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestOpenAISynthesize(t *testing.T) {
	var got map[string]interface{}
	srv := newSpeechServer(t, http.StatusOK, []byte("mock audio"), &got)
	p := testOpenAIProvider(t, srv.URL)

	data, err := p.Synthesize(context.Background(), &Request{DisplayText: "אַתָּה", Phonetic: " atuh "})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(data) != "mock audio" {
		t.Errorf("unexpected audio %q", data)
	}

	if got["input"] != "atuh" {
		t.Errorf("input = %v, want phonetic string", got["input"])
	}
	if got["model"] != "gpt-4o-mini-tts" {
		t.Errorf("model = %v", got["model"])
	}
	if got["voice"] != "onyx" {
		t.Errorf("voice = %v", got["voice"])
	}
	if got["response_format"] != "mp3" {
		t.Errorf("response_format = %v", got["response_format"])
	}
	if instr, _ := got["instructions"].(string); instr == "" {
		t.Error("expected instructions for gpt-4o-mini-tts")
	}
}

func TestOpenAISynthesizeNoInstructionsForTTS1(t *testing.T) {
	var got map[string]interface{}
	srv := newSpeechServer(t, http.StatusOK, []byte("mock audio"), &got)
	p := testOpenAIProvider(t, srv.URL)
	p.config.OpenAIModel = "tts-1"

	if _, err := p.Synthesize(context.Background(), &Request{Phonetic: "boruch"}); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if _, ok := got["instructions"]; ok {
		t.Error("tts-1 request should not carry instructions")
	}
}

func TestOpenAISynthesizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"auth", http.StatusUnauthorized, ErrAuth},
		{"quota", http.StatusTooManyRequests, ErrQuota},
		{"malformed", http.StatusBadRequest, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"error": {"message": "nope", "type": "invalid_request_error"}}`)
			srv := newSpeechServer(t, tt.status, body, nil)
			p := testOpenAIProvider(t, srv.URL)

			_, err := p.Synthesize(context.Background(), &Request{Phonetic: "x"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Synthesize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenAISynthesizeEmpty(t *testing.T) {
	srv := newSpeechServer(t, http.StatusOK, nil, nil)
	p := testOpenAIProvider(t, srv.URL)

	if _, err := p.Synthesize(context.Background(), &Request{Phonetic: "  "}); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for blank input, got %v", err)
	}
	if _, err := p.Synthesize(context.Background(), &Request{Phonetic: "x"}); !errors.Is(err, ErrNoAudio) {
		t.Errorf("expected ErrNoAudio, got %v", err)
	}
}

func TestOpenAIListVoices(t *testing.T) {
	p, err := NewOpenAIProvider(&Config{OpenAIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	voices, err := p.ListVoices(context.Background(), "he-IL")
	if err != nil {
		t.Fatal(err)
	}
	if len(voices) != len(openAIVoices) {
		t.Errorf("expected %d voices, got %d", len(openAIVoices), len(voices))
	}
}
