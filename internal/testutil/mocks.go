package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/havara/internal/audio"
)

// MockVowelizer mocks the vowelization service
type MockVowelizer struct {
	Results map[string]string
	Errors  map[string]error
	// Err fails every call when set
	Err error

	mu    sync.Mutex
	Calls []string
}

// Vowelize returns the configured result for text, or text itself
func (m *MockVowelizer) Vowelize(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if out, ok := m.Results[text]; ok {
		return out, nil
	}
	return text, nil
}

// Name returns the mock provider name
func (m *MockVowelizer) Name() string {
	return "mock"
}

// CallCount returns how often Vowelize was called
func (m *MockVowelizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockProvider mocks a speech synthesis provider
type MockProvider struct {
	Audio        []byte
	Err          error
	AvailableErr error

	mu       sync.Mutex
	Requests []audio.Request
}

// Synthesize records the request and returns the configured audio
func (m *MockProvider) Synthesize(ctx context.Context, req *audio.Request) ([]byte, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, *req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Audio != nil {
		return m.Audio, nil
	}
	return GenerateAudioData(), nil
}

// Name returns the mock provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable returns the configured availability error
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// LastRequest returns the most recent synthesis request
func (m *MockProvider) LastRequest() (audio.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return audio.Request{}, fmt.Errorf("no requests recorded")
	}
	return m.Requests[len(m.Requests)-1], nil
}

// GenerateAudioData generates mock audio data
func GenerateAudioData() []byte {
	// Simple mock MP3 header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}
