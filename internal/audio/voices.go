package audio

import "context"

// Voice describes a synthesizer voice
type Voice struct {
	Name       string
	Languages  []string
	Gender     string
	SampleRate int32
}

// VoiceLister is implemented by providers that can enumerate their voices
type VoiceLister interface {
	ListVoices(ctx context.Context, language string) ([]Voice, error)
}
