package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"codeberg.org/snonux/havara/internal/audio"
	"codeberg.org/snonux/havara/internal/phonetic"
	"codeberg.org/snonux/havara/internal/testutil"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	options := DefaultOptions()
	options.OutputDir = t.TempDir()
	options.RequestsPerSecond = 0
	return options
}

func newTestProcessor(t *testing.T, options Options) (*Processor, *testutil.MockVowelizer, *testutil.MockProvider, *bytes.Buffer) {
	t.Helper()

	v := &testutil.MockVowelizer{Results: map[string]string{testutil.BaruchAtaRaw: testutil.BaruchAta}}
	provider := &testutil.MockProvider{}
	p := NewProcessor(v, provider, options)

	var out bytes.Buffer
	p.SetOutput(&out, &out)
	return p, v, provider, &out
}

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultOptions())

	if p.vowelizer == nil || p.vowelizer.Name() != "none" {
		t.Error("nil vowelizer should default to passthrough")
	}
	if p.limiter == nil {
		t.Error("default options should pace synthesis")
	}
	if p.out != os.Stdout {
		t.Error("output should default to stdout")
	}

	options := DefaultOptions()
	options.RequestsPerSecond = 0
	if NewProcessor(nil, nil, options).limiter != nil {
		t.Error("zero rate should disable pacing")
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		dialect phonetic.Dialect
		want    string
	}{
		{"lithuanian", phonetic.Lithuanian, testutil.BaruchAtaLithuanian},
		{"hasidic", phonetic.Hasidic, testutil.BaruchAtaHasidic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := testOptions(t)
			options.Dialect = tt.dialect
			p, v, provider, _ := newTestProcessor(t, options)

			result, err := p.Convert(context.Background(), testutil.BaruchAtaRaw)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}

			if result.Vowelized != testutil.BaruchAta {
				t.Errorf("Vowelized = %q", result.Vowelized)
			}
			if result.Phonetic != tt.want {
				t.Errorf("Phonetic = %q, want %q", result.Phonetic, tt.want)
			}
			if result.Stages.Final != result.Phonetic {
				t.Error("stages do not end with the phonetic string")
			}
			if !bytes.Equal(result.Audio, testutil.GenerateAudioData()) {
				t.Error("audio not returned")
			}
			if v.CallCount() != 1 {
				t.Errorf("vowelizer called %d times", v.CallCount())
			}

			req, err := provider.LastRequest()
			if err != nil {
				t.Fatal(err)
			}
			if req.DisplayText != testutil.BaruchAtaRaw {
				t.Errorf("DisplayText = %q, want the original input", req.DisplayText)
			}
			if req.Phonetic != tt.want {
				t.Errorf("Request phonetic = %q, want %q", req.Phonetic, tt.want)
			}
		})
	}
}

func TestConvertInvalidText(t *testing.T) {
	p, v, provider, _ := newTestProcessor(t, testOptions(t))

	for _, text := range []string{"", "   ", "boruch atuh"} {
		if _, err := p.Convert(context.Background(), text); err == nil {
			t.Errorf("Convert(%q) should fail", text)
		}
	}
	if _, err := p.Convert(context.Background(), "shalom"); !errors.Is(err, audio.ErrNoHebrew) {
		t.Errorf("expected ErrNoHebrew, got %v", err)
	}
	if v.CallCount() != 0 || len(provider.Requests) != 0 {
		t.Error("collaborators must not be called for invalid text")
	}
}

func TestConvertVowelizerFailure(t *testing.T) {
	errService := errors.New("service down")

	t.Run("fails without fallback", func(t *testing.T) {
		p, v, provider, _ := newTestProcessor(t, testOptions(t))
		v.Err = errService

		_, err := p.Convert(context.Background(), testutil.BaruchAtaRaw)
		if !errors.Is(err, errService) {
			t.Errorf("expected vowelizer error, got %v", err)
		}
		if len(provider.Requests) != 0 {
			t.Error("no audio should be requested after a vowelization failure")
		}
	})

	t.Run("continues with fallback", func(t *testing.T) {
		options := testOptions(t)
		options.FallbackUnvowelized = true
		p, v, _, out := newTestProcessor(t, options)
		v.Err = errService

		result, err := p.Convert(context.Background(), testutil.BaruchAtaRaw)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if !result.Fallback || result.Vowelized != testutil.BaruchAtaRaw {
			t.Errorf("expected raw text fallback, got %+v", result)
		}
		if want := phonetic.Transliterate(testutil.BaruchAtaRaw, phonetic.Lithuanian); result.Phonetic != want {
			t.Errorf("Phonetic = %q, want %q", result.Phonetic, want)
		}
		if !strings.Contains(out.String(), "Warning: vowelization failed") {
			t.Errorf("missing warning: %q", out.String())
		}
	})
}

func TestConvertPhoneticOnly(t *testing.T) {
	options := testOptions(t)
	options.PhoneticOnly = true
	v := &testutil.MockVowelizer{Results: map[string]string{testutil.BaruchAtaRaw: testutil.BaruchAta}}
	p := NewProcessor(v, nil, options)
	p.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	result, err := p.Convert(context.Background(), testutil.BaruchAtaRaw)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if result.Phonetic != testutil.BaruchAtaLithuanian {
		t.Errorf("Phonetic = %q", result.Phonetic)
	}
	if result.Audio != nil {
		t.Error("phonetic-only run should not produce audio")
	}
}

func TestConvertProviderError(t *testing.T) {
	p, _, provider, _ := newTestProcessor(t, testOptions(t))
	provider.Err = audio.ErrQuota

	_, err := p.Convert(context.Background(), testutil.BaruchAtaRaw)
	if !errors.Is(err, audio.ErrQuota) {
		t.Errorf("expected ErrQuota, got %v", err)
	}
	if len(provider.Requests) != 1 {
		t.Errorf("expected exactly one attempt, got %d", len(provider.Requests))
	}
}

func TestConvertWithoutProvider(t *testing.T) {
	p := NewProcessor(nil, nil, testOptions(t))
	p.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	if _, err := p.Convert(context.Background(), testutil.BaruchAta); err == nil {
		t.Error("expected error when audio is requested without a provider")
	}
}

func TestConvertPaced(t *testing.T) {
	options := testOptions(t)
	options.RequestsPerSecond = 1000
	p, _, provider, _ := newTestProcessor(t, options)

	for i := 0; i < 3; i++ {
		if _, err := p.Convert(context.Background(), testutil.BaruchAtaRaw); err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
	}
	if len(provider.Requests) != 3 {
		t.Errorf("expected 3 requests, got %d", len(provider.Requests))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Convert(ctx, testutil.BaruchAta); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestProcessSingle(t *testing.T) {
	options := testOptions(t)
	p, _, _, out := newTestProcessor(t, options)

	if _, err := p.ProcessSingle(context.Background(), testutil.BaruchAtaRaw); err != nil {
		t.Fatalf("ProcessSingle failed: %v", err)
	}

	path, err := p.ClipPath(testutil.BaruchAtaRaw, phonetic.Lithuanian)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "_lithuanian.mp3") {
		t.Errorf("unexpected clip path %s", path)
	}
	testutil.AssertFileContent(t, path, testutil.GenerateAudioData())

	transcript := strings.TrimSuffix(path, ".mp3") + ".txt"
	testutil.AssertFileContains(t, transcript, "phonetic: "+testutil.BaruchAtaLithuanian)
	testutil.AssertFileContains(t, transcript, "dialect: lithuanian")

	if !strings.Contains(out.String(), "Saved audio: "+path) {
		t.Errorf("missing saved line: %q", out.String())
	}
}

func TestProcessSingleShow(t *testing.T) {
	options := testOptions(t)
	options.Show = true
	options.PhoneticOnly = true
	p, _, _, out := newTestProcessor(t, options)

	if _, err := p.ProcessSingle(context.Background(), testutil.BaruchAtaRaw); err != nil {
		t.Fatalf("ProcessSingle failed: %v", err)
	}

	for _, want := range []string{"Tav softened", "General vowels", testutil.BaruchAtaLithuanian} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}

	path, _ := p.ClipPath(testutil.BaruchAtaRaw, phonetic.Lithuanian)
	testutil.AssertFileNotExists(t, path)
}

func TestProcessSinglePhoneticOnlyPrintsOnce(t *testing.T) {
	options := testOptions(t)
	options.PhoneticOnly = true
	p, _, _, out := newTestProcessor(t, options)

	if _, err := p.ProcessSingle(context.Background(), testutil.BaruchAtaRaw); err != nil {
		t.Fatalf("ProcessSingle failed: %v", err)
	}

	if n := strings.Count(out.String(), testutil.BaruchAtaLithuanian); n != 1 {
		t.Errorf("transcription printed %d times, want 1: %q", n, out.String())
	}
	if strings.Contains(out.String(), "Saved audio") {
		t.Errorf("phonetic-only run reported a saved clip: %q", out.String())
	}
}

func TestProcessSingleInvalid(t *testing.T) {
	p, _, _, _ := newTestProcessor(t, testOptions(t))

	if _, err := p.ProcessSingle(context.Background(), "hello"); !errors.Is(err, audio.ErrNoHebrew) {
		t.Errorf("expected ErrNoHebrew, got %v", err)
	}
}
