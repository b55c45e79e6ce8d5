package vowelize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultDictaEndpoint is the public Nakdan diacritization API
	DefaultDictaEndpoint = "https://nakdan-2-0.loadbalancer.dicta.org.il/api"
	dictaTimeout         = 30 * time.Second

	// Nakdan marks the boundary between a prefix and its word with a pipe
	prefixMarker = "|"

	maqaf = "\u05BE"
)

// DictaClient implements Vowelizer for the Dicta Nakdan service
type DictaClient struct {
	endpoint   string
	options    Options
	httpClient *http.Client
}

// dictaRequest is the JSON body sent to Nakdan
type dictaRequest struct {
	Task           string `json:"task"`
	Genre          string `json:"genre"`
	Data           string `json:"data"`
	Completeness   string `json:"completeness"`
	AddMorph       bool   `json:"addmorph"`
	KeepQQ         bool   `json:"keepqq"`
	NoDageshDefMem bool   `json:"nodageshdefmem"`
	PatachMa       bool   `json:"patachma"`
	KeepMetagim    bool   `json:"keepmetagim"`
}

// dictaToken is one entry of the Nakdan response. Options are ranked
// candidates, either plain strings or arrays whose first element is the
// vowelized word.
type dictaToken struct {
	Word    string            `json:"word"`
	Sep     bool              `json:"sep"`
	Options []json.RawMessage `json:"options"`
}

// NewDictaClient creates a Nakdan client
func NewDictaClient(endpoint string, options Options, timeout time.Duration) *DictaClient {
	if endpoint == "" {
		endpoint = DefaultDictaEndpoint
	}
	if timeout <= 0 {
		timeout = dictaTimeout
	}
	if options.Genre == "" {
		options.Genre = GenreRabbinic
	}
	if options.Completeness == "" {
		options.Completeness = CompletenessFull
	}

	return &DictaClient{
		endpoint: endpoint,
		options:  options,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (c *DictaClient) Name() string {
	return "dicta"
}

// Vowelize sends text to Nakdan and joins the top ranked candidate of every
// word with single spaces
func (c *DictaClient) Vowelize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(dictaRequest{
		Task:         "nakdan",
		Genre:        string(c.options.Genre),
		Data:         text,
		Completeness: string(c.options.Completeness),
		KeepMetagim:  true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("dicta API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var tokens []dictaToken
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return joinTokens(tokens)
}

// joinTokens rebuilds the vowelized text. Whitespace separators collapse
// into a single space and punctuation separators stick to the word before
// them. A maqaf also binds the word after it.
func joinTokens(tokens []dictaToken) (string, error) {
	var words []string
	glue := false
	for _, tok := range tokens {
		if tok.Sep {
			sep := strings.TrimSpace(tok.Word)
			if sep == "" {
				continue
			}
			if len(words) > 0 && (glue || strings.IndexFunc(sep, unicode.IsPunct) == 0) {
				words[len(words)-1] += sep
			} else {
				words = append(words, sep)
			}
			glue = strings.HasSuffix(sep, maqaf)
			continue
		}

		word, err := topCandidate(tok)
		if err != nil {
			return "", err
		}
		if word == "" {
			continue
		}
		if glue && len(words) > 0 {
			words[len(words)-1] += word
		} else {
			words = append(words, word)
		}
		glue = false
	}

	if len(words) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.Join(words, " "), nil
}

func topCandidate(tok dictaToken) (string, error) {
	if len(tok.Options) == 0 {
		return strings.TrimSpace(tok.Word), nil
	}

	first := tok.Options[0]
	var s string
	if err := json.Unmarshal(first, &s); err != nil {
		var parts []json.RawMessage
		if err := json.Unmarshal(first, &parts); err != nil || len(parts) == 0 {
			return "", fmt.Errorf("unexpected candidate for %q: %s", tok.Word, first)
		}
		if err := json.Unmarshal(parts[0], &s); err != nil {
			return "", fmt.Errorf("unexpected candidate for %q: %s", tok.Word, first)
		}
	}

	return strings.ReplaceAll(strings.TrimSpace(s), prefixMarker, ""), nil
}
