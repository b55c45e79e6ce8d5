package vowelize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newDictaServer(t *testing.T, status int, body string, gotReq *dictaRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if gotReq != nil {
			if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDictaClientVowelize(t *testing.T) {
	body := `[
		{"word": "ברוך", "options": ["בָּרוּךְ", "בְּרוּךְ"]},
		{"word": " ", "sep": true},
		{"word": "אתה", "options": [["אַתָּה", "morph"], ["אֵתָהּ", "morph"]]},
		{"word": " ", "sep": true},
		{"word": "העולם", "options": ["הָ|עוֹלָם"]},
		{"word": ".", "sep": true}
	]`

	var req dictaRequest
	srv := newDictaServer(t, http.StatusOK, body, &req)

	client := NewDictaClient(srv.URL, Options{Genre: GenreRabbinic, Completeness: CompletenessPartial}, time.Second)
	got, err := client.Vowelize(context.Background(), "ברוך אתה העולם.")
	if err != nil {
		t.Fatalf("Vowelize failed: %v", err)
	}

	want := "בָּרוּךְ אַתָּה הָעוֹלָם."
	if got != want {
		t.Errorf("Vowelize() = %q, want %q", got, want)
	}

	if req.Task != "nakdan" {
		t.Errorf("task = %q, want nakdan", req.Task)
	}
	if req.Genre != "rabbinic" {
		t.Errorf("genre = %q, want rabbinic", req.Genre)
	}
	if req.Completeness != "partial" {
		t.Errorf("completeness = %q, want partial", req.Completeness)
	}
	if req.Data != "ברוך אתה העולם." {
		t.Errorf("data = %q", req.Data)
	}
}

func TestDictaClientWordWithoutOptions(t *testing.T) {
	body := `[{"word": "ה'", "options": []}, {"word": " ", "sep": true}, {"word": "מלך", "options": ["מֶלֶךְ"]}]`
	srv := newDictaServer(t, http.StatusOK, body, nil)

	got, err := NewDictaClient(srv.URL, Options{}, time.Second).Vowelize(context.Background(), "ה' מלך")
	if err != nil {
		t.Fatalf("Vowelize failed: %v", err)
	}
	if got != "ה' מֶלֶךְ" {
		t.Errorf("Vowelize() = %q", got)
	}
}

func TestDictaClientMaqaf(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"bare maqaf",
			`[{"word": "כל", "options": ["כָּל"]}, {"word": "־", "sep": true}, {"word": "העולם", "options": ["הָ|עוֹלָם"]}]`,
			"כָּל־הָעוֹלָם",
		},
		{
			"maqaf with spaces",
			`[{"word": "כל", "options": ["כָּל"]}, {"word": " ־ ", "sep": true}, {"word": " ", "sep": true}, {"word": "העולם", "options": ["הָעוֹלָם"]}]`,
			"כָּל־הָעוֹלָם",
		},
		{
			"words after the pair stay apart",
			`[{"word": "על", "options": ["עַל"]}, {"word": "־", "sep": true}, {"word": "כן", "options": ["כֵּן"]}, {"word": " ", "sep": true}, {"word": "נקוה", "options": ["נְקַוֶּה"]}]`,
			"עַל־כֵּן נְקַוֶּה",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newDictaServer(t, http.StatusOK, tt.body, nil)

			got, err := NewDictaClient(srv.URL, Options{}, time.Second).Vowelize(context.Background(), "x")
			if err != nil {
				t.Fatalf("Vowelize failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Vowelize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDictaClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "status 500"},
		{"bad json", http.StatusOK, "{not json", "failed to decode response"},
		{"empty", http.StatusOK, "[]", ErrEmptyResponse.Error()},
		{"bad candidate", http.StatusOK, `[{"word": "x", "options": [42]}]`, "unexpected candidate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newDictaServer(t, tt.status, tt.body, nil)
			_, err := NewDictaClient(srv.URL, Options{}, time.Second).Vowelize(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDictaClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewDictaClient(url, Options{}, time.Second).Vowelize(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !strings.Contains(err.Error(), "request failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDictaClientContextCancelled(t *testing.T) {
	srv := newDictaServer(t, http.StatusOK, `[]`, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDictaClient(srv.URL, Options{}, time.Second).Vowelize(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewDictaClientDefaults(t *testing.T) {
	c := NewDictaClient("", Options{}, 0)
	if c.endpoint != DefaultDictaEndpoint {
		t.Errorf("endpoint = %q", c.endpoint)
	}
	if c.httpClient.Timeout != dictaTimeout {
		t.Errorf("timeout = %v", c.httpClient.Timeout)
	}
	if c.options.Genre != GenreRabbinic || c.options.Completeness != CompletenessFull {
		t.Errorf("options = %+v", c.options)
	}
	if c.Name() != "dicta" {
		t.Errorf("Name() = %q", c.Name())
	}
}
