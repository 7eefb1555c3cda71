package tone

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prosecheck/prosecheck/internal/model"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// chatServer replies to chat completions with a canned label chosen by the
// system prompt, and records every request it sees.
func chatServer(t *testing.T, requests *[]chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		var req chatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		*requests = append(*requests, req)

		label := "NEUTRAL"
		if len(req.Messages) > 0 && strings.Contains(req.Messages[0].Content, "Formal or Informal") {
			label = "Formal"
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"{\"label\":\"`+label+`\",\"score\":0.9}"}}]}`)
	}))
}

func newTestClassifier(t *testing.T, baseURL string, maxLength int) *Classifier {
	t.Helper()
	c, err := NewClassifier(model.ToneConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL + "/v1",
		Model:     "gpt-4o-mini",
		MaxLength: maxLength,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassifyEmptyInputSkipsAPI(t *testing.T) {
	var requests []chatRequest
	srv := chatServer(t, &requests)
	defer srv.Close()

	c := newTestClassifier(t, srv.URL, 500)
	result := c.Classify(context.Background(), "   \n\t ")

	if result.Sentiment.Label != model.NotApplicable {
		t.Errorf("sentiment = %q, want %q", result.Sentiment.Label, model.NotApplicable)
	}
	if result.Formality.Label != model.NotApplicable {
		t.Errorf("formality = %q, want %q", result.Formality.Label, model.NotApplicable)
	}
	if len(requests) != 0 {
		t.Errorf("expected no API calls for empty input, got %d", len(requests))
	}
}

func TestClassifyLabels(t *testing.T) {
	var requests []chatRequest
	srv := chatServer(t, &requests)
	defer srv.Close()

	c := newTestClassifier(t, srv.URL, 500)
	result := c.Classify(context.Background(), "A perfectly fine sentence to examine.")

	if result.Sentiment.Label != "NEUTRAL" {
		t.Errorf("sentiment = %q, want NEUTRAL", result.Sentiment.Label)
	}
	if result.Sentiment.Score != 0.9 {
		t.Errorf("sentiment score = %v, want 0.9", result.Sentiment.Score)
	}
	if result.Formality.Label != "Formal" {
		t.Errorf("formality = %q, want Formal", result.Formality.Label)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 API calls, got %d", len(requests))
	}
}

func TestClassifyTruncatesLongInput(t *testing.T) {
	var requests []chatRequest
	srv := chatServer(t, &requests)
	defer srv.Close()

	c := newTestClassifier(t, srv.URL, 10)
	long := strings.Repeat("é", 40)
	c.Classify(context.Background(), long)

	if len(requests) != 2 {
		t.Fatalf("expected 2 API calls, got %d", len(requests))
	}
	for _, req := range requests {
		sent := req.Messages[len(req.Messages)-1].Content
		if got := len([]rune(sent)); got != 10 {
			t.Errorf("sent %d runes, want 10", got)
		}
	}
}

func TestClassifyServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClassifier(t, srv.URL, 500)
	result := c.Classify(context.Background(), "Some text.")

	if result.Sentiment.Label != "Error" {
		t.Errorf("sentiment = %q, want Error", result.Sentiment.Label)
	}
	if result.Formality.Label != "Error" {
		t.Errorf("formality = %q, want Error", result.Formality.Label)
	}
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"plain json", `{"label":"POSITIVE","score":0.8}`, "POSITIVE", false},
		{"fenced json", "```json\n{\"label\":\"Informal\",\"score\":0.7}\n```", "Informal", false},
		{"bare fence", "```\n{\"label\":\"NEGATIVE\",\"score\":0.5}\n```", "NEGATIVE", false},
		{"not json", "definitely positive", "", true},
		{"missing label", `{"score":0.9}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassification(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Label != tt.want {
				t.Errorf("label = %q, want %q", got.Label, tt.want)
			}
		})
	}
}

func TestNewClassifierRequiresCredentials(t *testing.T) {
	_, err := NewClassifier(model.ToneConfig{Model: "gpt-4o-mini"}, nil)
	if err == nil {
		t.Fatal("expected error for missing API key and base URL")
	}
}
