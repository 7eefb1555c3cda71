package pipeline

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prosecheck/prosecheck/internal/extract"
	"github.com/prosecheck/prosecheck/internal/grammar"
	"github.com/prosecheck/prosecheck/internal/model"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestPipeline builds a pipeline against a stub grammar engine, bypassing
// the shared engine handle so every test gets its own endpoint.
func newTestPipeline(t *testing.T, engineURL string) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Grammar.Endpoint = engineURL
	cfg.Grammar.Timeout = 5 * time.Second
	return &Pipeline{
		extractor: extract.New(cfg.Extract, discard()),
		grammar:   grammar.NewClient(cfg.Grammar, discard()),
		config:    cfg,
		logger:    discard(),
	}
}

func stubEngine(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
}

func TestAnalyzeText(t *testing.T) {
	srv := stubEngine(t, `{"matches":[{"message":"Possible spelling mistake found.","offset":0,"length":3,"replacements":[{"value":"The"}],"rule":{"id":"MORFOLOGIK_RULE_EN_US","issueType":"misspelling"}}]}`)
	defer srv.Close()

	p := newTestPipeline(t, srv.URL)
	report := p.Analyze(context.Background(), model.Document{
		Name:    "note.txt",
		Content: []byte("Teh quick brown fox jumps over the lazy dog."),
		Format:  model.FormatText,
	})

	if report.ID == "" {
		t.Error("report missing ID")
	}
	if report.Source != "note.txt" {
		t.Errorf("source = %q, want note.txt", report.Source)
	}
	if report.ExtractStatus != string(extract.StatusOK) {
		t.Errorf("extract status = %q, want ok", report.ExtractStatus)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
	if len(report.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(report.Issues))
	}
	if report.Issues[0].Context != "Teh" {
		t.Errorf("issue context = %q, want Teh", report.Issues[0].Context)
	}
	if report.Tone != nil {
		t.Error("tone should be nil when the classifier is disabled")
	}

	wc, ok := report.Readability.Get(model.MetricWordCount)
	if !ok || wc.Number != 9 {
		t.Errorf("word count = %v, want 9", wc)
	}
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	srv := stubEngine(t, `{"matches":[]}`)
	defer srv.Close()

	p := newTestPipeline(t, srv.URL)
	report := p.Analyze(context.Background(), model.Document{
		Name:    "img.png",
		Content: []byte{0x89, 0x50, 0x4e, 0x47},
		Format:  model.FormatUnknown,
	})

	if report.ExtractStatus != string(extract.StatusUnsupported) {
		t.Errorf("extract status = %q, want unsupported", report.ExtractStatus)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected an unsupported-format warning")
	}
	if len(report.Issues) != 0 {
		t.Errorf("issues = %d, want 0", len(report.Issues))
	}
	wc, _ := report.Readability.Get(model.MetricWordCount)
	if wc.Number != 0 {
		t.Errorf("word count = %v, want 0", wc)
	}
	flesch, _ := report.Readability.Get(model.MetricFlesch)
	if !flesch.NA {
		t.Errorf("flesch = %v, want N/A", flesch)
	}
}

func TestAnalyzeEngineDownDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := newTestPipeline(t, srv.URL)
	report := p.Analyze(context.Background(), model.Document{
		Name:    "note.txt",
		Content: []byte("A fine sentence."),
		Format:  model.FormatText,
	})

	if len(report.Issues) != 0 {
		t.Errorf("issues = %d, want 0 when engine is down", len(report.Issues))
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one degradation warning", report.Warnings)
	}
	// Readability must still be computed.
	wc, _ := report.Readability.Get(model.MetricWordCount)
	if wc.Number != 3 {
		t.Errorf("word count = %v, want 3", wc)
	}
}

func TestAnalyzeFile(t *testing.T) {
	srv := stubEngine(t, `{"matches":[]}`)
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("Hello from a file."), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline(t, srv.URL)
	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if report.Source != "doc.txt" {
		t.Errorf("source = %q, want doc.txt", report.Source)
	}
	if report.Format != model.FormatText {
		t.Errorf("format = %q, want text", report.Format)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	srv := stubEngine(t, `{"matches":[]}`)
	defer srv.Close()

	p := newTestPipeline(t, srv.URL)
	if _, err := p.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
