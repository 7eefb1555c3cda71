package grammar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prosecheck/prosecheck/internal/cache"
	"github.com/prosecheck/prosecheck/internal/model"
)

func testConfig(endpoint string) model.GrammarConfig {
	return model.GrammarConfig{
		Endpoint: endpoint,
		Language: "en-US",
		Timeout:  5 * time.Second,
	}
}

// ltServer returns a test server answering /v2/check with the given body
// and counting calls.
func ltServer(t *testing.T, body string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/check" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("language") == "" {
			http.Error(w, "missing language", http.StatusBadRequest)
			return
		}
		if calls != nil {
			calls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestCheckEmptyInputSkipsEngine(t *testing.T) {
	var calls atomic.Int64
	srv := ltServer(t, `{"matches":[]}`, &calls)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		issues, err := c.Check(context.Background(), text)
		if err != nil {
			t.Fatalf("Check(%q): %v", text, err)
		}
		if len(issues) != 0 {
			t.Errorf("Check(%q): got %d issues, want 0", text, len(issues))
		}
	}
	if calls.Load() != 0 {
		t.Errorf("engine was called %d times for empty input", calls.Load())
	}
}

func TestCheckReshapesMatches(t *testing.T) {
	// "I have teh best plan." — "teh" at UTF-16 offset 7, length 3.
	body := `{"matches":[{
		"message":"Possible spelling mistake found.",
		"offset":7,"length":3,
		"replacements":[{"value":"the"},{"value":"ten"}],
		"rule":{"id":"MORFOLOGIK_RULE_EN_US","issueType":"misspelling"}
	}]}`
	srv := ltServer(t, body, nil)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	issues, err := c.Check(context.Background(), "I have teh best plan.")
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}

	issue := issues[0]
	if issue.Context != "teh" {
		t.Errorf("Context = %q, want teh", issue.Context)
	}
	if issue.Message != "Possible spelling mistake found." {
		t.Errorf("Message = %q", issue.Message)
	}
	if issue.Category != "MORFOLOGIK_RULE_EN_US" {
		t.Errorf("Category = %q", issue.Category)
	}
	if issue.RuleName != "misspelling" {
		t.Errorf("RuleName = %q", issue.RuleName)
	}
	if issue.Suggested != "the, ten" {
		t.Errorf("Suggested = %q", issue.Suggested)
	}
	if issue.Offset != 7 || issue.Length != 3 {
		t.Errorf("span = (%d, %d), want (7, 3)", issue.Offset, issue.Length)
	}
}

func TestCheckNoReplacementsSentinel(t *testing.T) {
	body := `{"matches":[{
		"message":"Sentence does not start with an uppercase letter.",
		"offset":0,"length":4,
		"replacements":[],
		"rule":{"id":"UPPERCASE_SENTENCE_START","issueType":"typographical"}
	}]}`
	srv := ltServer(t, body, nil)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	issues, err := c.Check(context.Background(), "this sentence.")
	if err != nil {
		t.Fatal(err)
	}
	if issues[0].Suggested != model.NotApplicable {
		t.Errorf("Suggested = %q, want %q", issues[0].Suggested, model.NotApplicable)
	}
}

func TestCheckPreservesEngineOrder(t *testing.T) {
	body := `{"matches":[
		{"message":"first","offset":0,"length":2,"rule":{"id":"A","issueType":"grammar"}},
		{"message":"second","offset":3,"length":2,"rule":{"id":"B","issueType":"grammar"}},
		{"message":"third","offset":6,"length":2,"rule":{"id":"C","issueType":"grammar"}}
	]}`
	srv := ltServer(t, body, nil)
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	issues, err := c.Check(context.Background(), "ab cd ef")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"first", "second", "third"}
	for i, msg := range want {
		if issues[i].Message != msg {
			t.Errorf("issues[%d].Message = %q, want %q", i, issues[i].Message, msg)
		}
	}
}

func TestCheckEngineErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	if _, err := c.Check(context.Background(), "some text"); err == nil {
		t.Error("expected error from failing engine")
	}
}

func TestCheckCachesResponses(t *testing.T) {
	var calls atomic.Int64
	body := `{"matches":[{"message":"m","offset":0,"length":4,"rule":{"id":"R","issueType":"grammar"}}]}`
	srv := ltServer(t, body, &calls)
	defer srv.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	c := NewClient(testConfig(srv.URL), nil, WithCache(store))

	for i := 0; i < 3; i++ {
		issues, err := c.Check(context.Background(), "some text")
		if err != nil {
			t.Fatal(err)
		}
		if len(issues) != 1 {
			t.Fatalf("got %d issues, want 1", len(issues))
		}
	}
	if calls.Load() != 1 {
		t.Errorf("engine called %d times, want 1 (cache should absorb repeats)", calls.Load())
	}
}

func TestLanguageCanonicalization(t *testing.T) {
	c := NewClient(model.GrammarConfig{Endpoint: "http://x", Language: "en-us"}, nil)
	if c.Language() != "en-US" {
		t.Errorf("Language() = %q, want en-US", c.Language())
	}
}
