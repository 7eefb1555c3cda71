// Package grammar checks text against a LanguageTool-compatible server.
//
// The engine is an external collaborator: this package owns only the single
// HTTP invocation per analysis, the UTF-16 offset conversion, and the shape
// of the issue records.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/prosecheck/prosecheck/internal/cache"
	"github.com/prosecheck/prosecheck/internal/model"
	"github.com/prosecheck/prosecheck/internal/util"
	"github.com/prosecheck/prosecheck/internal/worker"
)

// Client calls a LanguageTool-compatible /v2/check endpoint.
type Client struct {
	endpoint   string
	lang       string
	httpClient *http.Client
	limiter    *worker.Limiter
	store      cache.Cache // optional; nil disables caching
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithCache caches check responses keyed by content hash.
func WithCache(store cache.Cache) Option {
	return func(c *Client) { c.store = store }
}

// WithLimiter throttles calls per engine host.
func WithLimiter(l *worker.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a Client for the configured engine endpoint.
func NewClient(cfg model.GrammarConfig, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	lang := cfg.Language
	if tag, err := language.Parse(lang); err == nil {
		lang = tag.String()
	} else {
		logger.Warn("unrecognized language tag, passing through", "language", cfg.Language)
	}

	c := &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		lang:     lang,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Language returns the canonicalized language tag sent to the engine.
func (c *Client) Language() string { return c.lang }

// Check runs the engine once over the full text and reshapes its matches
// into issue records, in the order the engine returned them. Empty or
// whitespace-only text yields no issues and no engine call.
func (c *Client) Check(ctx context.Context, text string) ([]model.GrammarIssue, error) {
	if strings.TrimSpace(text) == "" {
		return []model.GrammarIssue{}, nil
	}

	key := cache.Key(c.lang + "\x00" + text)
	if c.store != nil {
		if data, found := c.store.Get(key); found {
			var issues []model.GrammarIssue
			if err := json.Unmarshal(data, &issues); err == nil {
				c.logger.Debug("grammar cache hit", "issues", len(issues))
				return issues, nil
			}
		}
	}

	matches, err := c.check(ctx, text)
	if err != nil {
		return nil, err
	}

	issues := make([]model.GrammarIssue, 0, len(matches))
	for _, m := range matches {
		issues = append(issues, reshapeMatch(text, m))
	}

	if c.store != nil {
		if data, err := json.Marshal(issues); err == nil {
			_ = c.store.Set(key, data, 0)
		}
	}

	return issues, nil
}

// ltMatch mirrors the fields we read from the engine's JSON response.
type ltMatch struct {
	Message      string `json:"message"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID        string `json:"id"`
		IssueType string `json:"issueType"`
	} `json:"rule"`
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

func (c *Client) check(ctx context.Context, text string) ([]ltMatch, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar engine: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grammar engine status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed ltResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsed.Matches, nil
}

// reshapeMatch builds one issue record from an engine match. The context is
// sliced from the original text at the engine-reported span, after the
// UTF-16 offset conversion.
func reshapeMatch(text string, m ltMatch) model.GrammarIssue {
	span, runeOff, runeLen := spanFromUTF16(text, m.Offset, m.Length)

	suggested := model.NotApplicable
	if len(m.Replacements) > 0 {
		values := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			values = append(values, r.Value)
		}
		suggested = strings.Join(values, ", ")
	}

	return model.GrammarIssue{
		Context:   span,
		Message:   m.Message,
		Category:  m.Rule.ID,
		RuleName:  m.Rule.IssueType,
		Suggested: suggested,
		Offset:    runeOff,
		Length:    runeLen,
	}
}
