// Package tone provides optional sentiment and formality classification
// through an OpenAI-compatible chat API. It is not part of the core report;
// the pipeline only attaches it when explicitly enabled.
package tone

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prosecheck/prosecheck/internal/model"
)

const (
	sentimentInstruction = `Classify the sentiment of the user's text as exactly one of POSITIVE, NEGATIVE or NEUTRAL. Reply with JSON only: {"label":"...","score":0.0} where score is your confidence between 0 and 1.`
	formalityInstruction = `Classify the register of the user's text as exactly Formal or Informal. Reply with JSON only: {"label":"...","score":0.0} where score is your confidence between 0 and 1.`
)

// Classifier runs tone classifications against a chat-completion endpoint.
type Classifier struct {
	client    *openai.Client
	model     string
	maxLength int
	logger    *slog.Logger
}

// NewClassifier creates a Classifier. BaseURL overrides the default OpenAI
// endpoint, which also covers local OpenAI-compatible servers.
func NewClassifier(cfg model.ToneConfig, logger *slog.Logger) (*Classifier, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("tone classifier requires an API key or a base URL")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = model.DefaultConfig().Tone.MaxLength
	}

	return &Classifier{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxLength: maxLength,
		logger:    logger,
	}, nil
}

// Classify runs both classifications over the text. Empty input yields the
// "N/A" labels without an API call; a failed call yields the "Error" label
// for that classification only.
func (c *Classifier) Classify(ctx context.Context, text string) model.ToneResult {
	if strings.TrimSpace(text) == "" {
		na := model.Classification{Label: model.NotApplicable}
		return model.ToneResult{Sentiment: na, Formality: na}
	}

	// Classifier context windows are finite; the leading span is enough
	// for a document-level tone signal.
	text = truncate(text, c.maxLength)

	return model.ToneResult{
		Sentiment: c.classify(ctx, sentimentInstruction, text),
		Formality: c.classify(ctx, formalityInstruction, text),
	}
}

func (c *Classifier) classify(ctx context.Context, instruction, text string) model.Classification {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
		MaxTokens:   50,
	})
	if err != nil {
		c.logger.Warn("tone classification failed", "error", err)
		return model.Classification{Label: "Error"}
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("tone classification returned no choices")
		return model.Classification{Label: "Error"}
	}

	parsed, err := parseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Warn("tone classification unparseable", "error", err)
		return model.Classification{Label: "Error"}
	}
	return parsed
}

// parseClassification reads the model's JSON reply, tolerating markdown
// code fences around it.
func parseClassification(content string) (model.Classification, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed model.Classification
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return model.Classification{}, fmt.Errorf("decode classification: %w", err)
	}
	if parsed.Label == "" {
		return model.Classification{}, fmt.Errorf("classification missing label")
	}
	return parsed, nil
}

func truncate(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}
