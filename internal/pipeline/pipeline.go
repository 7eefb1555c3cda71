// Package pipeline orchestrates the complete analysis: extraction,
// readability scoring, grammar checking and the optional tone pass.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/prosecheck/prosecheck/internal/cache"
	"github.com/prosecheck/prosecheck/internal/extract"
	"github.com/prosecheck/prosecheck/internal/grammar"
	"github.com/prosecheck/prosecheck/internal/model"
	"github.com/prosecheck/prosecheck/internal/readability"
	"github.com/prosecheck/prosecheck/internal/tone"
	"github.com/prosecheck/prosecheck/internal/worker"
)

// Pipeline runs documents through the full analysis chain.
type Pipeline struct {
	extractor  *extract.Extractor
	grammar    *grammar.Client
	classifier *tone.Classifier // nil when tone is disabled
	config     *model.Config
	logger     *slog.Logger
}

// New creates a pipeline from the configuration. Grammar checking gets the
// shared engine client with caching and rate limiting wired in; the tone
// classifier is attached only when enabled and constructible.
func New(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	var opts []grammar.Option
	if cfg.Cache.Enabled {
		opts = append(opts, grammar.WithCache(cache.New(cfg.Cache.TTL, cfg.Cache.Dir)))
	}
	if cfg.Grammar.RateLimit > 0 {
		opts = append(opts, grammar.WithLimiter(worker.NewLimiter(cfg.Grammar.RateLimit, cfg.Grammar.Burst)))
	}

	var classifier *tone.Classifier
	if cfg.Tone.Enabled {
		c, err := tone.Shared(cfg.Tone, logger)
		if err != nil {
			logger.Warn("tone classifier unavailable", "error", err)
		} else {
			classifier = c
		}
	}

	return &Pipeline{
		extractor:  extract.New(cfg.Extract, logger),
		grammar:    grammar.Shared(cfg.Grammar, logger, opts...),
		classifier: classifier,
		config:     cfg,
		logger:     logger,
	}
}

// Analyze runs one document through the chain and always produces a report.
// Extraction and engine problems degrade to warnings, never to a nil report.
func (p *Pipeline) Analyze(ctx context.Context, doc model.Document) *model.Report {
	start := time.Now()

	extracted := p.extractor.Extract(doc)

	report := &model.Report{
		ID:            uuid.NewString(),
		Source:        doc.Name,
		Format:        doc.Format,
		ExtractStatus: string(extracted.Status),
		AnalyzedAt:    time.Now().UTC(),
		Issues:        []model.GrammarIssue{},
	}

	switch extracted.Status {
	case extract.StatusUnsupported:
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("unsupported format %q, nothing extracted", doc.Format))
	case extract.StatusFailed:
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("extraction failed: %v", extracted.Err))
	case extract.StatusEmpty:
		report.Warnings = append(report.Warnings, "document contains no text")
	}

	// Readability is pure and fast; grammar and tone each make network
	// calls, so they run concurrently.
	report.Readability = readability.Score(extracted.Text)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		issues, err := p.grammar.Check(gctx, extracted.Text)
		if err != nil {
			p.logger.Warn("grammar check degraded", "source", doc.Name, "error", err)
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("grammar check unavailable: %v", err))
			return nil
		}
		report.Issues = issues
		return nil
	})
	if p.classifier != nil {
		g.Go(func() error {
			result := p.classifier.Classify(gctx, extracted.Text)
			report.Tone = &result
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, they degrade in place

	p.logger.Info("analysis complete",
		"source", doc.Name,
		"format", doc.Format,
		"status", extracted.Status,
		"issues", len(report.Issues),
		"duration", time.Since(start).Round(time.Millisecond))

	return report
}

// AnalyzeFile reads a document from disk and analyzes it. The format comes
// from the file extension.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := model.Document{
		Name:    filepath.Base(path),
		Content: data,
		Format:  model.DetectFormat("", path),
	}
	return p.Analyze(ctx, doc), nil
}
