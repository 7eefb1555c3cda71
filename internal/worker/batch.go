package worker

import (
	"context"

	"github.com/prosecheck/prosecheck/internal/model"
)

// Analyzer is the part of the pipeline the batch processor needs.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob analyzes a single file.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one file analysis.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the job error, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor fans file analyses out over a pool.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a processor with the given parallelism.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process analyzes every path and returns one result per path, in
// completion order.
func (b *BatchProcessor) Process(ctx context.Context, paths []string) []*AnalyzeResult {
	pool := NewPool(b.concurrency)
	pool.Start()

	// The watcher must not outlive the batch when ctx is never cancelled.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	go func() {
		for _, path := range paths {
			pool.Submit(&AnalyzeJob{Path: path, Analyzer: b.analyzer})
		}
		pool.Close()
	}()

	var results []*AnalyzeResult
	for _, r := range pool.Wait() {
		if ar, ok := r.(*AnalyzeResult); ok {
			results = append(results, ar)
		}
	}
	close(done)
	return results
}
