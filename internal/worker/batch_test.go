package worker

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/prosecheck/prosecheck/internal/model"
)

// stubAnalyzer returns a fixed report for every path.
type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	return &model.Report{ID: path, Source: path}, nil
}

func TestBatchProcessorProcessesAllPaths(t *testing.T) {
	b := NewBatchProcessor(stubAnalyzer{}, 3)

	paths := []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"}
	results := b.Process(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("results = %d, want %d", len(results), len(paths))
	}
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error %v", r.Path, r.Error)
		}
		seen[r.Path] = true
	}
	for _, p := range paths {
		if !seen[p] {
			t.Errorf("missing result for %s", p)
		}
	}
}

func TestBatchProcessorReleasesWatcher(t *testing.T) {
	base := runtime.NumGoroutine()

	// An uncancelled context must not strand the shutdown watcher.
	b := NewBatchProcessor(stubAnalyzer{}, 2)
	for i := 0; i < 25; i++ {
		b.Process(context.Background(), []string{"a.txt", "b.txt"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= base+3 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("goroutines = %d after 25 batches, started at %d", runtime.NumGoroutine(), base)
}
