package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prosecheck/prosecheck/internal/model"
	"github.com/prosecheck/prosecheck/internal/pipeline"
	"github.com/prosecheck/prosecheck/internal/report"
	"github.com/prosecheck/prosecheck/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Analyze multiple documents in parallel",
	Long: `Batch analyzes documents concurrently:
- Accepts files and directories (directories are scanned for .txt, .pdf, .docx)
- Processes documents in parallel with a configurable worker count
- Writes a JSON and Markdown report per document

Example:
  prosecheck batch drafts/
  prosecheck batch a.txt b.pdf c.docx --concurrency 8
  prosecheck batch drafts/ --output-dir ./reports --timeout 5m`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./prosecheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&language, "language", "", "grammar check language (default from config, en-US)")
	batchCmd.Flags().StringVar(&endpoint, "endpoint", "", "LanguageTool-compatible server URL")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable grammar response cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	cfg.Concurrency.Workers = concurrency
	logger := newLogger(cfg.Output.Verbose)

	paths, err := collectDocuments(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found (looking for .txt, .pdf, .docx)")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Analyzing %d document(s) with %d workers\n\n", len(paths), concurrency)

	p := pipeline.New(cfg, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.Process(ctx, paths)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		successCount++

		slug := sanitizeFilename(result.Report.Source)
		if err := writeBatchReports(cfg, result.Report, slug); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}

		issues := len(result.Report.Issues)
		fmt.Fprintf(os.Stderr, "✓ %s (%d issue(s))\n", result.Report.Source, issues)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d document(s) failed", failureCount)
	}
	return nil
}

func writeBatchReports(cfg *model.Config, r *model.Report, slug string) error {
	jsonPath := filepath.Join(outputDir, slug+".json")
	if err := writeReportFile(jsonPath, func(f *os.File) error {
		_, err := report.NewJSONWriter(f, report.WithPrettyPrint()).Write(r)
		return err
	}); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}

	mdPath := filepath.Join(outputDir, slug+".md")
	if err := writeReportFile(mdPath, func(f *os.File) error {
		_, err := report.NewMarkdownWriter(f, cfg.Output.IncludeFooter).Write(r)
		return err
	}); err != nil {
		return fmt.Errorf("write Markdown: %w", err)
	}
	return nil
}

// collectDocuments expands the argument list into supported document paths.
// Directories are scanned one level deep.
func collectDocuments(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if supportedExtension(entry.Name()) {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return paths, nil
}

func supportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".pdf", ".docx":
		return true
	}
	return false
}

// sanitizeFilename makes a report slug from a document name.
func sanitizeFilename(s string) string {
	s = strings.TrimSuffix(filepath.Base(s), filepath.Ext(s))
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "document"
	}
	return s
}
