package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prosecheck/prosecheck/internal/history"
	"github.com/prosecheck/prosecheck/internal/model"
	"github.com/prosecheck/prosecheck/internal/pipeline"
	"github.com/prosecheck/prosecheck/internal/report"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	language     string
	endpoint     string
	noCache      bool
	noFooter     bool
	toneEnabled  bool
	toneModel    string
	saveHistory  bool
	maxIssues    int
	httpProxy    string
	httpsProxy   string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document for readability and grammar issues",
	Long: `Analyze extracts plain text from a document and reports:
- Word, sentence and character counts
- Readability scores (Flesch, grade-level indices, Text Standard)
- Grammar and style issues with suggested corrections
- Optional sentiment and formality classification

Pass "-" to read text from stdin.

Example:
  prosecheck analyze essay.txt
  prosecheck analyze report.pdf --json report.json --md report.md
  prosecheck analyze thesis.docx --language en-GB --tone
  cat draft.txt | prosecheck analyze -`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().IntVar(&maxIssues, "max-issues", 20, "max issues printed to the terminal (0 = all)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Engine flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&language, "language", "", "grammar check language (default from config, en-US)")
	analyzeCmd.Flags().StringVar(&endpoint, "endpoint", "", "LanguageTool-compatible server URL")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable grammar response cache")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Tone flags
	analyzeCmd.Flags().BoolVar(&toneEnabled, "tone", false, "enable sentiment/formality classification")
	analyzeCmd.Flags().StringVar(&toneModel, "tone-model", "", "tone classifier model name")

	// History flags
	analyzeCmd.Flags().BoolVar(&saveHistory, "history", false, "record this analysis in the history database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	logger := newLogger(cfg.Output.Verbose)

	if toneEnabled && cfg.Tone.APIKey == "" && cfg.Tone.BaseURL == "" {
		return fmt.Errorf("tone classification needs OPENAI_API_KEY or tone.base_url")
	}

	p := pipeline.New(cfg, logger)

	var result *model.Report
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result = p.Analyze(ctx, model.Document{
			Name:    "stdin",
			Content: data,
			Format:  model.FormatText,
		})
	} else {
		result, err = p.AnalyzeFile(ctx, path)
		if err != nil {
			return err
		}
	}

	if err := renderReport(cfg, result, outJSON, outMD); err != nil {
		return err
	}

	if saveHistory || cfg.History.Enabled {
		if err := recordHistory(ctx, cfg, result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history record failed: %v\n", err)
		}
	}

	return nil
}

// applyAnalyzeFlags layers the analysis flags over cfg. Only flags the user
// actually set override config-file values.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *model.Config) {
	if language != "" {
		cfg.Grammar.Language = language
	}
	if endpoint != "" {
		cfg.Grammar.Endpoint = endpoint
	}
	if httpProxy != "" {
		cfg.Grammar.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.Grammar.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if toneEnabled {
		cfg.Tone.Enabled = true
	}
	if toneModel != "" {
		cfg.Tone.Model = toneModel
	}
	if cmd.Flags().Changed("max-issues") {
		cfg.Output.MaxIssues = maxIssues
	}
}

// renderReport writes the terminal summary plus any requested file outputs.
func renderReport(cfg *model.Config, r *model.Report, jsonPath, mdPath string) error {
	term := report.NewTerminalWriter(os.Stdout,
		report.WithMaxIssues(cfg.Output.MaxIssues),
		report.WithVerbose(cfg.Output.Verbose))
	if _, err := term.Write(r); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	if jsonPath != "" {
		if err := writeReportFile(jsonPath, func(f *os.File) error {
			_, err := report.NewJSONWriter(f, report.WithPrettyPrint()).Write(r)
			return err
		}); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := writeReportFile(mdPath, func(f *os.File) error {
			_, err := report.NewMarkdownWriter(f, cfg.Output.IncludeFooter).Write(r)
			return err
		}); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	return nil
}

func writeReportFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return write(f)
}

func recordHistory(ctx context.Context, cfg *model.Config, r *model.Report) error {
	path, err := historyPath(cfg)
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, r)
}
