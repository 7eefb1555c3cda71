package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/prosecheck/prosecheck/internal/model"
	"github.com/prosecheck/prosecheck/internal/severity"
)

// TerminalWriter outputs human-readable text summaries for terminal display.
// Plain ASCII formatting, so output pipes cleanly to files and other tools.
type TerminalWriter struct {
	baseWriter

	// maxIssues caps the number of issues printed; 0 prints all.
	maxIssues int
	verbose   bool
}

// TerminalWriterOption configures a TerminalWriter.
type TerminalWriterOption func(*TerminalWriter)

// WithMaxIssues caps the printed issue list.
func WithMaxIssues(n int) TerminalWriterOption {
	return func(w *TerminalWriter) { w.maxIssues = n }
}

// WithVerbose enables per-issue rule details.
func WithVerbose(verbose bool) TerminalWriterOption {
	return func(w *TerminalWriter) { w.verbose = verbose }
}

// NewTerminalWriter creates a TerminalWriter that outputs to the given writer.
func NewTerminalWriter(output io.Writer, opts ...TerminalWriterOption) *TerminalWriter {
	w := &TerminalWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report summary.
func (w *TerminalWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== %s ===\n", report.Source)
	fmt.Fprintf(&sb, "Format: %s | Extraction: %s\n\n", report.Format, report.ExtractStatus)

	sb.WriteString("Readability\n")
	for _, m := range report.Readability.Metrics {
		level := severity.ForMetric(m.Name, m.Value)
		if level == severity.Unknown {
			fmt.Fprintf(&sb, "  %-36s %s\n", m.Name, m.Value)
		} else {
			fmt.Fprintf(&sb, "  %-36s %-10s [%s]\n", m.Name, m.Value, level.Color())
		}
	}
	sb.WriteString("\n")

	w.writeIssues(&sb, report)
	w.writeTone(&sb, report)

	for _, warning := range report.Warnings {
		fmt.Fprintf(&sb, "Warning: %s\n", warning)
	}

	return io.WriteString(w.output, sb.String())
}

func (w *TerminalWriter) writeIssues(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "Issues: %d\n", len(report.Issues))

	shown := report.Issues
	if w.maxIssues > 0 && len(shown) > w.maxIssues {
		shown = shown[:w.maxIssues]
	}
	for _, issue := range shown {
		fmt.Fprintf(sb, "  [%d:%d] %q: %s\n", issue.Offset, issue.Offset+issue.Length, issue.Context, issue.Message)
		if issue.Suggested != model.NotApplicable {
			fmt.Fprintf(sb, "        suggested: %s\n", issue.Suggested)
		}
		if w.verbose {
			fmt.Fprintf(sb, "        rule: %s (%s)\n", issue.Category, issue.RuleName)
		}
	}
	if hidden := len(report.Issues) - len(shown); hidden > 0 {
		fmt.Fprintf(sb, "  ... and %d more\n", hidden)
	}
	sb.WriteString("\n")
}

func (w *TerminalWriter) writeTone(sb *strings.Builder, report *model.Report) {
	if report.Tone == nil {
		return
	}
	fmt.Fprintf(sb, "Tone: sentiment=%s formality=%s\n\n",
		report.Tone.Sentiment.Label, report.Tone.Formality.Label)
}
