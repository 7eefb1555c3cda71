package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/prosecheck/prosecheck/internal/model"
	"github.com/prosecheck/prosecheck/internal/severity"
)

// MarkdownWriter outputs reports in Markdown for documentation and sharing.
type MarkdownWriter struct {
	baseWriter

	includeFooter bool
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, includeFooter bool) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter:    newBaseWriter(output),
		includeFooter: includeFooter,
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeReadability(md, report)
	w.writeIssues(md, report)
	w.writeTone(md, report)
	w.writeWarnings(md, report)
	if w.includeFooter {
		md.PlainText("---")
		md.PlainText("_Generated by prosecheck_")
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Document Analysis Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Format", string(report.Format)},
			{"Analyzed", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Extraction", report.ExtractStatus},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeReadability(md *markdown.Markdown, report *model.Report) {
	md.H2("Readability")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Readability.Metrics))
	for _, m := range report.Readability.Metrics {
		rows = append(rows, []string{m.Name, escapeCell(m.Value.String()), indicator(severity.ForMetric(m.Name, m.Value))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value", "Assessment"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.Report) {
	md.H2("Grammar and Style Issues")
	md.PlainText("")

	if len(report.Issues) == 0 {
		md.Tip("No grammar or style issues detected.")
		md.PlainText("")
		return
	}

	md.PlainTextf("Found %d issue(s).", len(report.Issues))
	md.PlainText("")

	rows := make([][]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		rows = append(rows, []string{
			"`" + escapeCell(issue.Context) + "`",
			escapeCell(issue.Message),
			escapeCell(issue.Category),
			escapeCell(issue.Suggested),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Context", "Message", "Rule", "Suggested"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTone(md *markdown.Markdown, report *model.Report) {
	if report.Tone == nil {
		return
	}
	md.H2("Tone")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Dimension", "Label", "Confidence"},
		Rows: [][]string{
			{"Sentiment", report.Tone.Sentiment.Label, confidence(report.Tone.Sentiment)},
			{"Formality", report.Tone.Formality.Label, confidence(report.Tone.Formality)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.Report) {
	if len(report.Warnings) == 0 {
		return
	}
	md.Warningf("%s", strings.Join(report.Warnings, "; "))
	md.PlainText("")
}

// indicator maps a concern level to its display glyph.
func indicator(level severity.Level) string {
	switch level {
	case severity.Low:
		return "🟢"
	case severity.Medium:
		return "🟠"
	case severity.High:
		return "🔴"
	default:
		return "-"
	}
}

func confidence(c model.Classification) string {
	if c.Score == 0 {
		return model.NotApplicable
	}
	return strconv.FormatFloat(c.Score, 'f', 2, 64)
}

// escapeCell keeps table cells from breaking on literal pipes and newlines.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
