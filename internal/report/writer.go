// Package report renders analysis reports as JSON, Markdown, and terminal
// summaries.
package report

import (
	"io"

	"github.com/prosecheck/prosecheck/internal/model"
)

// Writer outputs one analysis report to a configured destination.
type Writer interface {
	// Write renders the report. Returns the number of bytes written.
	Write(report *model.Report) (int, error)
}

// MultiWriter fans a report out to several Writers, stopping on the first
// error. Useful for terminal-plus-file output.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report through every writer in order.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
