// Package extract turns uploaded document bytes into plain text.
//
// Supported formats:
//   - text — UTF-8 passthrough, invalid byte sequences dropped
//   - pdf  — pdfcpu content-stream extraction, pages in order
//   - docx — archive/zip → word/document.xml, one line per paragraph
//
// Extraction never returns an error to callers: malformed files and
// unsupported formats degrade to empty text, with the reason carried in the
// Result status so tests and logs can still see what happened.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/prosecheck/prosecheck/internal/model"
)

// Status classifies the outcome of an extraction.
type Status string

const (
	// StatusOK means text was extracted.
	StatusOK Status = "ok"
	// StatusEmpty means the document parsed fine but contained no text.
	StatusEmpty Status = "empty"
	// StatusUnsupported means the declared format is not one we extract.
	StatusUnsupported Status = "unsupported"
	// StatusFailed means the document could not be parsed.
	StatusFailed Status = "failed"
)

// Result is the soft-failure outcome of an extraction. Text is always safe
// to use: it is empty for every non-OK status.
type Result struct {
	Text   string
	Status Status
	Err    error // cause, for StatusFailed only; informational, never fatal
}

// Extractor dispatches documents to format-specific readers.
type Extractor struct {
	maxFileSize int64
	logger      *slog.Logger
}

// New creates an Extractor. A zero MaxFileSize falls back to the default.
func New(cfg model.ExtractConfig, logger *slog.Logger) *Extractor {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = model.DefaultConfig().Extract.MaxFileSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		maxFileSize: cfg.MaxFileSize,
		logger:      logger,
	}
}

// Extract returns the plain text of a document. It never fails hard; see
// Result for the degradation policy.
func (e *Extractor) Extract(doc model.Document) Result {
	if int64(len(doc.Content)) > e.maxFileSize {
		e.logger.Warn("document exceeds size limit", "name", doc.Name, "size", len(doc.Content))
		return Result{
			Status: StatusFailed,
			Err:    fmt.Errorf("document too large: %d bytes (max %d)", len(doc.Content), e.maxFileSize),
		}
	}

	var (
		text string
		err  error
	)
	switch doc.Format {
	case model.FormatText:
		text = decodeText(doc.Content)
	case model.FormatPDF:
		text, err = extractPDF(doc.Content)
	case model.FormatDocx:
		text, err = extractDocx(doc.Content)
	default:
		e.logger.Debug("unsupported format", "name", doc.Name, "format", doc.Format)
		return Result{Status: StatusUnsupported}
	}

	if err != nil {
		e.logger.Warn("extraction failed", "name", doc.Name, "format", doc.Format, "error", err)
		return Result{Status: StatusFailed, Err: err}
	}
	if text == "" {
		return Result{Status: StatusEmpty}
	}
	return Result{Text: text, Status: StatusOK}
}
