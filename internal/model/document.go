package model

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported document type.
type Format string

const (
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatDocx    Format = "docx"
	FormatUnknown Format = "unknown"
)

// Document is one analysis input: raw bytes plus a declared format.
// It lives only for the duration of a single analysis.
type Document struct {
	Name    string `json:"name,omitempty"` // original filename, if any
	Content []byte `json:"-"`
	Format  Format `json:"format"`
}

// DetectFormat maps a MIME type or file extension to a Format.
// Anything unrecognized is FormatUnknown; the extractor treats that as
// empty input rather than an error.
func DetectFormat(mimeType, filename string) Format {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])) {
	case "text/plain":
		return FormatText
	case "application/pdf":
		return FormatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDocx
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return FormatText
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDocx
	}

	return FormatUnknown
}
