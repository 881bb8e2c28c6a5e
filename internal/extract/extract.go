// Package extract turns uploaded document bytes into ordered text units
// with page attribution, dispatching on file extension.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrExtraction is returned when a supported file cannot be read
// (corrupt container, malformed content). The underlying cause is wrapped.
var ErrExtraction = errors.New("extraction failed")

// UnsupportedFileTypeError is returned when no extractor is registered
// for a file's extension.
type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Ext)
}

// Unit is one extracted span of text with the page (or slide/sheet index)
// it came from. Pages are 0-based; formats without a page concept use 0.
type Unit struct {
	Text string
	Page int
}

// Extractor extracts text units from raw file bytes.
type Extractor interface {
	Extract(data []byte) ([]Unit, error)
}

// Registry dispatches extraction by lowercased file extension.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates a Registry with the default extractors registered:
// .pdf (per page), .docx (single unit), .pptx (per slide), .xlsx (per
// sheet) and .md (single unit).
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	r.Register(".pdf", &PDFExtractor{})
	r.Register(".docx", &DocxExtractor{})
	r.Register(".pptx", &PptxExtractor{})
	r.Register(".xlsx", &XlsxExtractor{})
	r.Register(".md", &MarkdownExtractor{})
	return r
}

// Register associates an extractor with a file extension (e.g. ".pdf").
func (r *Registry) Register(ext string, e Extractor) {
	r.extractors[strings.ToLower(ext)] = e
}

// Supported reports whether an extractor is registered for the filename's
// extension.
func (r *Registry) Supported(filename string) bool {
	_, ok := r.extractors[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extract dispatches to the extractor registered for the filename's
// extension. Returns *UnsupportedFileTypeError for unknown extensions.
func (r *Registry) Extract(filename string, data []byte) ([]Unit, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := r.extractors[ext]
	if !ok {
		return nil, &UnsupportedFileTypeError{Ext: ext}
	}
	units, err := extractor.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}
	return units, nil
}
