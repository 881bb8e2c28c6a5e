package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts text from PDF files, one unit per page.
type PDFExtractor struct{}

// Extract returns the plain text of each non-empty page. Page numbers are
// 0-based in the returned units.
func (e *PDFExtractor) Extract(data []byte) (units []Unit, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			units = nil
			err = fmt.Errorf("%w: pdf parse panic: %v", ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrExtraction, i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		units = append(units, Unit{Text: text, Page: i - 1})
	}

	return units, nil
}
