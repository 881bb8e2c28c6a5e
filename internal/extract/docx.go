package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DocxExtractor extracts the full text of a .docx file as a single unit.
// docx has no native page concept, so the unit carries page 0.
type DocxExtractor struct{}

// Extract reads word/document.xml from the OPC container and collects the
// text runs, one line per paragraph.
func (e *DocxExtractor) Extract(data []byte) ([]Unit, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a docx container: %v", ErrExtraction, err)
	}

	var doc *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: word/document.xml missing", ErrExtraction)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	text, err := wordprocessingText(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return []Unit{{Text: text, Page: 0}}, nil
}

// wordprocessingText pulls the text runs out of a WordprocessingML stream:
// <w:t> carries text, <w:tab> a tab, <w:br> and paragraph ends a newline.
func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				var s string
				if err := dec.DecodeElement(&s, &el); err != nil {
					return "", err
				}
				b.WriteString(s)
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				b.WriteByte('\n')
			}
		}
	}

	return b.String(), nil
}
