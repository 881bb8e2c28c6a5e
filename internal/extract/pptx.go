package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// slideNamePattern matches the slide parts of a PowerPoint container.
var slideNamePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PptxExtractor extracts text from a .pptx file, one unit per slide.
// The slide index (0-based) is used as the unit's page.
type PptxExtractor struct{}

// Extract reads every ppt/slides/slideN.xml part in slide order and
// collects its DrawingML text runs.
func (e *PptxExtractor) Extract(data []byte) ([]Unit, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a pptx container: %v", ErrExtraction, err)
	}

	type slide struct {
		number int
		file   *zip.File
	}
	var slides []slide
	for _, f := range reader.File {
		m := slideNamePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slide{number: n, file: f})
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: no slides found", ErrExtraction)
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var units []Unit
	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %v", ErrExtraction, s.number, err)
		}
		text, err := drawingText(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %v", ErrExtraction, s.number, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		units = append(units, Unit{Text: text, Page: s.number - 1})
	}

	return units, nil
}

// drawingText pulls text runs out of a DrawingML stream: <a:t> carries
// text, paragraph ends become newlines.
func drawingText(r io.Reader) (string, error) {
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
			if el.Name.Local == "t" {
				var s string
				if err := dec.DecodeElement(&s, &el); err != nil {
					return "", err
				}
				b.WriteString(s)
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				b.WriteByte('\n')
			}
		}
	}

	return b.String(), nil
}
