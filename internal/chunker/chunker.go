package chunker

import (
	"strings"
	"unicode/utf8"
)

// Default splitting parameters, matching the ingestion defaults.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// separators in order of preference: paragraph, line, sentence, word.
// A chunk boundary is placed at the last occurrence of the highest-ranked
// separator inside the window; if none qualifies the window is cut hard.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter splits text into overlapping chunks of bounded size.
// Size and overlap are measured in runes. Splitting is deterministic:
// the same input always produces the same sequence of chunks.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a Splitter. Invalid parameters are clamped:
// non-positive size falls back to DefaultSize, negative overlap to zero,
// and an overlap not smaller than the size to a fifth of the size.
func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &Splitter{size: size, overlap: overlap}
}

// Size returns the maximum chunk size in runes.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the number of runes consecutive chunks share.
func (s *Splitter) Overlap() int { return s.overlap }

// Split splits text into chunks of at most Size runes, consecutive chunks
// sharing at most Overlap runes. Boundaries prefer natural breaks
// (paragraph > line > sentence > word) over hard cuts. An input that fits
// in one chunk is returned unchanged. Empty and whitespace-only inputs
// produce no chunks: a chunk is never empty, so "any input yields at
// least one chunk" holds only for inputs with visible content.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := cutOffset(string(runes[start:end]), s.overlap)
		if cut < 0 {
			cut = s.size
		}

		chunks = append(chunks, string(runes[start:start+cut]))
		// The cut always lands past the overlap, so the window advances.
		start += cut - s.overlap
	}

	return chunks
}

// cutOffset returns the rune offset to cut the window at, preferring the
// last occurrence of the strongest separator. Offsets at or below minCut
// are rejected so the splitter always makes forward progress.
// Returns -1 when no separator qualifies.
func cutOffset(window string, minCut int) int {
	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx == -1 {
			continue
		}
		cut := utf8.RuneCountInString(window[:idx+len(sep)])
		if cut > minCut {
			return cut
		}
	}
	return -1
}
