package rag

import (
	"fmt"
	"path/filepath"
	"sort"
)

// AttributeSources builds the source labels for the chunks that backed
// an answer: "<basename> (Page <n>)" with 1-based pages, deduplicated
// and sorted. Always returns a non-nil slice.
func AttributeSources(used []ScoredChunk) []string {
	seen := make(map[string]struct{}, len(used))
	sources := make([]string, 0, len(used))
	for _, chunk := range used {
		label := fmt.Sprintf("%s (Page %d)", filepath.Base(chunk.Source), chunk.Page+1)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		sources = append(sources, label)
	}
	sort.Strings(sources)
	return sources
}
