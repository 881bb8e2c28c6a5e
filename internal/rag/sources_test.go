package rag

import (
	"reflect"
	"testing"
)

func TestAttributeSources(t *testing.T) {
	tests := []struct {
		name string
		used []ScoredChunk
		want []string
	}{
		{
			name: "no used chunks",
			used: nil,
			want: []string{},
		},
		{
			name: "single chunk",
			used: []ScoredChunk{{Source: "a.pdf", Page: 0}},
			want: []string{"a.pdf (Page 1)"},
		},
		{
			name: "duplicates collapse to one label",
			used: []ScoredChunk{
				{Source: "a.pdf", Page: 0},
				{Source: "a.pdf", Page: 0},
				{Source: "a.pdf", Page: 0},
			},
			want: []string{"a.pdf (Page 1)"},
		},
		{
			name: "distinct pages of the same file stay distinct",
			used: []ScoredChunk{
				{Source: "a.pdf", Page: 2},
				{Source: "a.pdf", Page: 0},
			},
			want: []string{"a.pdf (Page 1)", "a.pdf (Page 3)"},
		},
		{
			name: "sorted across files",
			used: []ScoredChunk{
				{Source: "zebra.docx", Page: 0},
				{Source: "alpha.pdf", Page: 4},
			},
			want: []string{"alpha.pdf (Page 5)", "zebra.docx (Page 1)"},
		},
		{
			name: "source paths reduce to basename",
			used: []ScoredChunk{{Source: "/data/uploads/report.pdf", Page: 1}},
			want: []string{"report.pdf (Page 2)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AttributeSources(tt.used)
			if got == nil {
				t.Fatal("AttributeSources() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AttributeSources() = %v, want %v", got, tt.want)
			}
		})
	}
}
