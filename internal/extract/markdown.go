package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor extracts the plain text of a .md file as a single
// unit (page 0), dropping markup but keeping block structure as newlines.
type MarkdownExtractor struct {
	parser goldmark.Markdown
}

// Extract parses the markdown into an AST and collects its text content.
func (e *MarkdownExtractor) Extract(data []byte) ([]Unit, error) {
	if e.parser == nil {
		e.parser = goldmark.New(goldmark.WithExtensions(extension.Table))
	}

	doc := e.parser.Parser().Parse(text.NewReader(data))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(data))
			if node.HardLineBreak() || node.SoftLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(data))
			}
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	content := b.String()
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	return []Unit{{Text: content, Page: 0}}, nil
}
