package article

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// md is a shared parser instance; goldmark parsers are safe for concurrent use.
var md = goldmark.New()

// PlainText strips markdown structure from src, returning only the rendered
// text content. Heading markers, emphasis, list bullets, and link syntax are
// dropped; fenced code block content is kept as-is.
func PlainText(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			b.WriteByte(' ')
		case *ast.FencedCodeBlock:
			lines := t.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
			}
			b.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// CountWords returns the whitespace-delimited word count of the markdown
// text content in src. Markdown punctuation does not inflate the count:
// "## Heading" counts one word, "**bold**" counts one word.
func CountWords(src string) int {
	return len(strings.Fields(PlainText(src)))
}
