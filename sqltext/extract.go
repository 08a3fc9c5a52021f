package sqltext

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// ExtractCodeBlock returns the body of the SQL code block in a markdown
// response. A fence tagged "sql" wins; otherwise the first untagged fence is
// used. It reports false when the text contains neither.
func ExtractCodeBlock(text string) (string, bool) {
	if !strings.Contains(text, "```") && !strings.Contains(text, "~~~") {
		return "", false
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(text), p)

	var tagged, untagged *ast.CodeBlock
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		block, ok := node.(*ast.CodeBlock)
		if !ok || !entering || !block.IsFenced {
			return ast.GoToNext
		}

		switch fenceLanguage(block.Info) {
		case "sql":
			tagged = block
			return ast.Terminate
		case "":
			if untagged == nil {
				untagged = block
			}
		}
		return ast.GoToNext
	})

	switch {
	case tagged != nil:
		return strings.TrimSpace(string(tagged.Literal)), true
	case untagged != nil:
		return strings.TrimSpace(string(untagged.Literal)), true
	default:
		return "", false
	}
}

// fenceLanguage returns the lowercased first word of a fence info string.
func fenceLanguage(info []byte) string {
	fields := bytes.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(string(fields[0]))
}
