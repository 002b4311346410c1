package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/prodkb/prodkb/internal/tables"
)

// MarkdownSource handles Markdown files using goldmark. Headings become
// heading lines (suffixed with a colon so downstream heading detection fires
// regardless of casing), block text becomes body lines, and GFM pipe tables
// become table regions.
type MarkdownSource struct{}

func (s *MarkdownSource) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	out := &Document{SourceType: "md"}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			if !strings.HasSuffix(title, ":") {
				title += ":"
			}
			out.Lines = append(out.Lines, title)
		case *east.Table:
			if region := markdownTableRegion(node, src); len(region) > 0 {
				out.Tables.Regions = append(out.Tables.Regions, region)
			}
		default:
			for _, line := range strings.Split(extractText(n, src), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					out.Lines = append(out.Lines, line)
				}
			}
		}
	}
	return out, nil
}

func markdownTableRegion(table *east.Table, src []byte) tables.Region {
	var region tables.Region
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
		default:
			continue
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, extractText(cell, src))
		}
		if len(cells) > 0 {
			region = append(region, cells)
		}
	}
	return region
}

// extractText gets the text content of a goldmark AST node. Block nodes
// carry their source lines directly; nodes without lines (table cells, list
// items) get their text from the inline children. Never both: the children
// re-cover the same source ranges as Lines().
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
