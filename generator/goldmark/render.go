// Package goldmark renders the generated Markdown pages to HTML for the preview server.
package goldmark

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/toc"
	"znkr.io/doxymd/generator/goldmark/admonitions"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		admonitions.Admonition,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithHeadingAttribute(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(&headingRenderer{}, 100)),
	),
)

// Render converts Markdown to HTML. It also returns the table of contents of all headings below
// the top level as an HTML list, or nil if there are none.
func Render(data []byte) (content, nav []byte, err error) {
	root := md.Parser().Parse(text.NewReader(data))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, data, root); err != nil {
		return nil, nil, fmt.Errorf("rendering markdown: %v", err)
	}

	tree, err := toc.Inspect(root, data, toc.MinDepth(2), toc.Compact(true))
	if err != nil {
		return nil, nil, fmt.Errorf("inspecting headings: %v", err)
	}
	list := toc.RenderList(tree)
	if list == nil {
		return buf.Bytes(), nil, nil
	}
	var tocbuf bytes.Buffer
	if err := md.Renderer().Render(&tocbuf, data, list); err != nil {
		return nil, nil, fmt.Errorf("rendering table of contents: %v", err)
	}
	return buf.Bytes(), tocbuf.Bytes(), nil
}
