// Package admonitions parses Docusaurus style admonitions:
//
//	:::warning[Deprecated]
//	Use something else.
//	:::
package admonitions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type Node struct {
	ast.BaseBlock
	Label string // note, tip, info, warning, danger or caution
	Title string // Inline HTML
}

var Kind = ast.NewNodeKind("Admonition")

func (n *Node) Kind() ast.NodeKind { return Kind }

func (n *Node) Dump(source []byte, level int) {
	m := map[string]string{"Type": n.Label, "Title": n.Title}
	ast.DumpHelper(n, source, level, m, nil)
}

var Admonition goldmark.Extender = &admonitions{}

type admonitions struct{}

func (e *admonitions) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&blockParser{}, 999),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&nodeRenderer{}, 500),
		),
	)
}

type blockParser struct{}

var _ parser.BlockParser = (*blockParser)(nil)

func (p *blockParser) Trigger() []byte {
	return []byte{':'}
}

var (
	openRe  = regexp.MustCompile(`^:::(note|tip|info|warning|danger|caution)(?:\[(.*)\]|[ \t]+(.*?))?[ \t]*$`)
	closeRe = regexp.MustCompile(`^:::[ \t]*$`)
)

// consume advances the reader to the end of the current line, leaving the newline.
func consume(reader text.Reader) {
	line, segment := reader.PeekLine()
	n := segment.Stop - segment.Start + segment.Padding
	if len(line) > 0 && line[len(line)-1] == '\n' {
		n--
	}
	reader.Advance(n)
}

func (p *blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 {
		return nil, parser.NoChildren
	}

	m := openRe.FindSubmatch(util.TrimRightSpace(line[pos:]))
	if m == nil {
		return nil, parser.NoChildren
	}
	consume(reader)

	title := string(m[2])
	if title == "" {
		title = string(m[3])
	}
	return &Node{Label: string(m[1]), Title: title}, parser.HasChildren
}

func (p *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if pos := pc.BlockOffset(); pos >= 0 && closeRe.Match(util.TrimRightSpace(line[pos:])) {
		consume(reader)
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
}

func (b *blockParser) CanInterruptParagraph() bool {
	return true
}

func (b *blockParser) CanAcceptIndentedLine() bool {
	return false
}

type nodeRenderer struct{}

var _ renderer.NodeRenderer = (*nodeRenderer)(nil)

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(Kind, r.render)
}

func (r *nodeRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Node)
	if entering {
		title := n.Title
		if title == "" {
			title = strings.ToUpper(n.Label[:1]) + n.Label[1:]
		}
		fmt.Fprintf(w, `<div class="admonition %s"><p class="admonition-title">%s</p>`+"\n", n.Label, title)
	} else {
		w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}
