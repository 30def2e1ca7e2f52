package render

import (
	"strings"

	"znkr.io/doxymd/generator/dom"
)

// Flow tells whether a node continues the text of the surrounding paragraph or breaks it.
type Flow int

const (
	Inline Flow = iota + 1
	Block
)

func (f Flow) String() string {
	switch f {
	case Inline:
		return "inline"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// flows classifies kinds for the paragraph segmenter. Abstract kinds cover their whole family,
// concrete entries override them.
var flows = map[dom.Kind]Flow{
	dom.KindMarkup:      Inline,
	dom.KindSpecialChar: Inline,
	dom.KindSection:     Block,
	dom.KindList:        Block,
	dom.KindDescription: Block,
	dom.KindGroup:       Block,
	dom.KindRawOutput:   Block,
	dom.KindDiagram:     Block,
	dom.KindDiagramFile: Block,

	dom.KindRef:            Inline,
	dom.KindULink:          Inline,
	dom.KindAnchor:         Inline,
	dom.KindFormula:        Inline,
	dom.KindImage:          Inline,
	dom.KindEmoji:          Inline,
	dom.KindLineBreak:      Inline,
	dom.KindSp:             Inline,
	dom.KindJavadocLiteral: Inline,
	dom.KindHighlight:      Inline,
	dom.KindHTMLOnly:       Inline,
	dom.KindIndexEntry:     Inline,
	dom.KindPrimaryIE:      Inline,
	dom.KindSecondaryIE:    Inline,
	dom.KindTerm:           Inline,
	dom.KindCaption:        Inline,
	dom.KindParameterName:  Inline,
	dom.KindParameterType:  Inline,
	dom.KindXRefTitle:      Inline,
	dom.KindSummary:        Inline,

	dom.KindTitle:          Block,
	dom.KindHeading:        Block,
	dom.KindPara:           Block,
	dom.KindListItem:       Block,
	dom.KindVariableList:   Block,
	dom.KindTable:          Block,
	dom.KindRow:            Block,
	dom.KindEntry:          Block,
	dom.KindSimpleSect:     Block,
	dom.KindSimpleSectSep:  Block,
	dom.KindParameterList:  Block,
	dom.KindXRefSect:       Block,
	dom.KindProgramListing: Block,
	dom.KindCodeLine:       Block,
	dom.KindVerbatim:       Block,
	dom.KindPreformatted:   Block,
	dom.KindBlockQuote:     Block,
	dom.KindHRuler:         Block,
	dom.KindTocList:        Block,
	dom.KindTocItem:        Block,
	dom.KindDetails:        Block,
}

func classify(schema *dom.Schema, k dom.Kind) (Flow, bool) {
	for _, a := range schema.Chain(k) {
		if f, ok := flows[a]; ok {
			return f, true
		}
	}
	return 0, false
}

// FlowOf returns the paragraph flow of n. An empty paragraph nested inside a paragraph is the
// pilcrow and flows inline. htmlonly flows inline unless it's marked as block.
func (r *Renderer) FlowOf(n *dom.Node) Flow {
	switch {
	case n.Kind == dom.KindPara && len(n.Children) == 0:
		return Inline
	case n.Kind == dom.KindHTMLOnly && n.Attr("block") == "yes":
		return Block
	}
	f, ok := classify(r.opts.Schema, n.Kind)
	if !ok {
		panic(&ConfigError{Msg: "no paragraph flow for kind", Kinds: []dom.Kind{n.Kind}})
	}
	return f
}

// renderPara segments the mixed content of a paragraph: consecutive text and inline children are
// collected into one <p> element, block children end the current paragraph and are emitted as
// they are.
func renderPara(r *Renderer, n *dom.Node) []string {
	return r.segment(n.Children)
}

func (r *Renderer) segment(cs []dom.Content) []string {
	var lines []string
	var sb strings.Builder
	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			lines = append(lines, "<p>"+s+"</p>")
		}
		sb.Reset()
	}

	for _, c := range cs {
		switch c := c.(type) {
		case dom.Text:
			sb.WriteString(inlineText(string(c)))
		case *dom.Node:
			if r.FlowOf(c) == Inline {
				sb.WriteString(r.RenderInline(c))
				continue
			}
			flush()
			lines = append(lines, r.RenderBlock(c)...)
		}
	}
	flush()
	return lines
}

func renderParaString(r *Renderer, n *dom.Node) string {
	if len(n.Children) == 0 {
		return "¶"
	}
	return r.compact(n.Children)
}

// RenderCompact renders the children of ns as HTML on a single line, for places that can't hold
// Markdown blocks like table cells. Paragraphs stay separate <p> elements, a lone paragraph is
// unwrapped. Nil nodes are skipped.
func (r *Renderer) RenderCompact(ns ...*dom.Node) string {
	var cs []dom.Content
	for _, n := range ns {
		if n != nil {
			cs = append(cs, n.Children...)
		}
	}
	return r.compact(cs)
}

func (r *Renderer) compact(cs []dom.Content) string {
	lines := r.htmlOnly().segment(cs)
	if len(lines) == 1 {
		if s, ok := strings.CutPrefix(lines[0], "<p>"); ok {
			if s, ok := strings.CutSuffix(s, "</p>"); ok {
				return s
			}
		}
	}
	return strings.Join(lines, "")
}
