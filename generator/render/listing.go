package render

import (
	"fmt"
	"strconv"
	"strings"

	"znkr.io/doxymd/generator/dom"
	"znkr.io/doxymd/generator/highlight"
)

func registerListing(reg Registerer) {
	reg.Lines(dom.KindProgramListing, renderProgramListing)
	reg.String(dom.KindCodeLine, renderCodeLine)
	reg.String(dom.KindHighlight, renderHighlight)
}

func renderProgramListing(r *Renderer, n *dom.Node) []string {
	open := `<div class="doxyProgramListing">`
	if lang := highlight.LangFromFilename(n.Attr("filename")); lang != "" {
		open = fmt.Sprintf(`<div class="doxyProgramListing" data-language="%s">`, EscapeAttr(lang))
	}
	lines := []string{open}
	for _, cl := range n.All(dom.KindCodeLine) {
		lines = append(lines, r.RenderBlock(cl)...)
	}
	return append(lines, "</div>")
}

func renderCodeLine(r *Renderer, n *dom.Node) string {
	var sb strings.Builder
	sb.WriteString(`<div class="doxyCodeLine">`)

	if ln := n.Attr("lineno"); ln != "" {
		if num, err := strconv.Atoi(ln); err != nil {
			r.log.Warn("invalid line number", "lineno", ln)
		} else {
			number := strconv.Itoa(num)
			if refid := n.Attr("refid"); refid != "" {
				number = r.Link(refid, n.Attr("refkind"), number)
			}
			if r.lineAnchors {
				fmt.Fprintf(&sb, `<span class="doxyLineNumber" id="l%05d">%s</span>`, num, number)
			} else {
				fmt.Fprintf(&sb, `<span class="doxyLineNumber">%s</span>`, number)
			}
		}
	}

	sb.WriteString(`<span class="doxyLineContent">`)
	sb.WriteString(r.code(n.Children))
	sb.WriteString(`</span></div>`)
	return sb.String()
}

// code renders the content of a code line. Unlike running text, white space is significant.
func (r *Renderer) code(cs []dom.Content) string {
	var sb strings.Builder
	for _, c := range cs {
		switch c := c.(type) {
		case dom.Text:
			sb.WriteString(Escape(string(c)))
		case *dom.Node:
			sb.WriteString(r.RenderInline(c))
		}
	}
	return sb.String()
}

func renderHighlight(r *Renderer, n *dom.Node) string {
	class := n.Attr("class")
	tok, ok := highlight.TokenType(class)
	if !ok {
		r.log.Warn("unknown highlight class, using plain style", "class", class)
	}
	inner := r.code(n.Children)
	css := highlight.Class(tok)
	if css == "" || inner == "" {
		return inner
	}
	return `<span class="` + css + `">` + inner + `</span>`
}
