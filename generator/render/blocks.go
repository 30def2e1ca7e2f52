package render

import (
	"strings"

	"znkr.io/doxymd/generator/dom"
)

func registerBlocks(reg Registerer) {
	reg.Lines(dom.KindPara, renderPara)
	reg.String(dom.KindPara, renderParaString)

	reg.Lines(dom.KindDescription, renderChildren)
	reg.String(dom.KindDescription, renderChildrenString)
	reg.Lines(dom.KindGroup, renderChildren)
	reg.String(dom.KindGroup, renderChildrenString)

	reg.Lines(dom.KindBlockQuote, renderBlockQuote)
	reg.Lines(dom.KindDetails, renderDetails)
	reg.Lines(dom.KindHRuler, func(*Renderer, *dom.Node) []string { return []string{"<hr/>"} })
	reg.Lines(dom.KindTocList, renderTocList)
	reg.String(dom.KindTocItem, renderTocItem)
	reg.Lines(dom.KindVerbatim, renderVerbatim)
	reg.Lines(dom.KindPreformatted, renderPreformatted)
	reg.Lines(dom.KindSimpleSectSep, renderNothing)

	reg.Lines(dom.KindRawOutput, renderRawOutput)
	reg.String(dom.KindRawOutput, renderRawOutputString)

	reg.Lines(dom.KindDiagram, renderDiagram)
	reg.Lines(dom.KindDiagramFile, renderDiagramFile)
	reg.String(dom.KindDiagramFile, renderDiagramFileString)
}

func renderNothing(*Renderer, *dom.Node) []string { return nil }

func renderChildren(r *Renderer, n *dom.Node) []string {
	return r.RenderBlockMany(n.Children)
}

func renderChildrenString(r *Renderer, n *dom.Node) string {
	return r.compact(n.Children)
}

func renderBlockQuote(r *Renderer, n *dom.Node) []string {
	lines := []string{"<blockquote>"}
	lines = append(lines, r.RenderBlockMany(n.Children)...)
	return append(lines, "</blockquote>")
}

func renderDetails(r *Renderer, n *dom.Node) []string {
	lines := []string{"<details>"}
	summary := n.First(dom.KindSummary)
	if summary != nil {
		lines = append(lines, "<summary>"+r.RenderInline(summary)+"</summary>")
	}
	for _, c := range n.Children {
		if c, ok := c.(*dom.Node); ok && c != summary {
			lines = append(lines, r.RenderBlock(c)...)
		}
	}
	return append(lines, "</details>")
}

func renderTocList(r *Renderer, n *dom.Node) []string {
	lines := []string{`<ul class="doxyTocList">`}
	for _, item := range n.All(dom.KindTocItem) {
		lines = append(lines, "<li>"+r.RenderInline(item)+"</li>")
	}
	return append(lines, "</ul>")
}

func renderTocItem(r *Renderer, n *dom.Node) string {
	label := strings.TrimSpace(r.RenderInlineMany(n.Children))
	id := n.ID()
	if id == "" {
		return label
	}
	return `<a href="#` + EscapeAttr(r.resolver.Anchor(id)) + `">` + label + `</a>`
}

// fence returns a code fence that is longer than any run of backticks in text.
func fence(text string) string {
	longest, run := 0, 0
	for _, c := range text {
		if c == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

func fenced(lang, text string) []string {
	text = strings.Trim(text, "\n")
	f := fence(text)
	lines := []string{"", f + lang}
	if text != "" {
		lines = append(lines, strings.Split(text, "\n")...)
	}
	return append(lines, f, "")
}

// pre is the HTML form of a fenced block. Line breaks are character references so that the block
// stays on one line.
func pre(lang, text string) string {
	open := "<pre><code>"
	if lang != "" {
		open = `<pre><code class="language-` + lang + `">`
	}
	text = strings.ReplaceAll(Escape(strings.Trim(text, "\n")), "\n", "&#10;")
	return open + text + "</code></pre>"
}

func renderVerbatim(r *Renderer, n *dom.Node) []string {
	if r.html {
		return []string{pre("", n.Text())}
	}
	return fenced("", n.Text())
}

func renderDiagram(r *Renderer, n *dom.Node) []string {
	if r.html {
		return []string{pre(string(n.Kind), n.Text())}
	}
	return fenced(string(n.Kind), n.Text())
}

func renderPreformatted(r *Renderer, n *dom.Node) []string {
	var sb strings.Builder
	sb.WriteString(`<pre class="doxyPreformatted">`)
	for _, c := range n.Children {
		switch c := c.(type) {
		case dom.Text:
			sb.WriteString(strings.ReplaceAll(Escape(string(c)), "\n", "<br/>"))
		case *dom.Node:
			sb.WriteString(r.RenderInline(c))
		}
	}
	sb.WriteString("</pre>")
	return []string{sb.String()}
}

func renderRawOutput(r *Renderer, n *dom.Node) []string {
	if n.Kind != dom.KindHTMLOnly {
		r.log.Debug("dropping output for other format", "kind", n.Kind)
		return nil
	}
	var lines []string
	for l := range strings.SplitSeq(n.Text(), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func renderRawOutputString(r *Renderer, n *dom.Node) string {
	if n.Kind != dom.KindHTMLOnly {
		r.log.Debug("dropping output for other format", "kind", n.Kind)
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(n.Text(), "\n", " "))
}

func renderDiagramFile(r *Renderer, n *dom.Node) []string {
	return []string{`<p class="doxyDiagramFile">` + renderDiagramFileString(r, n) + "</p>"}
}

func renderDiagramFileString(r *Renderer, n *dom.Node) string {
	name := "<code>" + Escape(n.Attr("name")) + "</code>"
	caption := strings.TrimSpace(r.RenderInlineMany(n.Children))
	if caption == "" {
		return name
	}
	return caption + " (" + name + ")"
}
