package render

import (
	"fmt"
	"html"
	"strings"

	"znkr.io/doxymd/generator/dom"
)

func registerInline(reg Registerer) {
	reg.String(dom.KindMarkup, renderMarkup)
	reg.String(dom.KindSpecialChar, renderSpecialChar)
	reg.String(dom.KindRef, renderRef)
	reg.String(dom.KindULink, renderULink)
	reg.String(dom.KindAnchor, renderAnchor)
	reg.String(dom.KindFormula, renderFormula)
	reg.String(dom.KindImage, renderImage)
	reg.Lines(dom.KindImage, renderFigure)
	reg.String(dom.KindEmoji, renderEmoji)
	reg.String(dom.KindLineBreak, func(*Renderer, *dom.Node) string { return "<br/>" })
	reg.String(dom.KindSp, func(*Renderer, *dom.Node) string { return " " })
	reg.String(dom.KindJavadocLiteral, func(_ *Renderer, n *dom.Node) string { return inlineText(n.Text()) })

	// Index entries only feed Doxygen's own search index.
	for _, k := range []dom.Kind{dom.KindIndexEntry, dom.KindPrimaryIE, dom.KindSecondaryIE} {
		reg.Lines(k, renderNothing)
		reg.String(k, func(*Renderer, *dom.Node) string { return "" })
	}
}

var markupTags = map[dom.Kind]string{
	dom.KindBold:           "b",
	dom.KindEmphasis:       "em",
	dom.KindUnderline:      "u",
	dom.KindStrike:         "s",
	dom.KindS:              "s",
	dom.KindDel:            "del",
	dom.KindIns:            "ins",
	dom.KindSubscript:      "sub",
	dom.KindSuperscript:    "sup",
	dom.KindSmall:          "small",
	dom.KindCenter:         "center",
	dom.KindCite:           "cite",
	dom.KindComputerOutput: "code",
	dom.KindJavadocCode:    "code",
}

func renderMarkup(r *Renderer, n *dom.Node) string {
	inner := r.RenderInlineMany(n.Children)
	tag, ok := markupTags[n.Kind]
	if !ok {
		r.log.Warn("unknown markup, rendering content only", "kind", n.Kind)
		return inner
	}
	return "<" + tag + ">" + inner + "</" + tag + ">"
}

func renderSpecialChar(r *Renderer, n *dom.Node) string {
	c, ok := dom.SpecialChar(n.Kind)
	if !ok {
		r.log.Warn("unknown special character", "kind", n.Kind)
		return ""
	}
	return string(c)
}

// Link renders label as a link to the target of refid, or as plain label if refid can't be
// resolved.
func (r *Renderer) Link(refid, kindHint, label string) string {
	url, ok := r.resolver.Permalink(refid, kindHint)
	if !ok {
		r.log.Debug("unresolved reference", "refid", refid, "kindref", kindHint)
		return label
	}
	return `<a href="` + EscapeAttr(url) + `">` + label + `</a>`
}

func renderRef(r *Renderer, n *dom.Node) string {
	return r.Link(n.Attr("refid"), n.Attr("kindref"), r.RenderInlineMany(n.Children))
}

func renderULink(r *Renderer, n *dom.Node) string {
	label := r.RenderInlineMany(n.Children)
	url := n.Attr("url")
	if url == "" {
		r.log.Warn("ulink without url")
		return label
	}
	return `<a href="` + EscapeAttr(url) + `">` + label + `</a>`
}

func renderAnchor(r *Renderer, n *dom.Node) string {
	id := n.ID()
	if id == "" {
		invariantf(n.Kind, "missing id")
	}
	return `<a id="` + EscapeAttr(r.resolver.Anchor(id)) + `"></a>`
}

func renderFormula(r *Renderer, n *dom.Node) string {
	return `<code class="doxyFormula">` + inlineText(strings.TrimSpace(n.Text())) + `</code>`
}

// imageTag returns the <img> element for an image node of type html, or "" for other types.
func (r *Renderer) imageTag(n *dom.Node) string {
	if t := n.Attr("type"); t != "" && t != "html" {
		r.log.Debug("skipping image for other format", "type", t, "name", n.Attr("name"))
		return ""
	}
	name := n.Attr("name")
	if name == "" {
		invariantf(n.Kind, "missing name")
	}
	src := name
	if !strings.Contains(name, "://") {
		r.images.Add(name)
		if r.opts.ImagesURL != "" {
			src = r.opts.ImagesURL + "/" + name
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<img src="%s"`, EscapeAttr(src))
	alt := n.Attr("alt")
	if alt == "" {
		alt = strings.TrimSpace(n.Text())
	}
	if alt != "" {
		fmt.Fprintf(&sb, ` alt="%s"`, EscapeAttr(strings.ReplaceAll(alt, "\n", " ")))
	}
	for _, attr := range []string{"width", "height"} {
		if v := n.Attr(attr); v != "" {
			fmt.Fprintf(&sb, ` %s="%s"`, attr, EscapeAttr(v))
		}
	}
	sb.WriteString("/>")
	return sb.String()
}

func renderImage(r *Renderer, n *dom.Node) string {
	return r.imageTag(n)
}

func renderFigure(r *Renderer, n *dom.Node) []string {
	img := r.imageTag(n)
	if img == "" {
		return nil
	}
	if n.Attr("inline") == "yes" {
		return []string{img}
	}
	lines := []string{`<figure class="doxyImage">`, img}
	if caption := strings.TrimSpace(r.RenderInlineMany(n.Children)); caption != "" {
		lines = append(lines, "<figcaption>"+caption+"</figcaption>")
	}
	return append(lines, "</figure>")
}

func renderEmoji(r *Renderer, n *dom.Node) string {
	// Doxygen writes the code point as an HTML character reference.
	if u := n.Attr("unicode"); u != "" {
		return Escape(html.UnescapeString(u))
	}
	return Escape(n.Attr("name"))
}
