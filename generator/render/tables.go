package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"znkr.io/doxymd/generator/dom"
)

func registerTables(reg Registerer) {
	reg.Lines(dom.KindTable, renderTable)
	reg.Lines(dom.KindRow, renderRow)
	reg.String(dom.KindEntry, renderEntry)
}

func renderTable(r *Renderer, n *dom.Node) []string {
	lines := []string{`<table class="doxyTable">`}
	switch captions := n.All(dom.KindCaption); len(captions) {
	case 0:
	case 1:
		lines = append(lines, "<caption>"+r.RenderInline(captions[0])+"</caption>")
	default:
		invariantf(n.Kind, "%d captions", len(captions))
	}
	for _, row := range n.All(dom.KindRow) {
		lines = append(lines, r.RenderBlock(row)...)
	}
	return append(lines, "</table>")
}

func renderRow(r *Renderer, n *dom.Node) []string {
	lines := []string{"<tr>"}
	for _, e := range n.All(dom.KindEntry) {
		lines = append(lines, r.RenderInline(e))
	}
	return append(lines, "</tr>")
}

var (
	aligns  = []string{"left", "right", "center"}
	valigns = []string{"top", "middle", "bottom"}
)

func renderEntry(r *Renderer, n *dom.Node) string {
	tag := "td"
	if n.Attr("thead") == "yes" {
		tag = "th"
	}

	var attrs strings.Builder
	for _, name := range []string{"colspan", "rowspan"} {
		v := n.Attr(name)
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			r.log.Warn("invalid table cell span", name, v)
			continue
		}
		fmt.Fprintf(&attrs, ` %s="%s"`, name, v)
	}
	if v := n.Attr("align"); v != "" {
		if slices.Contains(aligns, v) {
			fmt.Fprintf(&attrs, ` align="%s"`, v)
		} else {
			r.log.Warn("unknown table cell alignment", "align", v)
		}
	}
	if v := n.Attr("valign"); v != "" {
		if slices.Contains(valigns, v) {
			fmt.Fprintf(&attrs, ` valign="%s"`, v)
		} else {
			r.log.Warn("unknown table cell alignment", "valign", v)
		}
	}
	for _, name := range []string{"width", "class"} {
		if v := n.Attr(name); v != "" {
			fmt.Fprintf(&attrs, ` %s="%s"`, name, EscapeAttr(v))
		}
	}

	content := r.compact(n.Children)
	return "<" + tag + attrs.String() + ">" + content + "</" + tag + ">"
}
