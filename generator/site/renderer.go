package site

import (
	"bytes"
	"fmt"
	"html/template"

	"znkr.io/doxymd/generator/goldmark"
	"znkr.io/doxymd/generator/highlight"
)

// previewTemplate approximates the layout of a documentation site.
var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Meta.Title}}</title>
<style>
{{.Style}}
</style>
</head>
<body>
{{with .TOC}}<nav class="toc">{{.}}</nav>{{end}}
<main>
<h1>{{.Meta.Title}}</h1>
{{.Content}}
</main>
</body>
</html>
`))

const baseStyle = `body { display: flex; gap: 2em; font-family: sans-serif; max-width: 80em; margin: auto; }
main { flex: 1; min-width: 0; }
nav.toc { order: 1; width: 16em; font-size: 0.9em; }
.doxyProgramListing { font-family: monospace; white-space: pre; overflow-x: auto; }
.doxyLineNumber { display: inline-block; width: 4em; color: #999; user-select: none; }
.doxyMemberProto { background: #f6f8fa; padding: 0.5em; }
.admonition { border-left: 4px solid #999; padding: 0 1em; margin: 1em 0; }
.admonition.warning, .admonition.caution { border-color: #e6a700; }
.admonition.danger { border-color: #e13238; }
.admonition.tip { border-color: #009400; }
.admonition-title { font-weight: bold; }
`

// preview converts a Markdown file to a standalone HTML page.
func preview(data []byte) ([]byte, error) {
	meta, body, err := parseMetadata(data)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		meta = &Metadata{}
	}

	content, toc, err := goldmark.Render(body)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = previewTemplate.Execute(&buf, struct {
		Meta    *Metadata
		Style   template.CSS
		TOC     template.HTML
		Content template.HTML
	}{
		Meta:    meta,
		Style:   template.CSS(baseStyle + highlight.CSS("github")),
		TOC:     template.HTML(toc),
		Content: template.HTML(content),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering template: %v", err)
	}
	return buf.Bytes(), nil
}
