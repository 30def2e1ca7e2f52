package server

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"znkr.io/doxymd/generator/site"
)

// indexTemplate lists all pages of the site, it's served for the root path.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Preview</title></head>
<body>
<ul>
{{range .}}<li><a href="{{.Path}}">{{.Title}}</a> <small>{{.Kind}}</small></li>
{{end}}</ul>
</body>
</html>
`))

type handler struct {
	site    atomic.Pointer[site.Site]
	log     *slog.Logger
	updated atomic.Int64 // unix nanos of the last site swap
}

func (h *handler) store(s *site.Site) {
	h.site.Store(s)
	h.updated.Store(time.Now().UnixNano())
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s := h.site.Load()
	if s == nil {
		http.Error(w, "site not loaded", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimSuffix(req.URL.Path, "/")
	h.log.Debug("request", "method", req.Method, "path", path)

	var (
		b    []byte
		mime string
		err  error
	)
	if path == "" {
		b, err = index(s)
		mime = "text/html; charset=utf-8"
	} else {
		doc := s.Doc(path)
		if doc == nil {
			http.NotFound(w, req)
			return
		}
		b, err = s.RenderPage(doc)
		mime = doc.MimeType()
	}
	if err != nil {
		h.log.Error("failed to serve", "path", path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	http.ServeContent(w, req, path, time.Unix(0, h.updated.Load()), bytes.NewReader(b))
}

func index(s *site.Site) ([]byte, error) {
	type entry struct {
		Path, Title, Kind string
	}
	var entries []entry
	for _, d := range s.AllDocs() {
		if p := d.Page(); p != nil {
			entries = append(entries, entry{Path: d.Path(), Title: p.Title, Kind: p.Kind})
		}
	}
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
