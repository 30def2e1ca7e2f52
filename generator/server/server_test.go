package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"znkr.io/doxymd/generator/config"
	"znkr.io/doxymd/generator/site"
)

func loadSite(t *testing.T, brief string) *site.Site {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.xml": `<doxygenindex><compound refid="classfoo" kind="class"><name>Foo</name></compound></doxygenindex>`,
		"classfoo.xml": `<doxygen><compounddef id="classfoo" kind="class"><compoundname>Foo</compoundname>
<briefdescription><para>` + brief + `</para></briefdescription></compounddef></doxygen>`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Default()
	cfg.Input = dir
	s, err := site.Load(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(b)
}

func TestServer(t *testing.T) {
	srv, err := Run("localhost:0", loadSite(t, "First."), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Shutdown(context.Background())
	base := "http://" + srv.Addr()

	tests := []struct {
		path     string
		wantCode int
		want     string
	}{
		{"/api/classes/foo", http.StatusOK, "<p>First.</p>"},
		{"/api/classes/foo/", http.StatusOK, "<p>First.</p>"},
		{"/api/classes/bar", http.StatusNotFound, "not found"},
	}
	for _, tt := range tests {
		code, body := get(t, base+tt.path)
		if code != tt.wantCode || !strings.Contains(body, tt.want) {
			t.Errorf("GET %s = %d, %q, want %d with %q", tt.path, code, body, tt.wantCode, tt.want)
		}
	}

	srv.ReplaceSite(loadSite(t, "Second."))
	if _, body := get(t, base+"/api/classes/foo"); !strings.Contains(body, "<p>Second.</p>") {
		t.Errorf("GET after ReplaceSite() = %q, want new content", body)
	}
}

func TestHandler(t *testing.T) {
	h := &handler{log: slog.New(slog.DiscardHandler)}
	if rec := serve(h, http.MethodGet, "/api/classes/foo"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET without site = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	h.store(loadSite(t, "First."))

	tests := []struct {
		name      string
		method    string
		path      string
		wantCode  int
		wantBody  string
		wantAllow string
	}{
		{"index", http.MethodGet, "/", http.StatusOK, `<a href="/api/classes/foo">Foo</a> <small>class</small>`, ""},
		{"page", http.MethodGet, "/api/classes/foo", http.StatusOK, "<p>First.</p>", ""},
		{"head", http.MethodHead, "/api/classes/foo", http.StatusOK, "", ""},
		{"missing", http.MethodGet, "/api/classes/bar", http.StatusNotFound, "not found", ""},
		{"post", http.MethodPost, "/api/classes/foo", http.StatusMethodNotAllowed, "method not allowed", "GET, HEAD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.method, tt.path)
			if rec.Code != tt.wantCode {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("%s %s body = %q, want it to contain %q", tt.method, tt.path, rec.Body.String(), tt.wantBody)
			}
			if got := rec.Header().Get("Allow"); got != tt.wantAllow {
				t.Errorf("%s %s Allow = %q, want %q", tt.method, tt.path, got, tt.wantAllow)
			}
		})
	}

	rec := serve(h, http.MethodHead, "/api/classes/foo")
	if rec.Body.Len() != 0 || rec.Header().Get("Content-Length") == "" {
		t.Errorf("HEAD body = %q, Content-Length = %q, want empty body with length", rec.Body.String(), rec.Header().Get("Content-Length"))
	}
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}
