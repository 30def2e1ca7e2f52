package render

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/doxymd/generator/dom"
)

type fakeResolver map[string]string

func (f fakeResolver) Permalink(refid, _ string) (string, bool) {
	url, ok := f[refid]
	return url, ok
}

func (f fakeResolver) PagePermalink(refid string) (string, bool) {
	url, ok := f[refid]
	return url, ok
}

func (fakeResolver) Anchor(id string) string {
	if i := strings.LastIndex(id, "_1"); i >= 0 {
		return id[i+2:]
	}
	return id
}

func newRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	r, err := New(fakeResolver{
		"classfoo_1abc": "/api/foo#abc",
		"classfoo":      "/api/foo",
	}, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return r
}

func render(t *testing.T, r *Renderer, n *dom.Node) []string {
	t.Helper()
	res, err := r.RenderNode(n)
	if err != nil {
		t.Fatalf("RenderNode() failed: %v", err)
	}
	return res.Lines
}

func para(children ...any) *dom.Node { return dom.New(dom.KindPara, nil, children...) }

func attrs(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func TestRegistryCoversSchema(t *testing.T) {
	reg, err := NewRegistry(dom.DefaultSchema, Builtin)
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	for _, k := range dom.DefaultSchema.Concrete() {
		_, okl := reg.LinesFunc(k)
		_, oks := reg.StringFunc(k)
		if !okl && !oks {
			t.Errorf("no renderer for %q", k)
		}
	}
	if err := reg.Check(dom.DefaultSchema); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestEveryKindClassified(t *testing.T) {
	for _, k := range dom.DefaultSchema.Concrete() {
		if _, ok := classify(dom.DefaultSchema, k); !ok {
			t.Errorf("no paragraph flow for %q", k)
		}
	}
}

func TestRegistryAncestorHop(t *testing.T) {
	schema := dom.DefaultSchema.With("checklist", dom.KindItemizedList)
	r := newRenderer(t, Options{Schema: schema})

	in := dom.New("checklist", nil, dom.New(dom.KindListItem, nil, para("done")))
	want := []string{"<ul>", "<li>done</li>", "</ul>"}
	if diff := cmp.Diff(want, render(t, r, in)); diff != "" {
		t.Errorf("render mismatch [-want,+got]:\n%s", diff)
	}
}

func TestRegistryErrors(t *testing.T) {
	tests := []struct {
		name     string
		schema   *dom.Schema
		register []func(Registerer)
		want     []dom.Kind
	}{
		{
			name:     "unrenderable_kind",
			schema:   dom.DefaultSchema.With("widget", ""),
			register: []func(Registerer){Builtin},
			want:     []dom.Kind{"widget"},
		},
		{
			name:   "duplicate",
			schema: dom.DefaultSchema,
			register: []func(Registerer){Builtin, func(reg Registerer) {
				reg.Lines(dom.KindPara, renderNothing)
			}},
			want: []dom.Kind{dom.KindPara},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.schema, tt.register...)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("NewRegistry() = %v, want *ConfigError", err)
			}
			if diff := cmp.Diff(tt.want, cerr.Kinds); diff != "" {
				t.Errorf("kinds mismatch [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestRenderUnknownKindFails(t *testing.T) {
	r := newRenderer(t, Options{})
	_, err := r.RenderNode(para("text ", dom.New("frobnicate", nil)))
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("RenderNode() = %v, want *ConfigError", err)
	}
}

func TestFacadeNil(t *testing.T) {
	r := newRenderer(t, Options{})
	if got := r.RenderBlock(nil); got != nil {
		t.Errorf("RenderBlock(nil) = %q, want nil", got)
	}
	if got := r.RenderInline(nil); got != "" {
		t.Errorf("RenderInline(nil) = %q, want empty", got)
	}
}

func TestFacadeModeFallback(t *testing.T) {
	r := newRenderer(t, Options{})

	// bold only has an inline renderer, hruler only a block renderer.
	if diff := cmp.Diff([]string{"<b>x</b>"}, r.RenderBlock(dom.New(dom.KindBold, nil, "x"))); diff != "" {
		t.Errorf("RenderBlock(bold) mismatch [-want,+got]:\n%s", diff)
	}
	if got, want := r.RenderInline(dom.New(dom.KindHRuler, nil)), "<hr/>"; got != want {
		t.Errorf("RenderInline(hruler) = %q, want %q", got, want)
	}
}

func TestRenderBlockManyDropsWhitespace(t *testing.T) {
	r := newRenderer(t, Options{})
	in := dom.New(dom.KindDetailedDescription, nil, "\n  ", para("x"), "\n", " stray <text> ")
	want := []string{"<p>x</p>", "stray &lt;text&gt;"}
	if diff := cmp.Diff(want, render(t, r, in)); diff != "" {
		t.Errorf("render mismatch [-want,+got]:\n%s", diff)
	}
}

func TestIdempotence(t *testing.T) {
	r := newRenderer(t, Options{ImagesURL: "/img"})
	in := dom.New(dom.KindDetailedDescription, nil,
		para("See ", dom.New(dom.KindRef, attrs("refid", "classfoo", "kindref", "compound"), "Foo"),
			dom.New(dom.KindImage, attrs("type", "html", "name", "a.png"))),
		dom.New(dom.KindSect1, attrs("id", "page_1s"),
			dom.New(dom.KindTitle, nil, "Section"),
			para("body"),
		),
	)

	first, err := r.RenderNode(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.RenderNode(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second render differs [-first,+second]:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.png"}, second.Images); diff != "" {
		t.Errorf("images mismatch [-want,+got]:\n%s", diff)
	}
}

func TestParagraphSegmentation(t *testing.T) {
	r := newRenderer(t, Options{})

	tests := []struct {
		name string
		in   *dom.Node
		want []string
	}{
		{
			name: "inline_inline_block_inline",
			in: para(
				"Some ", dom.New(dom.KindBold, nil, "text"), " and more",
				dom.New(dom.KindItemizedList, nil, dom.New(dom.KindListItem, nil, para("x"))),
				" after.",
			),
			want: []string{"<p>Some <b>text</b> and more</p>", "<ul>", "<li>x</li>", "</ul>", "<p>after.</p>"},
		},
		{
			name: "blank_groups_are_dropped",
			in: para("\n",
				dom.New(dom.KindVerbatim, nil, "code"),
				"  \n"),
			want: []string{"", "```", "code", "```", ""},
		},
		{
			name: "pilcrow",
			in:   para("a", para(), "b"),
			want: []string{"<p>a¶b</p>"},
		},
		{
			name: "soft_line_breaks",
			in:   para("one\ntwo"),
			want: []string{"<p>one two</p>"},
		},
		{
			name: "htmlonly_block",
			in:   para("a", dom.New(dom.KindHTMLOnly, attrs("block", "yes"), "<div>x</div>"), "b"),
			want: []string{"<p>a</p>", "<div>x</div>", "<p>b</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, render(t, r, tt.in)); diff != "" {
				t.Errorf("render mismatch [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	if got, want := Escape("a<b>&{c}"), "a&lt;b&gt;&amp;&#123;c&#125;"; got != want {
		t.Errorf("Escape() = %q, want %q", got, want)
	}
}

func TestDiagnosticsGoToLog(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(t, Options{Logger: slog.New(slog.NewTextHandler(&buf, nil))})

	in := dom.New(dom.KindProgramListing, nil,
		dom.New(dom.KindCodeLine, nil, dom.New(dom.KindHighlight, attrs("class", "sparkly"), "x")),
	)
	want := []string{
		`<div class="doxyProgramListing">`,
		`<div class="doxyCodeLine"><span class="doxyLineContent">x</span></div>`,
		`</div>`,
	}
	if diff := cmp.Diff(want, render(t, r, in)); diff != "" {
		t.Errorf("render mismatch [-want,+got]:\n%s", diff)
	}
	if !strings.Contains(buf.String(), "class=sparkly") {
		t.Errorf("log doesn't mention unknown class:\n%s", buf.String())
	}
}
