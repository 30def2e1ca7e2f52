// Package render turns [dom] trees of Doxygen documentation into Markdown lines.
//
// Every element kind is rendered by a function registered in a [Registry], either in block mode
// (a sequence of output lines) or in inline mode (a single string without line breaks). Renderers
// never recurse on their own; they call back into the facade methods of [Renderer]
// ([Renderer.RenderBlock], [Renderer.RenderInline] and their *Many variants) which look up the
// renderer for each child and pick the mode.
//
// The output dialect is HTML blocks inside Markdown: headings are Markdown headings with
// {#anchor} attributes, notes and warnings are admonitions, everything else is HTML on a single
// line per block element.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"znkr.io/doxymd/generator/dom"
)

// Resolver resolves Doxygen reference ids to URLs.
type Resolver interface {
	// Permalink returns the URL of the target of refid. The kind hint is the kindref (or
	// refkind) attribute of the reference: "compound" or "member".
	Permalink(refid, kindHint string) (string, bool)

	// PagePermalink returns the URL of the page of the compound refid.
	PagePermalink(refid string) (string, bool)

	// Anchor returns the in-page anchor for an id attribute (sections, members, anchors).
	Anchor(id string) string
}

// Options configure a [Renderer].
type Options struct {
	// HeadingOffset is added to the depth of sections and headings. With an offset of 1, a sect1
	// becomes a level 2 heading, leaving level 1 for the page title.
	HeadingOffset int

	// ImagesURL is the URL prefix under which images referenced from the documentation are
	// served.
	ImagesURL string

	// NoLineAnchors suppresses line number anchors in program listings.
	NoLineAnchors bool

	// Schema declares the known kinds. Defaults to [dom.DefaultSchema].
	Schema *dom.Schema

	// Logger receives diagnostics. Defaults to [slog.Default].
	Logger *slog.Logger
}

// Renderer renders dom nodes. It's safe to use a Renderer from multiple goroutines as long as
// each goroutine uses its own [Renderer.Render] calls.
type Renderer struct {
	reg         *Registry
	resolver    Resolver
	log         *slog.Logger
	opts        Options
	lineAnchors bool
	images      *Images
	html        bool // block renderers emit HTML only
}

// New creates a new renderer with all built-in renderers. It returns a [*ConfigError] if a kind
// of the schema can't be rendered.
func New(resolver Resolver, opts Options) (*Renderer, error) {
	return NewWithRenderers(resolver, opts, Builtin)
}

// NewWithRenderers creates a new renderer from custom registrations. Later registrations for
// the same kind are rejected.
func NewWithRenderers(resolver Resolver, opts Options, register ...func(Registerer)) (*Renderer, error) {
	if opts.Schema == nil {
		opts.Schema = dom.DefaultSchema
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.ImagesURL = strings.TrimSuffix(opts.ImagesURL, "/")

	reg, err := NewRegistry(opts.Schema, register...)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		reg:         reg,
		resolver:    resolver,
		log:         opts.Logger,
		opts:        opts,
		lineAnchors: !opts.NoLineAnchors,
	}, nil
}

// Builtin registers all built-in renderers.
func Builtin(reg Registerer) {
	registerBlocks(reg)
	registerSections(reg)
	registerLists(reg)
	registerTables(reg)
	registerInline(reg)
	registerListing(reg)
}

// Result is the outcome of a render pass.
type Result struct {
	Lines  []string
	Images []string // Names of all images referenced, in order of first occurrence
}

// Render runs fn with a renderer that collects referenced images into a fresh accumulator.
// Configuration and invariant violations detected while rendering abort the pass and are returned
// as errors.
func (r *Renderer) Render(fn func(r *Renderer) []string) (_ Result, err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case *ConfigError:
				err = e
			case *InvariantError:
				err = e
			default:
				panic(e)
			}
		}
	}()

	rr := *r
	rr.images = &Images{}
	lines := fn(&rr)
	return Result{Lines: lines, Images: rr.images.Names()}, nil
}

// RenderNode renders n in block mode. See [Renderer.Render].
func (r *Renderer) RenderNode(n *dom.Node) (Result, error) {
	return r.Render(func(r *Renderer) []string { return r.RenderBlock(n) })
}

// WithoutLineAnchors returns a renderer that doesn't emit line number anchors for program
// listings. Line numbers and their links are still rendered.
func (r *Renderer) WithoutLineAnchors() *Renderer {
	rr := *r
	rr.lineAnchors = false
	return &rr
}

// Resolver returns the resolver used for links.
func (r *Renderer) Resolver() Resolver { return r.resolver }

// Logger returns the logger for diagnostics.
func (r *Renderer) Logger() *slog.Logger { return r.log }

// Images returns the image accumulator of the current pass, nil outside of [Renderer.Render].
func (r *Renderer) Images() *Images { return r.images }

// RenderBlock renders n in block mode. Kinds that only have an inline renderer are rendered as a
// single line. A nil node renders nothing.
func (r *Renderer) RenderBlock(n *dom.Node) []string {
	if n == nil {
		return nil
	}
	if fn, ok := r.reg.LinesFunc(n.Kind); ok {
		return fn(r, n)
	}
	if fn, ok := r.reg.StringFunc(n.Kind); ok {
		if s := fn(r, n); s != "" {
			return []string{s}
		}
		return nil
	}
	panic(noRenderer(n.Kind))
}

// RenderInline renders n in inline mode. Kinds that only have a block renderer are rendered as
// HTML and their lines are joined. A nil node renders as "".
func (r *Renderer) RenderInline(n *dom.Node) string {
	if n == nil {
		return ""
	}
	if fn, ok := r.reg.StringFunc(n.Kind); ok {
		return fn(r, n)
	}
	if fn, ok := r.reg.LinesFunc(n.Kind); ok {
		return strings.Join(fn(r.htmlOnly(), n), "")
	}
	panic(noRenderer(n.Kind))
}

// htmlOnly returns a renderer whose block renderers don't emit Markdown, so that their lines can
// be joined into one.
func (r *Renderer) htmlOnly() *Renderer {
	if r.html {
		return r
	}
	rr := *r
	rr.html = true
	return &rr
}

// RenderBlockMany renders a sequence of children in block mode. Text runs that contain nothing
// but white space are dropped, any other text run becomes a line of its own.
func (r *Renderer) RenderBlockMany(cs []dom.Content) []string {
	var lines []string
	for _, c := range cs {
		switch c := c.(type) {
		case dom.Text:
			if s := strings.TrimSpace(string(c)); s != "" {
				lines = append(lines, inlineText(s))
			}
		case *dom.Node:
			lines = append(lines, r.RenderBlock(c)...)
		}
	}
	return lines
}

// RenderInlineMany renders a sequence of children in inline mode and concatenates the result.
func (r *Renderer) RenderInlineMany(cs []dom.Content) string {
	var sb strings.Builder
	for _, c := range cs {
		switch c := c.(type) {
		case dom.Text:
			sb.WriteString(inlineText(string(c)))
		case *dom.Node:
			sb.WriteString(r.RenderInline(c))
		}
	}
	return sb.String()
}

// ConfigError reports kinds that have no renderer. It indicates that the registry doesn't match
// the schema version of the input.
type ConfigError struct {
	Msg   string
	Kinds []dom.Kind
}

func (err *ConfigError) Error() string {
	ks := make([]string, len(err.Kinds))
	for i, k := range err.Kinds {
		ks[i] = string(k)
	}
	return fmt.Sprintf("%s: %s", err.Msg, strings.Join(ks, ", "))
}

func noRenderer(k dom.Kind) *ConfigError {
	return &ConfigError{Msg: "no renderer for kind", Kinds: []dom.Kind{k}}
}

// InvariantError reports a malformed tree.
type InvariantError struct {
	Kind dom.Kind
	Msg  string
}

func (err *InvariantError) Error() string {
	return fmt.Sprintf("malformed %s: %s", err.Kind, err.Msg)
}

func invariantf(k dom.Kind, format string, args ...any) {
	panic(&InvariantError{Kind: k, Msg: fmt.Sprintf(format, args...)})
}
