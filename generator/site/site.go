// Package site is the in-memory representation of all generated files: one Markdown page per
// compound plus the images these pages reference.
package site

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"znkr.io/doxymd/generator/page"
)

// Site is an in-memory representation of the to be generated site.
type Site struct {
	docs map[string]Doc
}

// Doc is a single document of the site, that is anything that is written to the output directory.
type Doc struct {
	path string // URL path
	file string // path relative to the output directory, slash separated
	mime string // mime type of the preview
	page *page.Page
	src  string // source file of an image
}

// Doc returns the document for the given URL path, or nil if the document cannot be found.
func (s *Site) Doc(path string) *Doc {
	d, ok := s.docs[path]
	if !ok {
		return nil
	}
	return &d
}

// AllDocs returns all documents sorted by path.
func (s *Site) AllDocs() []*Doc {
	var ret []*Doc
	for _, d := range s.docs {
		ret = append(ret, &d)
	}
	slices.SortFunc(ret, func(a, b *Doc) int {
		return cmp.Compare(a.Path(), b.Path())
	})
	return ret
}

// Content returns the content of the file written for d.
func (s *Site) Content(d *Doc) ([]byte, error) {
	if d.page == nil {
		b, err := os.ReadFile(d.src)
		if err != nil {
			return nil, fmt.Errorf("reading image: %v", err)
		}
		return b, nil
	}
	b, err := markdown(d.page)
	if err != nil {
		return nil, fmt.Errorf("writing markdown for %s: %v", d.path, err)
	}
	return b, nil
}

// RenderPage renders d for the preview: pages are converted to HTML, everything else is returned
// as is.
func (s *Site) RenderPage(d *Doc) ([]byte, error) {
	b, err := s.Content(d)
	if err != nil {
		return nil, err
	}
	if d.page == nil {
		return b, nil
	}
	b, err = preview(b)
	if err != nil {
		return nil, fmt.Errorf("rendering page for %s: %v", d.path, err)
	}
	return b, nil
}

func (d *Doc) MimeType() string { return d.mime }
func (d *Doc) Path() string     { return d.path }
func (d *Doc) File() string     { return d.file }
func (d *Doc) Page() *page.Page { return d.page }
