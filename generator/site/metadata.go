package site

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"znkr.io/doxymd/generator/page"
)

// Metadata is the YAML front matter of a page.
type Metadata struct {
	Title         string  `yaml:"title"`
	Slug          string  `yaml:"slug"`
	Description   string  `yaml:"description,omitempty"`
	CustomEditURL *string `yaml:"custom_edit_url"` // Always null, there's no source to edit
}

const delim = "---\n"

// markdown returns the Markdown file for p.
func markdown(p *page.Page) ([]byte, error) {
	meta, err := yaml.Marshal(&Metadata{
		Title:       p.Title,
		Slug:        p.Permalink,
		Description: p.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %v", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delim)
	buf.Write(meta)
	buf.WriteString(delim)
	if len(p.Lines) > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Join(p.Lines, "\n"))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

var errMissingDelim = errors.New("front matter without closing delimiter")

// parseMetadata splits a Markdown file into front matter and body. Files without front matter
// have nil metadata.
func parseMetadata(in []byte) (*Metadata, []byte, error) {
	if !bytes.HasPrefix(in, []byte(delim)) {
		return nil, in, nil
	}
	in = in[len(delim):]

	var raw []byte
	switch i := bytes.Index(in, []byte("\n"+delim)); {
	case bytes.HasPrefix(in, []byte(delim)):
		in = in[len(delim):]
	case i < 0:
		return nil, nil, errMissingDelim
	default:
		raw, in = in[:i+1], in[i+1+len(delim):]
	}

	var meta Metadata
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, nil, fmt.Errorf("parsing front matter: %v", err)
	}
	return &meta, bytes.TrimLeft(in, "\n"), nil
}
