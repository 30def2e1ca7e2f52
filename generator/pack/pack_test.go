package pack

import (
	"archive/tar"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/doxymd/generator/config"
	"znkr.io/doxymd/generator/site"
)

func TestPack(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"index.xml": `<doxygenindex>
  <compound refid="classfoo" kind="class"><name>Foo</name></compound>
  <compound refid="namespacens" kind="namespace"><name>ns</name></compound>
</doxygenindex>`,
		"classfoo.xml": `<doxygen><compounddef id="classfoo" kind="class"><compoundname>Foo</compoundname>
<detaileddescription><para><image type="html" name="foo.svg"/></para></detaileddescription></compounddef></doxygen>`,
		"namespacens.xml": `<doxygen><compounddef id="namespacens" kind="namespace"><compoundname>ns</compoundname></compounddef></doxygen>`,
		"foo.svg": "<svg xmlns=\"http://www.w3.org/2000/svg\">\n  <rect width=\"10\" height=\"10\"/>\n</svg>\n",
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

	out := filepath.Join(t.TempDir(), "site.tar")
	if err := Pack(out, s); err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var names []string
	contents := make(map[string]string)
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, hdr.Name)
		b, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		contents[hdr.Name] = string(b)
	}

	want := []string{
		"./classes/",
		"./classes/foo.md",
		"./img/",
		"./img/foo.svg",
		"./namespaces/",
		"./namespaces/ns.md",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("archive mismatch [-want,+got]:\n%s", diff)
	}
	if svg := contents["./img/foo.svg"]; strings.Contains(svg, "\n") {
		t.Errorf("svg isn't minified: %q", svg)
	}
	if md := contents["./namespaces/ns.md"]; !strings.HasPrefix(md, "---\ntitle: ns\n") {
		t.Errorf("unexpected page content: %q", md)
	}
}
