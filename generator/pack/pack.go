// Package pack writes a site into a tar archive laid out like the output directory.
package pack

import (
	"archive/tar"
	"fmt"
	"mime"
	"os"
	"path"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/minify/v2/xml"

	"znkr.io/doxymd/generator/site"
)

// Pack writes all documents of s to the tar file filename. Images are minified where possible,
// pages are written as they are.
func Pack(filename string, s *site.Site) error {
	minifier := minify.New()
	minifier.AddFunc("image/svg+xml", svg.Minify)
	minifier.AddFuncRegexp(regexp.MustCompile("[/+]xml$"), xml.Minify)

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening file: %v", err)
	}
	defer file.Close()

	tw := tar.NewWriter(file)
	defer tw.Close()

	dirs := make(map[string]bool)

	for _, d := range s.AllDocs() {
		b, err := s.Content(d)
		if err != nil {
			return err
		}

		if mtype := mime.TypeByExtension(path.Ext(d.File())); mtype == "image/svg+xml" || mtype == "text/xml; charset=utf-8" {
			b, err = minifier.Bytes(mtype, b)
			if err != nil {
				return fmt.Errorf("minification failed for %s: %v", d.File(), err)
			}
		}

		if err := mkdirAll(tw, dirs, path.Dir(d.File())); err != nil {
			return err
		}

		hdr := &tar.Header{
			Name: "./" + d.File(),
			Mode: int64(0644),
			Size: int64(len(b)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing header: %v", err)
		}
		if _, err := tw.Write(b); err != nil {
			return fmt.Errorf("writing body: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %v", err)
	}
	return file.Close()
}

// mkdirAll writes headers for dir and all its parents that haven't been written yet.
func mkdirAll(tw *tar.Writer, dirs map[string]bool, dir string) error {
	if dir == "." || dirs[dir] {
		return nil
	}
	if err := mkdirAll(tw, dirs, path.Dir(dir)); err != nil {
		return err
	}
	hdr := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     "./" + dir + "/",
		Mode:     int64(0755),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}
	dirs[dir] = true
	return nil
}
