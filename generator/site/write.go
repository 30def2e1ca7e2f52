package site

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"znkr.io/diff/textdiff"
)

// Write writes all documents to dir. Files that already have the right content are left alone.
func (s *Site) Write(dir string, log *slog.Logger) error {
	written := 0
	for _, d := range s.AllDocs() {
		b, err := s.Content(d)
		if err != nil {
			return err
		}
		fpath := filepath.Join(dir, filepath.FromSlash(d.File()))
		if old, err := os.ReadFile(fpath); err == nil && bytes.Equal(old, b) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
			return fmt.Errorf("creating directory: %v", err)
		}
		if err := os.WriteFile(fpath, b, 0o644); err != nil {
			return fmt.Errorf("writing %s: %v", d.File(), err)
		}
		log.Debug("wrote file", "file", d.File())
		written++
	}
	log.Info("site written", "dir", dir, "files", written, "unchanged", len(s.docs)-written)
	return nil
}

// Diff returns a unified diff between the pages in dir and the ones in s. Images aren't compared.
func (s *Site) Diff(dir string) (string, error) {
	var sb strings.Builder
	for _, d := range s.AllDocs() {
		if d.Page() == nil {
			continue
		}
		b, err := s.Content(d)
		if err != nil {
			return "", err
		}
		old, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(d.File())))
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("reading %s: %v", d.File(), err)
		}
		if bytes.Equal(old, b) {
			continue
		}
		fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", d.File(), d.File())
		sb.WriteString(textdiff.Unified(string(old), string(b), textdiff.IndentHeuristic()))
	}
	return sb.String(), nil
}
