package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want func(c *Config)
	}{
		{
			name: "empty",
			in:   "",
			want: func(*Config) {},
		},
		{
			name: "overrides",
			in: `
input: build/xml
base_url: /docs/api
heading_offset: 2
line_anchors: false
serve:
  addr: ":9000"
`,
			want: func(c *Config) {
				c.Input = "build/xml"
				c.BaseURL = "/docs/api"
				c.HeadingOffset = 2
				c.LineAnchors = false
				c.Serve.Addr = ":9000"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			want := Default()
			tt.want(want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse() mismatch [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown_key", "inputs: xml\n"},
		{"heading_offset", "heading_offset: 9\n"},
		{"log_level", "log_level: chatty\n"},
		{"empty_output", "output: \"\"\n"},
		{"syntax", "input: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.in)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestImages(t *testing.T) {
	c := Default()
	if got, want := c.Images(), "/api/img"; got != want {
		t.Errorf("Images() = %q, want %q", got, want)
	}
	c.ImagesURL = "https://cdn.example.com/img"
	if got, want := c.Images(), "https://cdn.example.com/img"; got != want {
		t.Errorf("Images() = %q, want %q", got, want)
	}
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"
	l, err := c.Level()
	if err != nil {
		t.Fatal(err)
	}
	if l != slog.LevelDebug {
		t.Errorf("Level() = %v, want %v", l, slog.LevelDebug)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, DefaultFile))
	if err != nil {
		t.Fatalf("LoadOrDefault() of missing file failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("LoadOrDefault() mismatch [-want,+got]:\n%s", diff)
	}

	// Round trip through Marshal.
	cfg.Output = "out"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("Load() mismatch [-want,+got]:\n%s", diff)
	}

	if !bytes.Contains(data, []byte("output: out")) {
		t.Errorf("Marshal() doesn't contain output:\n%s", data)
	}
}
