// Package config reads the doxymd.yaml configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the name of the configuration file looked up in the working directory.
const DefaultFile = "doxymd.yaml"

// Config holds all settings. Every field is optional in the file.
type Config struct {
	// Input is the directory with Doxygen's XML output (XML_OUTPUT).
	Input string `yaml:"input"`

	// Output is the directory the Markdown pages are written to.
	Output string `yaml:"output"`

	// BaseURL is the URL path under which the pages are served.
	BaseURL string `yaml:"base_url"`

	// ImagesDir is the directory, relative to Output, that images are copied to.
	ImagesDir string `yaml:"images_dir"`

	// ImagesURL is the URL prefix for images. Defaults to BaseURL/ImagesDir.
	ImagesURL string `yaml:"images_url,omitempty"`

	// HeadingOffset is added to section depths, 1 leaves the top level heading to the page title.
	HeadingOffset int `yaml:"heading_offset"`

	// LineAnchors controls the line anchors in file listings.
	LineAnchors bool `yaml:"line_anchors"`

	// KeepGoing skips compounds that fail to render instead of stopping.
	KeepGoing bool `yaml:"keep_going"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	Serve Serve `yaml:"serve"`
}

// Serve configures the preview server.
type Serve struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used for everything not set in the file.
func Default() *Config {
	return &Config{
		Input:         "xml",
		Output:        "docs/api",
		BaseURL:       "/api",
		ImagesDir:     "img",
		HeadingOffset: 1,
		LineAnchors:   true,
		LogLevel:      "info",
		Serve:         Serve{Addr: "localhost:8080"},
	}
}

// Parse reads a configuration from r on top of the defaults. Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is like [Load] but returns the default configuration if the file doesn't
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the values of all fields.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input must not be empty"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}
	if c.HeadingOffset < 0 || c.HeadingOffset > 5 {
		errs = append(errs, fmt.Errorf("heading_offset must be between 0 and 5, got %d", c.HeadingOffset))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Images returns the URL prefix for images.
func (c *Config) Images() string {
	if c.ImagesURL != "" {
		return c.ImagesURL
	}
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + c.ImagesDir
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %v", err)
	}
	return l, nil
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
