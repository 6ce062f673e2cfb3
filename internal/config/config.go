// Package config handles YAML configuration parsing and validation.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zapstore/apkmeta/internal/archive"
	"github.com/zapstore/apkmeta/internal/axml"
	"github.com/zapstore/apkmeta/internal/manifest"
)

// DefaultFile is loaded from the working directory when no path is given.
const DefaultFile = "apkmeta.yaml"

// Values accepted by the decoder field.
const (
	DecoderAPKParser     = axml.NameAPKParser
	DecoderAndroidBinary = axml.NameAndroidBinary
	DecoderText          = axml.NameText
)

// Config represents the apkmeta.yaml configuration file.
type Config struct {
	// Entry name suffix of the manifest inside the archive
	ManifestName string `yaml:"manifest_name,omitempty"`

	// Category value that marks the launch component
	LauncherCategory string `yaml:"launcher_category,omitempty"`

	// Upper bound for the decompressed manifest, in bytes
	MaxEntrySize int64 `yaml:"max_entry_size,omitempty"`

	// Binary manifest decoder: apkparser (default), androidbinary or text
	Decoder string `yaml:"decoder,omitempty"`

	// Accept manifests stored as text XML (apkparser decoder only)
	AllowPlainText bool `yaml:"allow_plain_text,omitempty"`

	// BaseDir is the directory containing the config file.
	// Not parsed from YAML, set by Load().
	BaseDir string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ManifestName:     archive.DefaultManifestName,
		LauncherCategory: manifest.LauncherCategory,
		Decoder:          DecoderAPKParser,
	}
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, err
	}

	// Set base directory for relative path resolution
	absPath, err := filepath.Abs(path)
	if err == nil {
		cfg.BaseDir = filepath.Dir(absPath)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or DefaultFile when path is empty. A missing
// DefaultFile yields Default(); a missing explicit path is an error.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse reads config from a reader. Fields left out keep their defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.ManifestName == "" {
		return fmt.Errorf("manifest_name must not be empty")
	}
	if strings.ContainsAny(c.ManifestName, "/\\") {
		return fmt.Errorf("manifest_name %q must be a file name, not a path", c.ManifestName)
	}
	if strings.TrimSpace(c.LauncherCategory) == "" {
		return fmt.Errorf("launcher_category must not be empty")
	}
	if c.MaxEntrySize < 0 {
		return fmt.Errorf("max_entry_size must not be negative, got %d", c.MaxEntrySize)
	}

	switch c.Decoder {
	case DecoderAPKParser, DecoderAndroidBinary, DecoderText:
	default:
		return fmt.Errorf("invalid decoder %q: must be one of %s, %s, %s",
			c.Decoder, DecoderAPKParser, DecoderAndroidBinary, DecoderText)
	}

	if c.AllowPlainText && c.Decoder != DecoderAPKParser {
		return fmt.Errorf("allow_plain_text only applies to the %s decoder", DecoderAPKParser)
	}

	return nil
}
