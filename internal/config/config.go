// Package config loads the YAML settings of the scandir command.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gbansaghi/scandir"
)

// Output formats understood by the command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the defaults the command applies to every listing.
type Config struct {
	// Format is the output format: text, json or yaml.
	Format string `yaml:"format"`
	// NoDots drops "." and "..".
	NoDots bool `yaml:"no_dots"`
	// Types keeps only entries with these type tags (see scandir.ParseFileType).
	Types []string `yaml:"types,omitempty"`
	// Suffix keeps only names ending with it.
	Suffix string `yaml:"suffix,omitempty"`
	// Prefix keeps only names starting with it.
	Prefix string `yaml:"prefix,omitempty"`
	// ReadBufSize sets the dirent read buffer size in bytes (0 = default).
	ReadBufSize int `yaml:"read_buf_size,omitempty"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Format: FormatText,
	}
}

// GetConfigPath returns the per-user config file path, or "" if the user
// config directory is unknown.
func GetConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "scandir", "config.yaml")
}

// Load returns the defaults overlaid with the file at path.
//
// If path is empty, the per-user config file is used when it exists and the
// defaults are returned otherwise. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
		if path == "" {
			return cfg, nil
		}

		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	if err := cfg.loadFromFile(path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Errorf("unknown format %q", c.Format)
	}

	if _, err := c.FileTypes(); err != nil {
		return err
	}

	if c.ReadBufSize < 0 {
		return errors.Errorf("read_buf_size must not be negative, got %d", c.ReadBufSize)
	}

	return nil
}

// FileTypes parses Types.
func (c *Config) FileTypes() ([]scandir.FileType, error) {
	types := make([]scandir.FileType, 0, len(c.Types))

	for _, s := range c.Types {
		t, ok := scandir.ParseFileType(s)
		if !ok {
			return nil, errors.Errorf("unknown file type %q", s)
		}

		types = append(types, t)
	}

	return types, nil
}

// EntryFilter builds the entry-level filter described by NoDots and Types.
// It returns nil (accept everything) when neither is set.
func (c *Config) EntryFilter() (scandir.EntryFilter, error) {
	var filters []scandir.EntryFilter

	if c.NoDots {
		filters = append(filters, scandir.SkipDots)
	}

	if len(c.Types) > 0 {
		types, err := c.FileTypes()
		if err != nil {
			return nil, err
		}

		filters = append(filters, scandir.OfType(types...))
	}

	if len(filters) == 0 {
		return nil, nil
	}

	return scandir.AllOf(filters...), nil
}

// NameFilter builds the name-level filter described by Prefix and Suffix.
// It returns nil (accept everything) when neither is set.
func (c *Config) NameFilter() scandir.ValueFilter[string] {
	if c.Prefix == "" && c.Suffix == "" {
		return nil
	}

	hasPrefix, hasSuffix := scandir.HasPrefix(c.Prefix), scandir.HasSuffix(c.Suffix)

	return func(name string) bool {
		return hasPrefix(name) && hasSuffix(name)
	}
}

// Options returns the scan options described by the config.
func (c *Config) Options() []scandir.Option {
	if c.ReadBufSize > 0 {
		return []scandir.Option{scandir.WithReadBufSize(c.ReadBufSize)}
	}

	return nil
}
