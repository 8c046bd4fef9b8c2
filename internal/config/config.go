// Package config holds the settings of the langid command line tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory if no configuration
// file is given explicitly.
const DefaultFile = "langid.toml"

// Config are the settings of a langid run. Command line flags override
// values read from a file.
type Config struct {
	Model     string   // model file; empty means the built-in model
	Languages []string // restrict classification to these labels
	Jobs      int      // concurrent classifications for batch runs, 0 = GOMAXPROCS
	Top       int      // ranking entries to print, 0 = all
	Color     string   // auto, always or never
	Format    string   // text or json
}

// ErrInvalidConfig is wrapped by errors about configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

var (
	colorModes = []string{"auto", "always", "never"}
	formats    = []string{"text", "json"}
)

type fileConfig struct {
	Model     string   `toml:"model"`
	Languages []string `toml:"languages"`
	Jobs      int      `toml:"jobs"`
	Top       int      `toml:"top"`
	Color     string   `toml:"color"`
	Format    string   `toml:"format"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{Top: 5, Color: "auto", Format: "text"}
}

// Load reads the TOML file at path on top of the defaults. Keys missing
// from the file keep their default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	var file fileConfig
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if meta.IsDefined("model") {
		cfg.Model = file.Model
	}
	if meta.IsDefined("languages") {
		cfg.Languages = file.Languages
	}
	if meta.IsDefined("jobs") {
		cfg.Jobs = file.Jobs
	}
	if meta.IsDefined("top") {
		cfg.Top = file.Top
	}
	if meta.IsDefined("color") {
		cfg.Color = file.Color
	}
	if meta.IsDefined("format") {
		cfg.Format = file.Format
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the file at path if path is set. Otherwise it loads
// DefaultFile if present in the working directory, and falls back to the
// defaults. The name of the file read, if any, is returned as well.
func Resolve(path string) (Config, string, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), "", nil
		}
		path = DefaultFile
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, is %d", ErrInvalidConfig, c.Jobs)
	}
	if c.Top < 0 {
		return fmt.Errorf("%w: top must not be negative, is %d", ErrInvalidConfig, c.Top)
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("%w: color must be one of %v, is %q", ErrInvalidConfig, colorModes, c.Color)
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w: format must be one of %v, is %q", ErrInvalidConfig, formats, c.Format)
	}
	return nil
}
