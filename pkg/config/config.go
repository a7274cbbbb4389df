// Package config holds the bar configuration. It is assembled once at
// startup from built-in defaults, an optional TOML file and command line
// flags, and is read-only afterwards.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lathbar/lath/pkg/errors"
)

// Config is the immutable bar configuration.
type Config struct {
	Height     int     `koanf:"height"`     // bar height in pixels
	Opacity    float64 `koanf:"opacity"`    // 0.0 (transparent) to 1.0 (opaque)
	Foreground string  `koanf:"foreground"` // hex text color
	Background string  `koanf:"background"` // hex bar color
	Bottom     bool    `koanf:"bottom"`     // dock at the bottom edge
	Font       string  `koanf:"font"`       // Pango font family/description
	FontSize   string  `koanf:"font_size"`  // Pango size, appended to the font
	Separator  string  `koanf:"separator"`  // joins sections of one alignment group
}

// Default returns the built-in configuration. Height has no sane default
// and must be provided by the file or the --height flag.
func Default() Config {
	return Config{
		Opacity:    1.0,
		Foreground: "#FFFFFF",
		Background: "#000000",
		Font:       "Sans",
		FontSize:   "12",
		Separator:  "",
	}
}

// DefaultPath returns the XDG location of the optional config file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "lath", "lath.toml")
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; flags are overlaid later by the CLI layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config file %s", path)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "cannot decode config file %s", path)
	}

	return cfg, nil
}

// Validate checks the assembled configuration. Violations carry the
// CONFIG_INVALID code with the offending field in the details.
func (c *Config) Validate() error {
	if c.Height <= 0 {
		return errors.Newf(errors.ErrConfigValid, "height must be positive, got %d", c.Height).
			WithDetail("field", "height")
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return errors.Newf(errors.ErrConfigValid, "opacity must be between 0 and 1, got %g", c.Opacity).
			WithDetail("field", "opacity")
	}
	if _, err := colorful.Hex(c.Foreground); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid foreground color %q", c.Foreground).
			WithDetail("field", "foreground")
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid background color %q", c.Background).
			WithDetail("field", "background")
	}
	if c.Font == "" {
		return errors.New(errors.ErrConfigValid, "font must not be empty").
			WithDetail("field", "font")
	}
	if size, err := strconv.ParseFloat(c.FontSize, 64); err != nil || size <= 0 {
		return errors.Newf(errors.ErrConfigValid, "font size must be a positive number, got %q", c.FontSize).
			WithDetail("field", "font_size")
	}
	return nil
}

// ForegroundColor returns the parsed foreground. Call Validate first.
func (c *Config) ForegroundColor() colorful.Color {
	col, _ := colorful.Hex(c.Foreground)
	return col
}

// BackgroundColor returns the parsed background. Call Validate first.
func (c *Config) BackgroundColor() colorful.Color {
	col, _ := colorful.Hex(c.Background)
	return col
}

// FontDescription returns the Pango font description string, e.g. "Sans 12".
func (c *Config) FontDescription() string {
	return c.Font + " " + c.FontSize
}
