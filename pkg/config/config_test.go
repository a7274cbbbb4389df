package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathbar/lath/pkg/errors"
)

func validConfig() Config {
	cfg := Default()
	cfg.Height = 24
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1.0, cfg.Opacity)
	assert.Equal(t, "#FFFFFF", cfg.Foreground)
	assert.Equal(t, "#000000", cfg.Background)
	assert.Equal(t, "Sans", cfg.Font)
	assert.Equal(t, "12", cfg.FontSize)
	assert.Equal(t, "", cfg.Separator)
	assert.False(t, cfg.Bottom)
	assert.Zero(t, cfg.Height, "height has no default")
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lath.toml")
	content := `
height = 32
bottom = true
foreground = "#A3BE8C"
separator = " | "
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Height)
	assert.True(t, cfg.Bottom)
	assert.Equal(t, "#A3BE8C", cfg.Foreground)
	assert.Equal(t, " | ", cfg.Separator)
	// Untouched keys keep their defaults.
	assert.Equal(t, "#000000", cfg.Background)
	assert.Equal(t, "Sans", cfg.Font)
	assert.Equal(t, 1.0, cfg.Opacity)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lath.toml")
	require.NoError(t, os.WriteFile(path, []byte("height = [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing height", func(c *Config) { c.Height = 0 }, "height"},
		{"negative height", func(c *Config) { c.Height = -5 }, "height"},
		{"opacity too high", func(c *Config) { c.Opacity = 1.5 }, "opacity"},
		{"opacity negative", func(c *Config) { c.Opacity = -0.1 }, "opacity"},
		{"bad foreground", func(c *Config) { c.Foreground = "red" }, "foreground"},
		{"bad background", func(c *Config) { c.Background = "#GGGGGG" }, "background"},
		{"empty font", func(c *Config) { c.Font = "" }, "font"},
		{"non-numeric font size", func(c *Config) { c.FontSize = "big" }, "font_size"},
		{"zero font size", func(c *Config) { c.FontSize = "0" }, "font_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

			var lathErr *errors.LathError
			require.ErrorAs(t, err, &lathErr)
			assert.Equal(t, tt.field, lathErr.Details["field"])
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.Foreground = "#abc" // short hex form
	cfg.Opacity = 0
	cfg.FontSize = "10.5"
	require.NoError(t, cfg.Validate())
}

func TestColorAccessors(t *testing.T) {
	cfg := validConfig()
	cfg.Foreground = "#FF0000"
	cfg.Background = "#0000FF"

	fg := cfg.ForegroundColor()
	assert.InDelta(t, 1.0, fg.R, 0.001)
	assert.InDelta(t, 0.0, fg.G, 0.001)
	assert.InDelta(t, 0.0, fg.B, 0.001)

	bg := cfg.BackgroundColor()
	assert.InDelta(t, 0.0, bg.R, 0.001)
	assert.InDelta(t, 1.0, bg.B, 0.001)
}

func TestFontDescription(t *testing.T) {
	cfg := validConfig()
	cfg.Font = "Iosevka"
	cfg.FontSize = "11"
	assert.Equal(t, "Iosevka 11", cfg.FontDescription())
}

func TestDefaultPath(t *testing.T) {
	assert.Contains(t, DefaultPath(), filepath.Join("lath", "lath.toml"))
}
