package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathbar/lath/pkg/errors"
)

func TestBuildConfigFromFlags(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--height", "24",
		"--foreground", "#D8DEE9",
		"--background", "#2E3440",
		"--bottom",
		"--opacity", "0.9",
		"--font", "Iosevka",
		"--font-size", "11",
		"--separator", " | ",
	}))

	cfg, err := buildConfig(cmd, "/nonexistent/lath.toml")
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Height)
	assert.Equal(t, "#D8DEE9", cfg.Foreground)
	assert.Equal(t, "#2E3440", cfg.Background)
	assert.True(t, cfg.Bottom)
	assert.Equal(t, 0.9, cfg.Opacity)
	assert.Equal(t, "Iosevka", cfg.Font)
	assert.Equal(t, "11", cfg.FontSize)
	assert.Equal(t, " | ", cfg.Separator)
}

func TestBuildConfigDefaultsSurvive(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--height", "20"}))

	cfg, err := buildConfig(cmd, "/nonexistent/lath.toml")
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, "#FFFFFF", cfg.Foreground)
	assert.Equal(t, "#000000", cfg.Background)
	assert.Equal(t, "Sans", cfg.Font)
	assert.Equal(t, 1.0, cfg.Opacity)
	assert.False(t, cfg.Bottom)
}

func TestBuildConfigRequiresHeight(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{}))

	_, err := buildConfig(cmd, "/nonexistent/lath.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestBuildConfigRejectsBadColor(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--height", "24", "--foreground", "white"}))

	_, err := buildConfig(cmd, "/nonexistent/lath.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestBuildConfigRejectsBadOpacity(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--height", "24", "--opacity", "1.2"}))

	_, err := buildConfig(cmd, "/nonexistent/lath.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestRootCmdHasVersionSubcommand(t *testing.T) {
	cmd := NewRootCmd()
	sub, _, err := cmd.Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "version", sub.Name())
}
