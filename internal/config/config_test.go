package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.8, c.Threshold)
	assert.Equal(t, 4, c.Decimals)
	assert.Equal(t, "first", c.TieBreak)
	assert.Equal(t, "png", c.ChartFormat)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, 100000, c.MaxRows)
}

func TestEnvOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("CATBIN_THRESHOLD", "0.5")
	t.Setenv("CATBIN_CHART_FORMAT", "svg")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Threshold)
	assert.Equal(t, "svg", c.ChartFormat)
}

func TestLoadRejectsOutOfRangeDecimals(t *testing.T) {
	home := isolate(t)
	t.Setenv("CATBIN_DECIMALS", "400")
	_, err := Load("")
	assert.Error(t, err)

	require.NoError(t, os.Unsetenv("CATBIN_DECIMALS"))
	path := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("decimals: 16\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("decimals: 15\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, c.Decimals)
}

func TestDotEnvIsLoaded(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("CATBIN_DECIMALS=2\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("CATBIN_DECIMALS") })
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Decimals)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	home := isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Set("threshold", "0.65"))
	require.NoError(t, c.Set("tie_break", "Lexical"))
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".catbin", "config.yaml"))
	require.NoError(t, err)

	again, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.65, again.Threshold)
	assert.Equal(t, "lexical", again.TieBreak)

	explicit := filepath.Join(home, "custom.yaml")
	require.NoError(t, Save(again, explicit))
	fromFile, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, again, fromFile)
}

func TestSetRejectsBadValues(t *testing.T) {
	c := &Global{}
	assert.Error(t, c.Set("threshold", "2"))
	assert.Error(t, c.Set("decimals", "16"))
	assert.Error(t, c.Set("chart_format", "gif"))
	assert.Error(t, c.Set("max_rows", "-1"))
	assert.Error(t, c.Set("nope", "1"))

	require.NoError(t, c.Set("chart_width", "1024"))
	v, ok := c.Get("chart_width")
	assert.True(t, ok)
	assert.Equal(t, "1024", v)
}
