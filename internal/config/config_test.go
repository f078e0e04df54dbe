package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 52, cfg.Releases)
	assert.Equal(t, "loc.html", cfg.Output)
	assert.False(t, cfg.KeepClone)
	assert.Empty(t, cfg.Excludes)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, 30*time.Minute, cfg.Git.Timeout)
	assert.Equal(t, "tokei", cfg.Counter.Kind)
	assert.Equal(t, "light", cfg.Chart.Theme)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "releases: 10\n" +
		"output: out/history.html\n" +
		"excludes: [\"vendor/*\", \"*.pb.go\"]\n" +
		"git:\n  timeout: 5m\n  clean_ignored: true\n" +
		"counter:\n  kind: scc\n" +
		"chart:\n  theme: dark\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("LOCPLOT_RELEASES", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Releases)
	assert.Equal(t, "out/history.html", cfg.Output)
	assert.Equal(t, []string{"vendor/*", "*.pb.go"}, cfg.Excludes)
	assert.Equal(t, 5*time.Minute, cfg.Git.Timeout)
	assert.True(t, cfg.Git.CleanIgnored)
	assert.Equal(t, "scc", cfg.Counter.Kind)
	assert.Equal(t, "dark", cfg.Chart.Theme)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Releases: 52,
			Output:   "loc.html",
			Counter:  CounterConfig{Kind: "tokei"},
			Chart:    ChartConfig{Theme: "light"},
			Logging:  LoggingConfig{Level: "info"},
		}
	}

	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{name: "releases", mutate: func(c *Config) { c.Releases = 0 }, target: ErrInvalidReleases},
		{name: "output", mutate: func(c *Config) { c.Output = " " }, target: ErrInvalidOutput},
		{name: "counter", mutate: func(c *Config) { c.Counter.Kind = "cloc" }, target: ErrUnknownCounter},
		{name: "theme", mutate: func(c *Config) { c.Chart.Theme = "neon" }, target: ErrUnknownTheme},
		{name: "git timeout", mutate: func(c *Config) { c.Git.Timeout = -time.Second }, target: ErrInvalidTimeout},
		{name: "counter timeout", mutate: func(c *Config) { c.Counter.Timeout = -time.Second }, target: ErrInvalidTimeout},
		{name: "log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, target: ErrInvalidLogLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}
