package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"locplot/internal/config"
	"locplot/internal/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd("v0.1.0")
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "locplot version v0.1.0\n", output)
}

func TestCountersCommand(t *testing.T) {
	output, err := execute(t, "counters")
	require.NoError(t, err)
	assert.Contains(t, output, "COUNTER")
	assert.Contains(t, output, "scc")
	assert.Contains(t, output, "tokei")
}

func TestPlotRejectsInvalidFlags(t *testing.T) {
	_, err := execute(t, "plot", ".", "--releases", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidReleases), "got %v", err)

	_, err = execute(t, "plot", ".", "--counter", "cloc")
	assert.True(t, errors.Is(err, config.ErrUnknownCounter), "got %v", err)
}

func TestPlotRequiresRepository(t *testing.T) {
	_, err := execute(t, "plot")
	assert.Error(t, err)
}

func TestCountRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "count", ".", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestTagsCommand(t *testing.T) {
	origin := repotest.Init(t)
	for _, tag := range []string{"v1.9.0", "v1.10.0", "v2.0.0"} {
		repotest.Commit(t, origin, map[string]string{"VERSION": tag + "\n"}, "release "+tag)
		repotest.Tag(t, origin, tag)
	}
	workdir := repotest.Clone(t, origin)

	output, err := execute(t, "tags", workdir, "--releases", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.10.0", "v2.0.0"}, strings.Fields(output))
	assert.Equal(t, "main", repotest.Branch(t, workdir))
}

func TestTagsCommandWithoutReleases(t *testing.T) {
	origin := repotest.Init(t)
	repotest.Commit(t, origin, map[string]string{"main.go": "package main\n"}, "initial")
	workdir := repotest.Clone(t, origin)

	output, err := execute(t, "tags", workdir)
	require.NoError(t, err)
	assert.Contains(t, output, "No releases found!")
}
