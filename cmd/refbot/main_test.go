package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/refbot/cmd/refbot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMain returns a Main configured against a temp directory with a
// filesystem corpus store at dataDir.
func newTestMain(t *testing.T) (*main.Main, string) {
	t.Helper()

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "corpora")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	configPath := filepath.Join(dir, "config.yaml")
	config := fmt.Sprintf("storage: fs\ndata_dir: %s\n", dataDir)
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	m := main.NewMain()
	m.ConfigPath = configPath
	return m, dataDir
}

func writeCorpus(t *testing.T, dataDir, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, id+".json"), []byte(content), 0o644))
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m, _ := newTestMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	expectedCommands := []string{"lookup", "view", "scrape", "corpora"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoCommandShowsHelp(t *testing.T) {
	t.Parallel()

	m, _ := newTestMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "lookup")
}

func TestMain_Run_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("resolves a symbol from a stored corpus", func(t *testing.T) {
		t.Parallel()

		m, dataDir := newTestMain(t)
		writeCorpus(t, dataDir, "cpp-symbols", `[
			{
				"aliases": ["std::abs"],
				"kind": "function",
				"signature": "int abs( int n );",
				"params": ["n - integer value"],
				"return": "The absolute value of n.",
				"link": "https://en.cppreference.com/w/cpp/numeric/math/abs"
			},
			{
				"aliases": ["std::vector"],
				"kind": "type",
				"link": "https://en.cppreference.com/w/cpp/container/vector"
			}
		]`)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"lookup", "abs"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "C++: std::abs")
		assert.Contains(t, stdout.String(), "The absolute value of n.")
	})

	t.Run("tolerates typos in the query", func(t *testing.T) {
		t.Parallel()

		m, dataDir := newTestMain(t)
		writeCorpus(t, dataDir, "cpp-symbols", `[
			{"aliases": ["std::vector"], "kind": "type"},
			{"aliases": ["std::list"], "kind": "type"}
		]`)

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"lookup", "vectr"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "C++: std::vector")
	})

	t.Run("fails when the corpus has not been scraped", func(t *testing.T) {
		t.Parallel()

		m, _ := newTestMain(t)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"lookup", "abs"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestMain_Run_Corpora(t *testing.T) {
	t.Parallel()

	t.Run("lists stored corpora", func(t *testing.T) {
		t.Parallel()

		m, dataDir := newTestMain(t)
		writeCorpus(t, dataDir, "cpp-symbols", `[{"aliases": ["std::abs"], "kind": "function"}]`)
		writeCorpus(t, dataDir, "linux-man", `[{"aliases": ["fork"], "kind": "manpage"}]`)

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"corpora"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "cpp-symbols  1 entries")
		assert.Contains(t, stdout.String(), "linux-man  1 entries")
	})

	t.Run("hints at scraping when nothing is stored", func(t *testing.T) {
		t.Parallel()

		m, _ := newTestMain(t)

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"corpora"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No corpora found")
	})
}

func TestMain_Run_SqliteBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	config := fmt.Sprintf("storage: sqlite\ndb_path: %s\n", filepath.Join(dir, "refbot.db"))
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	m := main.NewMain()
	m.ConfigPath = configPath

	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"corpora"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No corpora found")
}
