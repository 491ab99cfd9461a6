package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/refbot"
	main "github.com/fwojciec/refbot/cmd/refbot"
	"github.com/fwojciec/refbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	ids []string
	err error
}

func (l *stubLister) List() ([]string, error) {
	return l.ids, l.err
}

func TestCorporaCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists corpora with entry counts", func(t *testing.T) {
		t.Parallel()

		corpora := &mock.CorpusService{
			CorpusFn: func(_ context.Context, id string) (*refbot.Corpus, error) {
				entries := []*refbot.Entry{
					{Aliases: []string{"std::abs"}, Kind: refbot.KindFunction},
					{Aliases: []string{"std::vector"}, Kind: refbot.KindType},
				}
				if id == "linux-man" {
					entries = entries[:1]
				}
				return &refbot.Corpus{ID: id, Entries: entries}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Corpora: corpora,
			Lister:  &stubLister{ids: []string{"cpp-symbols", "linux-man"}},
		}

		cmd := &main.CorporaCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "cpp-symbols  2 entries")
		assert.Contains(t, stdout.String(), "linux-man  1 entries")
	})

	t.Run("marks corpora that fail to load", func(t *testing.T) {
		t.Parallel()

		corpora := &mock.CorpusService{
			CorpusFn: func(_ context.Context, _ string) (*refbot.Corpus, error) {
				return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus is empty")
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Corpora: corpora,
			Lister:  &stubLister{ids: []string{"cpp-stubs"}},
		}

		cmd := &main.CorporaCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "cpp-stubs  (unavailable)")
	})

	t.Run("prints a hint when no corpora exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Lister: &stubLister{},
		}

		cmd := &main.CorporaCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No corpora found")
		assert.Contains(t, stdout.String(), "refbot scrape")
	})

	t.Run("reports lister failures on stderr", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Lister: &stubLister{err: refbot.Errorf(refbot.EINTERNAL, "disk error")},
		}

		cmd := &main.CorporaCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
