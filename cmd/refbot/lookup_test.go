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

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("resolves a symbol and prints its card pages", func(t *testing.T) {
		t.Parallel()

		corpora := &mock.CorpusService{
			CorpusFn: func(_ context.Context, id string) (*refbot.Corpus, error) {
				assert.Equal(t, "cpp-symbols", id)
				return &refbot.Corpus{
					ID: "cpp-symbols",
					Entries: []*refbot.Entry{
						{
							Aliases:   []string{"std::abs"},
							Kind:      refbot.KindFunction,
							Signature: "int abs( int n );",
							Params:    []string{"n - integer value"},
							Return:    "The absolute value of n.",
							Link:      "https://en.cppreference.com/w/cpp/numeric/math/abs",
						},
					},
				}, nil
			},
		}

		var gotQuery string
		matcher := &mock.Matcher{
			BestFn: func(query string, candidates []string) (string, error) {
				gotQuery = query
				return candidates[0], nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Config:  main.DefaultConfig(),
			Corpora: corpora,
			Matcher: matcher,
		}

		cmd := &main.LookupCmd{Query: "abs", Corpus: "cpp-symbols"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "std::abs", gotQuery)

		output := stdout.String()
		assert.Contains(t, output, "C++: std::abs")
		assert.Contains(t, output, "Parameters")
		assert.Contains(t, output, "n - integer value")
		assert.Contains(t, output, "The absolute value of n.")
		assert.Contains(t, output, "https://en.cppreference.com/w/cpp/numeric/math/abs")
		assert.Contains(t, output, "Page 1 / 1")
		assert.Empty(t, stderr.String())
	})

	t.Run("reports an unavailable corpus on stderr", func(t *testing.T) {
		t.Parallel()

		corpora := &mock.CorpusService{
			CorpusFn: func(_ context.Context, _ string) (*refbot.Corpus, error) {
				return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus \"linux-man\" has not been scraped")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Config:  main.DefaultConfig(),
			Corpora: corpora,
		}

		cmd := &main.LookupCmd{Query: "fork", Corpus: "linux-man"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, refbot.EUNAVAILABLE, refbot.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Contains(t, stderr.String(), "has not been scraped")
		assert.Empty(t, stdout.String())
	})

	t.Run("does not prefix std:: outside the cpp-symbols corpus", func(t *testing.T) {
		t.Parallel()

		corpora := &mock.CorpusService{
			CorpusFn: func(_ context.Context, _ string) (*refbot.Corpus, error) {
				return &refbot.Corpus{
					ID: "linux-man",
					Entries: []*refbot.Entry{
						{
							Aliases: []string{"fork"},
							Kind:    refbot.KindManpage,
							Sections: []refbot.Section{
								{Header: "NAME", Text: "fork - create a child process"},
							},
						},
					},
				}, nil
			},
		}

		var gotQuery string
		matcher := &mock.Matcher{
			BestFn: func(query string, candidates []string) (string, error) {
				gotQuery = query
				return candidates[0], nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Config:  main.DefaultConfig(),
			Corpora: corpora,
			Matcher: matcher,
		}

		cmd := &main.LookupCmd{Query: "fork", Corpus: "linux-man"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "fork", gotQuery)
		assert.Contains(t, stdout.String(), "man: fork")
		assert.Contains(t, stdout.String(), "create a child process")
	})
}
