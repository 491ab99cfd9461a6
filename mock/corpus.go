package mock

import (
	"context"

	"github.com/fwojciec/refbot"
)

var _ refbot.CorpusService = (*CorpusService)(nil)

// CorpusService is a mock implementation of refbot.CorpusService.
type CorpusService struct {
	CorpusFn func(ctx context.Context, id string) (*refbot.Corpus, error)
}

func (s *CorpusService) Corpus(ctx context.Context, id string) (*refbot.Corpus, error) {
	return s.CorpusFn(ctx, id)
}

var _ refbot.CorpusWriter = (*CorpusWriter)(nil)

// CorpusWriter is a mock implementation of refbot.CorpusWriter.
type CorpusWriter struct {
	SaveCorpusFn func(ctx context.Context, corpus *refbot.Corpus) error
}

func (w *CorpusWriter) SaveCorpus(ctx context.Context, corpus *refbot.Corpus) error {
	return w.SaveCorpusFn(ctx, corpus)
}
