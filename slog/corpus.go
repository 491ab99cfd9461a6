package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/refbot"
)

// Ensure LoggingCorpusService implements refbot.CorpusService.
var _ refbot.CorpusService = (*LoggingCorpusService)(nil)

// LoggingCorpusService wraps a CorpusService with debug logging.
type LoggingCorpusService struct {
	next   refbot.CorpusService
	logger *slog.Logger
}

// NewLoggingCorpusService creates a new LoggingCorpusService.
func NewLoggingCorpusService(next refbot.CorpusService, logger *slog.Logger) *LoggingCorpusService {
	return &LoggingCorpusService{next: next, logger: logger}
}

// Corpus delegates to the wrapped service and logs the operation.
func (s *LoggingCorpusService) Corpus(ctx context.Context, id string) (corpus *refbot.Corpus, err error) {
	defer func(begin time.Time) {
		entries := 0
		if corpus != nil {
			entries = len(corpus.Entries)
		}
		s.logger.Info("corpus load",
			"corpus", id,
			"entries", entries,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Corpus(ctx, id)
}

// Ensure LoggingCorpusWriter implements refbot.CorpusWriter.
var _ refbot.CorpusWriter = (*LoggingCorpusWriter)(nil)

// LoggingCorpusWriter wraps a CorpusWriter with debug logging.
type LoggingCorpusWriter struct {
	next   refbot.CorpusWriter
	logger *slog.Logger
}

// NewLoggingCorpusWriter creates a new LoggingCorpusWriter.
func NewLoggingCorpusWriter(next refbot.CorpusWriter, logger *slog.Logger) *LoggingCorpusWriter {
	return &LoggingCorpusWriter{next: next, logger: logger}
}

// SaveCorpus delegates to the wrapped writer and logs the operation.
func (w *LoggingCorpusWriter) SaveCorpus(ctx context.Context, corpus *refbot.Corpus) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("corpus save",
			"corpus", corpus.ID,
			"entries", len(corpus.Entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.SaveCorpus(ctx, corpus)
}
