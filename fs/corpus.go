// Package fs provides a filesystem-backed corpus store. Each corpus is one
// JSON array in <dir>/<id>.json, loaded lazily, cached for the process
// lifetime, and written atomically via a temp file rename.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/refbot"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var (
	_ refbot.CorpusService = (*CorpusStore)(nil)
	_ refbot.CorpusWriter  = (*CorpusStore)(nil)
)

// CorpusStore reads and writes corpora under a base directory.
//
// Loads are idempotent: the first request for a corpus reads and decodes
// its file, later requests hit the in-memory cache. Concurrent first
// requests are collapsed into a single read via singleflight, so a burst
// of lookups at startup cannot trigger redundant file reads.
type CorpusStore struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*refbot.Corpus
	group singleflight.Group
}

// NewCorpusStore creates a store over the given directory.
func NewCorpusStore(dir string) *CorpusStore {
	return &CorpusStore{
		dir:   dir,
		cache: make(map[string]*refbot.Corpus),
	}
}

// Corpus returns the corpus with the given ID, loading it on first use.
// Returns EUNAVAILABLE when the backing file is missing or holds no
// entries, so the caller can tell users the data needs regenerating.
func (s *CorpusStore) Corpus(ctx context.Context, id string) (*refbot.Corpus, error) {
	s.mu.RLock()
	corpus, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return corpus, nil
	}

	v, err, _ := s.group.Do(id, func() (any, error) {
		corpus, err := s.load(id)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[id] = corpus
		s.mu.Unlock()
		return corpus, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*refbot.Corpus), nil
}

// SaveCorpus writes the corpus to <dir>/<id>.json, replacing any previous
// file. The write goes to a temp file first and is renamed into place so
// readers never observe a partial corpus. The cache entry is refreshed.
func (s *CorpusStore) SaveCorpus(ctx context.Context, corpus *refbot.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(corpus.Entries, "", "  ")
	if err != nil {
		return err
	}

	final := s.path(corpus.ID)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[corpus.ID] = corpus
	s.mu.Unlock()
	return nil
}

// List returns the IDs of all corpora present in the directory.
func (s *CorpusStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, e.Name()[:len(e.Name())-len(".json")])
	}
	return ids, nil
}

func (s *CorpusStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *CorpusStore) load(id string) (*refbot.Corpus, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus %q has no backing file", id)
	}
	if err != nil {
		return nil, err
	}

	entries, err := decodeEntries(data, defaultKind(id))
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "corpus %q: %s", id, err)
	}
	if len(entries) == 0 {
		return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus %q is empty", id)
	}

	return &refbot.Corpus{ID: id, Entries: entries}, nil
}
