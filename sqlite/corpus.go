package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/refbot"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var (
	_ refbot.CorpusService = (*CorpusService)(nil)
	_ refbot.CorpusWriter  = (*CorpusService)(nil)
)

// CorpusService implements refbot.CorpusService and refbot.CorpusWriter
// using SQLite. Loaded corpora are cached for the process lifetime;
// concurrent first loads are collapsed via singleflight.
type CorpusService struct {
	db *DB

	mu    sync.RWMutex
	cache map[string]*refbot.Corpus
	group singleflight.Group
}

// NewCorpusService creates a new CorpusService.
func NewCorpusService(db *DB) *CorpusService {
	return &CorpusService{
		db:    db,
		cache: make(map[string]*refbot.Corpus),
	}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// Corpus returns the corpus with the given ID, loading it on first use.
// Returns EUNAVAILABLE when the corpus is absent or holds no entries.
func (s *CorpusService) Corpus(ctx context.Context, id string) (*refbot.Corpus, error) {
	s.mu.RLock()
	corpus, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return corpus, nil
	}

	v, err, _ := s.group.Do(id, func() (any, error) {
		corpus, err := s.load(ctx, id)
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

func (s *CorpusService) load(ctx context.Context, id string) (*refbot.Corpus, error) {
	var storedID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM corpora WHERE id = ?
	`, id).Scan(&storedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus %q has not been scraped", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM entries WHERE corpus_id = ? ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*refbot.Entry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var entry refbot.Entry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, refbot.Errorf(refbot.EINTERNAL, "corpus %q: corrupt entry payload: %v", id, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus %q is empty", id)
	}

	return &refbot.Corpus{ID: id, Entries: entries}, nil
}

// SaveCorpus replaces the stored corpus with the same ID, if any.
// Entries are written in corpus order; the replacement is transactional
// so readers never observe a partial corpus.
func (s *CorpusService) SaveCorpus(ctx context.Context, corpus *refbot.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Cascade removes the previous entries.
	if _, err := tx.ExecContext(ctx, `DELETE FROM corpora WHERE id = ?`, corpus.ID); err != nil {
		return err
	}

	scrapedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO corpora (id, entry_count, scraped_at) VALUES (?, ?, ?)
	`, corpus.ID, len(corpus.Entries), scrapedAt); err != nil {
		return err
	}

	for i, entry := range corpus.Entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entries (id, corpus_id, position, kind, payload, content_hash, link)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), corpus.ID, i, string(entry.Kind), string(payload),
			hashContent(string(payload)), entry.Link); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[corpus.ID] = corpus
	s.mu.Unlock()
	return nil
}

// CorpusInfo describes one stored corpus.
type CorpusInfo struct {
	ID         string
	EntryCount int
	ScrapedAt  time.Time
}

// ListCorpora returns metadata for all stored corpora.
func (s *CorpusService) ListCorpora(ctx context.Context) ([]CorpusInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_count, scraped_at FROM corpora ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []CorpusInfo
	for rows.Next() {
		var info CorpusInfo
		var scrapedAt string
		if err := rows.Scan(&info.ID, &info.EntryCount, &scrapedAt); err != nil {
			return nil, err
		}
		info.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
