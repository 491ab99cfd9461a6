package scrape

import (
	"strings"
	"sync"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/bloom"
)

// Compile-time interface verification.
var _ refbot.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO scrape queue with Bloom filter
// deduplication. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Dedup
	queue []refbot.ScrapeLink
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewDedup(n, fpRate),
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen. URL fragments are
// stripped before deduplication - URLs differing only by fragment are
// considered duplicates.
func (f *Frontier) Push(link refbot.ScrapeLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Visit(link.URL) {
		return false
	}

	link.URL = stripFragment(link.URL)
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the next queued link in insertion order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (refbot.ScrapeLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return refbot.ScrapeLink{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
