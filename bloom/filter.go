// Package bloom provides probabilistic URL deduplication for scrape
// frontiers.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Dedup tracks visited URLs with a Bloom filter. URL fragments are
// ignored, so URLs differing only by fragment count as one. A fresh URL
// may be misreported as visited (false positive, at the configured
// rate), never the reverse.
type Dedup struct {
	f *bloom.BloomFilter
}

// NewDedup sizes the filter for n expected URLs at the given false
// positive rate.
func NewDedup(n uint, fpRate float64) *Dedup {
	return &Dedup{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit marks a URL as visited. Returns false if it was already marked.
func (d *Dedup) Visit(url string) bool {
	key := canonical(url)
	if d.f.TestString(key) {
		return false
	}
	d.f.AddString(key)
	return true
}

// Visited reports whether the URL has been marked.
func (d *Dedup) Visited(url string) bool {
	return d.f.TestString(canonical(url))
}

// Count approximates how many distinct URLs have been marked.
func (d *Dedup) Count() uint {
	return uint(d.f.ApproximatedSize())
}

func canonical(url string) string {
	if i := strings.Index(url, "#"); i >= 0 {
		return url[:i]
	}
	return url
}
