package refbot

import "context"

// ScrapeLink is a discovered reference page URL queued for scraping.
type ScrapeLink struct {
	URL string

	// Text is the anchor text the link was discovered under, when known.
	Text string
}

// URLFrontier manages a scrape queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link ScrapeLink) bool

	// Pop returns the next queued link.
	// Returns false if the frontier is empty.
	Pop() (ScrapeLink, bool)

	// Len returns the number of links in the queue.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
