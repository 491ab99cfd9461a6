// Package scrape provides corpus scraping orchestration.
// It coordinates link discovery, fetching, parsing, and storage of
// reference pages as corpus entries.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/refbot"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for index-driven scrapes.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Job describes one corpus scrape: the index page to start from and the
// corpus ID the entries are saved under.
type Job struct {
	CorpusID string
	IndexURL string

	// Filter narrows sitemap-discovered URLs. Unused for index links,
	// which the link extractor already scopes.
	Filter *refbot.URLFilter
}

// Scraper orchestrates the scraping of a reference corpus.
type Scraper struct {
	Fetcher     refbot.Fetcher
	Links       refbot.LinkExtractor
	Parser      refbot.EntryParser
	Corpora     refbot.CorpusWriter
	Sitemaps    refbot.SitemapService
	RateLimiter refbot.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a scrape operation.
type Result struct {
	// Entries is the number of entries saved to the corpus.
	Entries int
	// Skipped counts pages the parser rejected as not being entry pages.
	Skipped int
	// Failed counts pages that could not be fetched or parsed.
	Failed int
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	url      string
	entry    *refbot.Entry
	skipped  bool
	err      error
}

// ScrapeCorpus fetches the job's index page, follows every discovered
// link, parses each page into an entry, and saves the collected entries
// as one corpus. Entries keep index order regardless of fetch completion
// order. The progress callback, if provided, receives events as scraping
// proceeds.
func (s *Scraper) ScrapeCorpus(ctx context.Context, job Job, progress ProgressFunc) (*Result, error) {
	if job.CorpusID == "" || job.IndexURL == "" {
		return nil, refbot.Errorf(refbot.EINVALID, "scrape job requires a corpus ID and an index URL")
	}

	indexHTML, err := s.fetch(ctx, job.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching index %s: %w", job.IndexURL, err)
	}

	links, err := s.Links.ExtractLinks(indexHTML, job.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("extracting index links: %w", err)
	}

	// Sites without a usable index page can still be scraped through
	// their sitemap.
	if len(links) == 0 && s.Sitemaps != nil {
		urls, err := s.Sitemaps.DiscoverURLs(ctx, job.IndexURL, job.Filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
		for _, u := range urls {
			links = append(links, refbot.ScrapeLink{URL: u})
		}
	}

	// The frontier deduplicates; index pages routinely link the same
	// symbol more than once.
	var frontier refbot.URLFrontier = NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, link := range links {
		frontier.Push(link)
	}

	targets := make([]refbot.ScrapeLink, 0, frontier.Len())
	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		targets = append(targets, link)
	}

	if len(targets) == 0 {
		return &Result{}, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(targets)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan pageResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, link := range targets {
			i, link := i, link
			g.Go(func() error {
				resultCh <- s.processPage(gctx, i, link.URL)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var skipped, failed int
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res

		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       res.url,
			Error:     res.err,
		}
		switch {
		case res.skipped:
			skipped++
			event.Type = ProgressSkipped
		case res.err != nil:
			failed++
			event.Type = ProgressFailed
		default:
			event.Type = ProgressCompleted
		}
		if progress != nil {
			progress(event)
		}
	}

	var entries []*refbot.Entry
	for _, res := range results {
		if res.entry != nil {
			entries = append(entries, res.entry)
		}
	}

	if len(entries) > 0 {
		corpus := &refbot.Corpus{ID: job.CorpusID, Entries: entries}
		if err := s.Corpora.SaveCorpus(ctx, corpus); err != nil {
			return nil, fmt.Errorf("saving corpus %q: %w", job.CorpusID, err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &Result{Entries: len(entries), Skipped: skipped, Failed: failed}, nil
}

// processPage fetches and parses a single reference page.
func (s *Scraper) processPage(ctx context.Context, position int, pageURL string) pageResult {
	result := pageResult{position: position, url: pageURL}

	if s.RateLimiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := s.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	entry, err := s.Parser.Parse(html, pageURL)
	if err != nil {
		// Index pages link plenty of non-entry pages; the parser flags
		// those as EINVALID and they are skipped rather than failed.
		if refbot.ErrorCode(err) == refbot.EINVALID {
			result.skipped = true
		} else {
			result.err = err
		}
		return result
	}

	result.entry = entry
	return result
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, nil, delays)
}
