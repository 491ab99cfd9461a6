package mock

import (
	"context"

	"github.com/fwojciec/refbot"
)

var _ refbot.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of refbot.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ refbot.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of refbot.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *refbot.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *refbot.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ refbot.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of refbot.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*refbot.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*refbot.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ refbot.Converter = (*Converter)(nil)

// Converter is a mock implementation of refbot.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
