package mock

import "github.com/fwojciec/refbot"

var _ refbot.EntryParser = (*EntryParser)(nil)

// EntryParser is a mock implementation of refbot.EntryParser.
type EntryParser struct {
	ParseFn func(html string, pageURL string) (*refbot.Entry, error)
}

func (p *EntryParser) Parse(html string, pageURL string) (*refbot.Entry, error) {
	return p.ParseFn(html, pageURL)
}

var _ refbot.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of refbot.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]refbot.ScrapeLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]refbot.ScrapeLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
