package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/refbot"
)

// Ensure the selectors implement refbot.LinkExtractor at compile time.
var (
	_ refbot.LinkExtractor = (*SymbolIndexSelector)(nil)
	_ refbot.LinkExtractor = (*StubIndexSelector)(nil)
)

// SymbolIndexSelector extracts symbol page links from the std:: symbol
// index. Only links under the C++ reference are kept; links back to the
// index itself are dropped.
type SymbolIndexSelector struct{}

// NewSymbolIndexSelector creates a new SymbolIndexSelector.
func NewSymbolIndexSelector() *SymbolIndexSelector {
	return &SymbolIndexSelector{}
}

// ExtractLinks parses the index HTML and returns symbol page links.
func (s *SymbolIndexSelector) ExtractLinks(html string, baseURL string) ([]refbot.ScrapeLink, error) {
	return extractLinks(html, baseURL, "a[href]", func(href string) bool {
		return strings.HasPrefix(href, "/w/cpp") && !strings.HasSuffix(href, "symbol_index")
	})
}

// StubIndexSelector extracts overview page links from the C++ reference
// landing page. Overview pages are the links the landing page renders in
// bold.
type StubIndexSelector struct{}

// NewStubIndexSelector creates a new StubIndexSelector.
func NewStubIndexSelector() *StubIndexSelector {
	return &StubIndexSelector{}
}

// ExtractLinks parses the landing page HTML and returns overview links.
func (s *StubIndexSelector) ExtractLinks(html string, baseURL string) ([]refbot.ScrapeLink, error) {
	return extractLinks(html, baseURL, "b a[href]", nil)
}

// extractLinks collects anchors matching selector, filters their raw
// hrefs through keep (nil keeps everything), resolves them against
// baseURL and deduplicates in document order.
func extractLinks(html string, baseURL string, selector string, keep func(href string) bool) ([]refbot.ScrapeLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []refbot.ScrapeLink

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}
		if keep != nil && !keep(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, refbot.ScrapeLink{
			URL:  resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}
