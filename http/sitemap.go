package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/refbot"
)

// Ensure SitemapService implements refbot.SitemapService.
var _ refbot.SitemapService = (*SitemapService)(nil)

// SitemapService discovers scrape targets from a site's sitemaps. The
// scrape pipeline falls back to it when an index page yields no links.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService. A nil client means
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps,
// deduplicated, in listing order. Sitemap locations come from robots.txt
// Sitemap directives, falling back to /sitemap.xml; sitemap indexes are
// followed recursively. When baseURL carries a path, only URLs under
// that path are kept, and the filter, when non-nil, prunes the rest. A
// site with no sitemap yields an empty, non-nil slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *refbot.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// Sitemaps live at the domain root even when the base URL points
	// into a subtree.
	root := *base
	root.Path = ""
	locations, err := s.sitemapLocations(ctx, &root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		svc:    s,
		filter: filter,
		prefix: pathPrefix(base.Path),
		seen:   make(map[string]bool),
		listed: make(map[string]bool),
	}
	for _, loc := range locations {
		if err := w.walk(ctx, loc); err != nil {
			return nil, err
		}
	}

	if w.urls == nil {
		return []string{}, nil
	}
	return w.urls, nil
}

// sitemapLocations finds the site's sitemap URLs: robots.txt Sitemap
// directives first, then /sitemap.xml if it answers.
func (s *SitemapService) sitemapLocations(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if locs, err := s.robotsSitemaps(ctx, robots); err == nil && len(locs) > 0 {
		return locs, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	if s.answers(ctx, fallback) {
		return []string{fallback}, nil
	}
	return nil, ctx.Err()
}

// robotsSitemaps extracts Sitemap directives from robots.txt. The
// directive name is case-insensitive per the robots.txt convention.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetch(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var locs []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 8 || !strings.EqualFold(line[:8], "sitemap:") {
			continue
		}
		if loc := strings.TrimSpace(line[8:]); loc != "" {
			locs = append(locs, loc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return locs, nil
}

func (s *SitemapService) fetch(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) answers(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// sitemapWalk accumulates page URLs across possibly nested sitemaps,
// guarding against index cycles and duplicate listings.
type sitemapWalk struct {
	svc    *SitemapService
	filter *refbot.URLFilter
	prefix string
	seen   map[string]bool // sitemap locations already walked
	listed map[string]bool // page URLs already collected
	urls   []string
}

func (w *sitemapWalk) walk(ctx context.Context, loc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.seen[loc] {
		return nil
	}
	w.seen[loc] = true

	body, err := w.svc.fetch(ctx, loc)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locTexts(root, "sitemap") {
			if err := w.walk(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, page := range locTexts(root, "url") {
		w.collect(page)
	}
	return nil
}

func (w *sitemapWalk) collect(page string) {
	if w.listed[page] || !w.underPrefix(page) || !w.filter.Match(page) {
		return
	}
	w.listed[page] = true
	w.urls = append(w.urls, page)
}

func (w *sitemapWalk) underPrefix(page string) bool {
	if w.prefix == "" {
		return true
	}
	parsed, err := url.Parse(page)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsed.Path, w.prefix)
}

// locTexts collects the non-empty <loc> texts of root's children with
// the given tag, in document order.
func locTexts(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// pathPrefix normalizes a base path for boundary-safe matching: "/docs"
// matches "/docs/intro" but not "/documentation".
func pathPrefix(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasSuffix(path, "/") {
		return path + "/"
	}
	return path
}
