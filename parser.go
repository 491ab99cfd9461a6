package refbot

// EntryParser turns one reference page into a corpus entry.
type EntryParser interface {
	// Parse extracts an entry from the page HTML. pageURL becomes the
	// entry link. Returns EINVALID when the page is not of the kind the
	// parser handles, so the scrape pipeline can skip it.
	Parse(html string, pageURL string) (*Entry, error)
}

// LinkExtractor discovers scrape targets on a reference index page.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the links to follow, resolved
	// against baseURL. Links to other hosts are dropped.
	ExtractLinks(html string, baseURL string) ([]ScrapeLink, error)
}
