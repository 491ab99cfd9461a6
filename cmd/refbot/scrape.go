package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	job := scrape.Job{CorpusID: c.Corpus, IndexURL: c.URL, Filter: scrapeFilter(c.Kind)}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d pages...\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", scrape.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeCorpus(deps.Ctx, job, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", refbot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d entries to %q (%d skipped, %d failed)\n",
		result.Entries, c.Corpus, result.Skipped, result.Failed)
	return nil
}

// scrapeFilter scopes sitemap discovery to the reference pages for a
// page kind. Symbol scrapes stay inside the C++ reference and skip the
// symbol index pages, which the link extractor handles itself. Manpage
// scrapes stay inside the man-pages sections.
func scrapeFilter(kind string) *refbot.URLFilter {
	switch kind {
	case "symbol":
		return &refbot.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/w/cpp/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`symbol_index`)},
		}
	case "manpage":
		return &refbot.URLFilter{
			Include: []*regexp.Regexp{
				regexp.MustCompile(`/man-pages/`),
				regexp.MustCompile(`/man[1-8]/`),
			},
		}
	default:
		return nil
	}
}
