package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/refbot"
)

// Ensure StubParser implements refbot.EntryParser at compile time.
var _ refbot.EntryParser = (*StubParser)(nil)

// StubParser parses a cppreference library overview page (e.g. the
// Algorithms library page) into a stub entry: the page title plus its
// sections in source order.
type StubParser struct{}

// NewStubParser creates a parser producing stub entries.
func NewStubParser() *StubParser {
	return &StubParser{}
}

// Parse extracts a stub entry from the page HTML.
func (p *StubParser) Parse(html string, pageURL string) (*refbot.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "failed to parse HTML: %v", err)
	}

	name := strings.TrimSpace(doc.Find("h1.firstHeading").First().Text())
	if name == "" {
		return nil, refbot.Errorf(refbot.EINVALID, "page %q has no heading", pageURL)
	}

	entry := &refbot.Entry{
		Aliases:  []string{name},
		Kind:     refbot.KindStub,
		Headers:  dedup(selectTexts(doc, "tr.t-dsc-header code")),
		Sections: sections(doc),
		Link:     pageURL,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// sections pairs each section headline with the paragraph text that
// follows it, up to the next headline. Headlines starting with a space
// are navigation artifacts and skipped.
func sections(doc *goquery.Document) []refbot.Section {
	var out []refbot.Section
	doc.Find("span.mw-headline").Each(func(_ int, headline *goquery.Selection) {
		header := headline.Text()
		if header == "" || strings.HasPrefix(header, " ") {
			return
		}

		var texts []string
		headline.Parent().NextUntil("h2, h3, h4").Each(func(_ int, sibling *goquery.Selection) {
			if !sibling.Is("p") {
				return
			}
			text := strings.TrimSpace(sibling.Text())
			if text != "" {
				texts = append(texts, text)
			}
		})
		if len(texts) == 0 {
			return
		}
		out = append(out, refbot.Section{
			Header: strings.TrimSpace(header),
			Text:   strings.Join(texts, "\n\n"),
		})
	})
	return out
}
