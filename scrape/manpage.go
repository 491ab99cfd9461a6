package scrape

import (
	"strings"

	"github.com/fwojciec/refbot"
)

// Ensure ManpageParser implements refbot.EntryParser at compile time.
var _ refbot.EntryParser = (*ManpageParser)(nil)

// ManpageParser parses a manual page into an entry. Man pages are prose
// rather than structured reference tables, so the parser extracts the
// main content, converts it to Markdown, and splits it into sections on
// the Markdown headings.
type ManpageParser struct {
	extractor refbot.Extractor
	converter refbot.Converter
}

// NewManpageParser creates a parser producing manpage entries.
func NewManpageParser(extractor refbot.Extractor, converter refbot.Converter) *ManpageParser {
	return &ManpageParser{extractor: extractor, converter: converter}
}

// Parse extracts a manpage entry from the page HTML.
func (p *ManpageParser) Parse(html string, pageURL string) (*refbot.Entry, error) {
	extracted, err := p.extractor.Extract(html)
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "failed to extract content from %q: %v", pageURL, err)
	}
	if extracted.ContentHTML == "" {
		return nil, refbot.Errorf(refbot.EINVALID, "page %q has no main content", pageURL)
	}

	name := manpageName(extracted.Title)
	if name == "" {
		return nil, refbot.Errorf(refbot.EINVALID, "page %q has no title", pageURL)
	}

	markdown, err := p.converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "failed to convert %q: %v", pageURL, err)
	}

	entry := &refbot.Entry{
		Aliases:  []string{name},
		Kind:     refbot.KindManpage,
		Sections: markdownSections(markdown),
		Link:     pageURL,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// manpageName strips the section number and any trailing description
// from a man page title, e.g. "fork(2) - Linux manual page" yields
// "fork".
func manpageName(title string) string {
	name := strings.TrimSpace(title)
	if i := strings.IndexAny(name, "( \t"); i >= 0 {
		name = name[:i]
	}
	return name
}

// markdownSections splits Markdown into sections on its headings. Text
// before the first heading becomes an untitled leading section.
func markdownSections(markdown string) []refbot.Section {
	var out []refbot.Section
	var header string
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" && header == "" {
			return
		}
		out = append(out, refbot.Section{Header: header, Text: text})
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if heading != "" {
				if header != "" || len(body) > 0 {
					flush()
				}
				header, body = heading, nil
				continue
			}
		}
		body = append(body, line)
	}
	flush()

	return out
}
