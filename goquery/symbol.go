// Package goquery provides CSS-selector based parsers for cppreference
// pages: symbol pages become function or type entries, overview pages
// become stub entries, and index pages yield the links to follow.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/refbot"
)

// maxReturnLen guards the return-value extraction. Anything longer is
// almost certainly surrounding prose rather than a return description.
const maxReturnLen = 250

// Ensure SymbolParser implements refbot.EntryParser at compile time.
var _ refbot.EntryParser = (*SymbolParser)(nil)

// SymbolParser parses a cppreference symbol page (a page linked from the
// std:: symbol index) into a function or type entry. Pages with a
// "Return value" section are functions; the rest are types.
type SymbolParser struct{}

// NewSymbolParser creates a new SymbolParser.
func NewSymbolParser() *SymbolParser {
	return &SymbolParser{}
}

// Parse extracts a function or type entry from the page HTML.
// Returns EINVALID when the page heading does not name std:: symbols.
func (p *SymbolParser) Parse(html string, pageURL string) (*refbot.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, refbot.Errorf(refbot.EINVALID, "failed to parse HTML: %v", err)
	}

	names := symbolNames(doc)
	if len(names) == 0 {
		return nil, refbot.Errorf(refbot.EINVALID, "page %q does not name a std:: symbol", pageURL)
	}

	entry := &refbot.Entry{
		Aliases:     names,
		Signature:   signatures(doc),
		Headers:     dedup(selectTexts(doc, "tr.t-dsc-header a")),
		Description: paragraphs(doc),
		Link:        pageURL,
	}

	if ret, ok := returnValue(doc); ok {
		entry.Kind = refbot.KindFunction
		entry.Return = ret
		entry.Params = parameters(doc)
	} else {
		entry.Kind = refbot.KindType
		entry.MemberTypes = memberTable(doc, "Member_types")
		entry.MemberFuncs = memberTable(doc, "Member_functions")
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// symbolNames extracts the std::-qualified names from the page heading.
// Headings list several symbols documented on one page ("abs, labs,
// llabs"); non-symbol headings ("Strings library") yield nothing.
func symbolNames(doc *goquery.Document) []string {
	heading := strings.TrimSpace(doc.Find("h1.firstHeading").First().Text())
	if heading == "" {
		return nil
	}
	heading = strings.TrimPrefix(heading, "std::")

	var names []string
	for _, part := range strings.Split(heading, ",") {
		name := strings.TrimPrefix(strings.TrimSpace(part), "std::")
		if name == "" || !isSymbolName(name) {
			return nil
		}
		names = append(names, "std::"+name)
	}
	return names
}

// isSymbolName reports whether name looks like a std:: identifier rather
// than a prose page title. Identifiers start lowercase or with an
// underscore and contain no spaces.
func isSymbolName(name string) bool {
	first := []rune(name)[0]
	if first != '_' && !unicode.IsLower(first) {
		return false
	}
	return !strings.ContainsAny(name, " \t")
}

// signatures joins the declaration rows of the top declaration table,
// one declaration per line. cppreference aligns declarations with
// non-breaking spaces, which are normalized to single spaces.
func signatures(doc *goquery.Document) string {
	var lines []string
	doc.Find("tbody tr.t-dcl").Each(func(_ int, row *goquery.Selection) {
		var b strings.Builder
		row.Find("span").Each(func(_ int, span *goquery.Selection) {
			b.WriteString(span.Text())
		})
		line := strings.ReplaceAll(b.String(), " ", " ")
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	})
	return strings.Join(lines, "\n")
}

// paragraphs returns the top-level description paragraphs of the page.
func paragraphs(doc *goquery.Document) []string {
	var out []string
	doc.Find("div.mw-content-ltr > p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text != "" {
			out = append(out, text)
		}
	})
	return out
}

// returnValue extracts the text under the "Return value" heading, up to
// the next section heading. Its presence is what distinguishes a
// function page from a type page.
func returnValue(doc *goquery.Document) (string, bool) {
	headline := doc.Find(`span.mw-headline[id="Return_value"]`).First()
	if headline.Length() == 0 {
		return "", false
	}

	text := strings.TrimSpace(headline.Parent().NextUntil("h3, h2").Text())
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || len(text) >= maxReturnLen {
		return "", true
	}
	return text, true
}

// parameters returns the rows of the parameter table, one flattened
// "name - description" string per parameter.
func parameters(doc *goquery.Document) []string {
	var out []string
	doc.Find("table.t-par-begin tr").Each(func(_ int, row *goquery.Selection) {
		text := strings.Join(strings.Fields(row.Text()), " ")
		if text != "" {
			out = append(out, text)
		}
	})
	return out
}

// memberTable extracts the member rows of the section with the given
// headline ID ("Member_types", "Member_functions").
func memberTable(doc *goquery.Document, headlineID string) []refbot.Member {
	headline := doc.Find(`span.mw-headline[id="` + headlineID + `"]`).First()
	if headline.Length() == 0 {
		return nil
	}

	var members []refbot.Member
	headline.Parent().NextUntil("h3, h2").Find("tr.t-dsc").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := strings.Join(strings.Fields(cells.First().Text()), " ")
		desc := strings.Join(strings.Fields(cells.Eq(1).Text()), " ")
		if name == "" {
			return
		}
		members = append(members, refbot.Member{Name: name, Desc: desc})
	})
	return members
}

// dedup removes duplicates preserving first-occurrence order.
func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// selectTexts returns the trimmed text of every node matching selector.
func selectTexts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, strings.TrimSpace(sel.Text()))
	})
	return out
}
