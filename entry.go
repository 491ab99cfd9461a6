package refbot

import "context"

// Kind classifies a corpus entry.
type Kind string

// Entry kinds.
const (
	KindFunction Kind = "function" // callable symbol, e.g. std::abs
	KindType     Kind = "type"     // type symbol, e.g. std::vector
	KindStub     Kind = "stub"     // library overview page, e.g. "Strings library"
	KindManpage  Kind = "manpage"  // system manual page
)

// Member is a named member of a type entry (a member type or member
// function) together with its short description.
type Member struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Section is one titled block of prose on a stub or manpage entry.
type Section struct {
	Header string `json:"header"`
	Text   string `json:"text"`
}

// Entry represents one documented item in a corpus. Entries are immutable
// after load and owned exclusively by their corpus.
type Entry struct {
	// Aliases are the strings a query may match against. Ordered and
	// non-empty; multiple signatures may share one page.
	Aliases []string `json:"aliases"`

	Kind Kind `json:"kind"`

	// Signature is the raw declaration text, empty for stubs and manpages.
	Signature string `json:"signature,omitempty"`

	// Headers lists the headers the symbol is defined in. May be empty.
	Headers []string `json:"headers,omitempty"`

	// Description paragraphs from the source page.
	Description []string `json:"description,omitempty"`

	// Function-specific fields.
	Params []string `json:"params,omitempty"`
	Return string   `json:"return,omitempty"`

	// Type-specific fields.
	MemberTypes []Member `json:"memberTypes,omitempty"`
	MemberFuncs []Member `json:"memberFuncs,omitempty"`

	// Stub/manpage sections, in source page order.
	Sections []Section `json:"sections,omitempty"`

	// Link points at the source page.
	Link string `json:"link,omitempty"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if len(e.Aliases) == 0 {
		return Errorf(EINVALID, "entry aliases required")
	}
	switch e.Kind {
	case KindFunction, KindType, KindStub, KindManpage:
	default:
		return Errorf(EINVALID, "unknown entry kind %q", e.Kind)
	}
	return nil
}

// Corpus is a named, ordered, read-only collection of entries for one
// reference category. A corpus is loaded once and lives for the process
// lifetime; it is never mutated after load.
type Corpus struct {
	ID      string   `json:"id"`
	Entries []*Entry `json:"entries"`
}

// Validate returns an error if the corpus contains invalid fields.
func (c *Corpus) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "corpus ID required")
	}
	for _, e := range c.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CorpusService loads reference corpora.
type CorpusService interface {
	// Corpus returns the corpus with the given ID, loading it on first use.
	// Loads are idempotent and cached for the process lifetime; concurrent
	// first requests for the same corpus must not trigger redundant reads.
	// Returns EUNAVAILABLE if the backing data is missing or empty.
	Corpus(ctx context.Context, id string) (*Corpus, error)
}

// CorpusWriter persists a corpus produced by the scrape pipeline.
type CorpusWriter interface {
	// SaveCorpus replaces the stored corpus with the same ID, if any.
	SaveCorpus(ctx context.Context, corpus *Corpus) error
}
