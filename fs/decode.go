package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/refbot"
)

// rawEntry accepts both the canonical entry shape and the legacy scraper
// output: singular "name" or plural "names" aliases, "header" or
// "defined_in_header" header lists, "sigs" as string or array, member
// dictionaries under "types"/"funcs", and stub sections under "items".
type rawEntry struct {
	// Canonical fields.
	Aliases     []string         `json:"aliases"`
	Kind        refbot.Kind      `json:"kind"`
	Signature   string           `json:"signature"`
	Headers     []string         `json:"headers"`
	Description []string         `json:"description"`
	Params      []string         `json:"params"`
	Return      string           `json:"return"`
	MemberTypes []refbot.Member  `json:"memberTypes"`
	MemberFuncs []refbot.Member  `json:"memberFuncs"`
	Sections    []refbot.Section `json:"sections"`
	Link        string           `json:"link"`

	// Legacy spellings.
	Name            string          `json:"name"`
	Names           []string        `json:"names"`
	Type            *int            `json:"type"`
	Sigs            json.RawMessage `json:"sigs"`
	Header          []string        `json:"header"`
	DefinedInHeader []string        `json:"defined_in_header"`
	Desc            []string        `json:"desc"`
	Types           json.RawMessage `json:"types"`
	Funcs           json.RawMessage `json:"funcs"`
	Items           json.RawMessage `json:"items"`
}

// decodeEntries parses a corpus JSON array. Entries without an explicit
// kind fall back to the legacy numeric type tag (0=function, 1=type) and
// finally to fallback, which covers stub and manpage files that carry no
// tag at all.
func decodeEntries(data []byte, fallback refbot.Kind) ([]*refbot.Entry, error) {
	var raws []rawEntry
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	entries := make([]*refbot.Entry, 0, len(raws))
	for i, raw := range raws {
		entry, err := raw.toEntry(fallback)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// defaultKind derives the untagged-entry kind from the corpus ID.
func defaultKind(corpusID string) refbot.Kind {
	if strings.Contains(corpusID, "man") {
		return refbot.KindManpage
	}
	return refbot.KindStub
}

func (r *rawEntry) toEntry(fallback refbot.Kind) (*refbot.Entry, error) {
	entry := &refbot.Entry{
		Aliases:     r.Aliases,
		Kind:        r.Kind,
		Signature:   r.Signature,
		Headers:     r.Headers,
		Description: r.Description,
		Params:      r.Params,
		Return:      r.Return,
		MemberTypes: r.MemberTypes,
		MemberFuncs: r.MemberFuncs,
		Sections:    r.Sections,
		Link:        r.Link,
	}

	if len(entry.Aliases) == 0 {
		entry.Aliases = r.Names
	}
	if len(entry.Aliases) == 0 && r.Name != "" {
		entry.Aliases = []string{r.Name}
	}

	if entry.Kind == "" {
		switch {
		case r.Type != nil && *r.Type == 0:
			entry.Kind = refbot.KindFunction
		case r.Type != nil && *r.Type == 1:
			entry.Kind = refbot.KindType
		default:
			entry.Kind = fallback
		}
	}

	if entry.Signature == "" && len(r.Sigs) > 0 {
		sig, err := decodeSignature(r.Sigs)
		if err != nil {
			return nil, err
		}
		entry.Signature = sig
	}
	if len(entry.Headers) == 0 {
		entry.Headers = r.Header
	}
	if len(entry.Headers) == 0 {
		entry.Headers = r.DefinedInHeader
	}
	if len(entry.Description) == 0 {
		entry.Description = r.Desc
	}

	if len(entry.MemberTypes) == 0 && len(r.Types) > 0 {
		members, err := decodeMembers(r.Types)
		if err != nil {
			return nil, err
		}
		entry.MemberTypes = members
	}
	if len(entry.MemberFuncs) == 0 && len(r.Funcs) > 0 {
		members, err := decodeMembers(r.Funcs)
		if err != nil {
			return nil, err
		}
		entry.MemberFuncs = members
	}

	if len(entry.Sections) == 0 && len(r.Items) > 0 {
		pairs, err := decodeOrderedPairs(r.Items)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			entry.Sections = append(entry.Sections, refbot.Section{Header: p.key, Text: p.value})
		}
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// decodeSignature accepts "sigs" as a single string or a list of
// declaration lines.
func decodeSignature(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", fmt.Errorf("sigs must be a string or an array of strings")
	}
	return strings.Join(lines, "\n"), nil
}

// decodeMembers accepts a name→description object (order preserved) or a
// bare list of names.
func decodeMembers(raw json.RawMessage) ([]refbot.Member, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, err
		}
		members := make([]refbot.Member, 0, len(names))
		for _, n := range names {
			members = append(members, refbot.Member{Name: n})
		}
		return members, nil
	}

	pairs, err := decodeOrderedPairs(raw)
	if err != nil {
		return nil, err
	}
	members := make([]refbot.Member, 0, len(pairs))
	for _, p := range pairs {
		members = append(members, refbot.Member{Name: p.key, Desc: p.value})
	}
	return members, nil
}

type pair struct {
	key   string
	value string
}

// decodeOrderedPairs decodes a flat JSON object of string values keeping
// key order, which map-based decoding would lose. Field order carries
// meaning here: it is the order sections appeared on the source page.
func decodeOrderedPairs(raw json.RawMessage) ([]pair, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	var pairs []pair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key")
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value for %q must be a string", key)
		}
		pairs = append(pairs, pair{key: key, value: value})
	}
	return pairs, nil
}
