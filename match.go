package refbot

// Matcher scores how far a candidate string falls from a query.
// Implementations are pure and safe for concurrent use.
type Matcher interface {
	// Ratio returns the distance-ratio between a and b in [0, 1]:
	// the edit distance normalized by the longer string's length.
	// Lower is closer; Ratio(a, a) == 0. Symmetric in its arguments.
	Ratio(a, b string) float64

	// Best returns the candidate with the minimum distance-ratio to the
	// query. Ties break deterministically in favor of the first minimal
	// candidate in input order. An empty candidate set is an input-contract
	// violation and returns EINVALID.
	Best(query string, candidates []string) (string, error)
}

// ResolveEntry finds the corpus entry whose alias best matches the query.
// All aliases across all entries form one candidate pool; the matched alias
// maps back to the first entry that owns it. Matching is case- and
// punctuation-sensitive as stored; callers normalize queries (e.g. prepend
// "std::") before resolving.
//
// Returns EUNAVAILABLE if the corpus is nil or holds no entries, so callers
// can tell users the reference data needs regenerating.
func ResolveEntry(corpus *Corpus, m Matcher, query string) (*Entry, error) {
	if corpus == nil || len(corpus.Entries) == 0 {
		return nil, Errorf(EUNAVAILABLE, "corpus has no reference data")
	}

	candidates := make([]string, 0, len(corpus.Entries))
	for _, e := range corpus.Entries {
		candidates = append(candidates, e.Aliases...)
	}

	best, err := m.Best(query, candidates)
	if err != nil {
		return nil, err
	}

	for _, e := range corpus.Entries {
		for _, alias := range e.Aliases {
			if alias == best {
				return e, nil
			}
		}
	}

	// Unreachable with a conforming Matcher: Best returns a pool member.
	return nil, Errorf(ENOTFOUND, "no entry matches %q", query)
}
