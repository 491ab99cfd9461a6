// Package levenshtein implements refbot.Matcher using normalized edit
// distance.
package levenshtein

import "github.com/fwojciec/refbot"

// Ensure Matcher implements refbot.Matcher at compile time.
var _ refbot.Matcher = (*Matcher)(nil)

// Matcher scores candidates by Levenshtein distance normalized to the
// longer string's length. It is stateless and safe for concurrent use.
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Ratio returns the distance-ratio between a and b in [0, 1]. Lower is
// closer: identical strings score 0, fully distinct strings score 1.
// The result is independent of argument order.
func (m *Matcher) Ratio(a, b string) float64 {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	return float64(Distance(ra, rb)) / float64(longer)
}

// Best returns the candidate with the minimum distance-ratio to the query.
// Ties break in favor of the first minimal candidate in input order, which
// makes resolution deterministic for corpora with equally close aliases.
// An empty candidate set violates the input contract and returns EINVALID.
func (m *Matcher) Best(query string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", refbot.Errorf(refbot.EINVALID, "candidate set must not be empty")
	}

	best := candidates[0]
	bestRatio := m.Ratio(candidates[0], query)
	for _, c := range candidates[1:] {
		if r := m.Ratio(c, query); r < bestRatio {
			best, bestRatio = c, r
		}
	}
	return best, nil
}

// Distance returns the Levenshtein edit distance between a and b:
// the minimum number of unit-cost substitutions, insertions, and deletions
// transforming one into the other. No transposition operation is counted.
func Distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Single-row DP: prev[j] holds the distance between a[:i-1] and b[:j].
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
