package mock

import "github.com/fwojciec/refbot"

var _ refbot.Matcher = (*Matcher)(nil)

// Matcher is a mock implementation of refbot.Matcher.
type Matcher struct {
	RatioFn func(a, b string) float64
	BestFn  func(query string, candidates []string) (string, error)
}

func (m *Matcher) Ratio(a, b string) float64 {
	return m.RatioFn(a, b)
}

func (m *Matcher) Best(query string, candidates []string) (string, error) {
	return m.BestFn(query, candidates)
}
