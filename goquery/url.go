package goquery

import (
	"net/url"
	"strings"
)

// resolveURL resolves href against base and strips any fragment.
// Returns "" if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink reports whether href uses a scheme the fetcher cannot
// follow (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// isSameHost reports whether rawURL points at the same host as base.
// Subdomains count as different hosts.
func isSameHost(base *url.URL, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == base.Host
}
