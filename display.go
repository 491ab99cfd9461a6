package refbot

import "strings"

// Presentation limits, matching the downstream display's constraints.
const (
	// DefaultPageSize is the per-page character budget for card bodies.
	DefaultPageSize = 1000

	// DefaultFieldLimit is the per-field character budget. Values longer
	// than this are cut and marked with Ellipsis, so a truncated field is
	// at most DefaultFieldLimit characters plus the marker.
	DefaultFieldLimit = 1020

	// DefaultFieldCount is the most fields a display model carries.
	// Sections beyond the cap are dropped; a source page with dozens of
	// headings cannot overflow the downstream display.
	DefaultFieldCount = 25

	// Ellipsis marks truncated field values.
	Ellipsis = "…"
)

// Attribution texts attached to rendered entries.
const (
	AttributionCppreference = "Data from cppreference.com, licensed under CC-BY-SA and GFDL."
	AttributionManpages     = "Data from man7.org, Linux man-pages project."
)

// AccentColor is the fixed accent color for rendered cards, as 0xRRGGBB.
const AccentColor = 0x00599C

// DisplayField is one labeled value on a rendered entry.
type DisplayField struct {
	Label string
	Value string
}

// DisplayModel is the transient projection of one entry (or an error
// result) into presentable content. Created per query, discarded after
// send.
type DisplayModel struct {
	Title       string
	Description string
	Fields      []DisplayField
	Link        string
	Footer      string
	Color       int
}

// Truncate cuts s to at most limit characters, appending Ellipsis when
// anything was cut. Limits are counted in runes, not bytes, so multi-byte
// characters are never split.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

// SplitPages splits body into chunks of at most size characters. Splits
// happen at rune boundaries; no word-boundary awareness is applied. An
// empty body yields a single empty page so every card has at least one
// page.
func SplitPages(body string, size int) []string {
	if size <= 0 {
		size = DefaultPageSize
	}
	runes := []rune(body)
	if len(runes) == 0 {
		return []string{""}
	}

	pages := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, string(runes[start:end]))
	}
	return pages
}

// JoinBackticked renders items as a backtick-quoted, comma-separated list.
func JoinBackticked(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "`" + strings.Join(items, "`, `") + "`"
}
