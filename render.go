package refbot

import "strings"

// Placeholder texts for empty entry fields, kept verbatim from the bot's
// reply vocabulary.
const (
	placeholderNoParams  = "No parameters found."
	placeholderNoReturn  = "No return value found."
	placeholderNoHeaders = "No definition found."
	placeholderNoSection = "Nothing found here :("
)

// kindLabels prefix entry titles by corpus category.
var kindLabels = map[Kind]string{
	KindFunction: "C++",
	KindType:     "C++",
	KindStub:     "C++",
	KindManpage:  "man",
}

// RenderEntry projects an entry into a display model. The entry is never
// mutated; output is always fresh. Field values that exceed the field limit
// are truncated with an ellipsis marker, which is documented, expected
// behavior rather than an error.
func RenderEntry(entry *Entry) *DisplayModel {
	dm := &DisplayModel{
		Title:       kindLabels[entry.Kind] + ": " + strings.Join(entry.Aliases, ", "),
		Description: strings.Join(entry.Description, "\n"),
		Link:        entry.Link,
		Footer:      attributionFor(entry.Kind),
		Color:       AccentColor,
	}

	switch entry.Kind {
	case KindFunction:
		renderFunction(dm, entry)
	case KindType:
		renderType(dm, entry)
	case KindStub, KindManpage:
		renderSections(dm, entry)
	}

	return dm
}

func attributionFor(kind Kind) string {
	if kind == KindManpage {
		return AttributionManpages
	}
	return AttributionCppreference
}

func renderFunction(dm *DisplayModel, entry *Entry) {
	params := strings.Join(entry.Params, "\n")
	if params == "" {
		params = placeholderNoParams
	}
	ret := entry.Return
	if ret == "" {
		ret = placeholderNoReturn
	}
	addField(dm, "Parameters", params)
	addField(dm, "Return Value", ret)
	renderSignature(dm, entry)
}

func renderType(dm *DisplayModel, entry *Entry) {
	addField(dm, "Member Types", memberList(entry.MemberTypes))
	addField(dm, "Member Functions", memberList(entry.MemberFuncs))
	renderSignature(dm, entry)
}

func renderSections(dm *DisplayModel, entry *Entry) {
	for _, s := range entry.Sections {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			text = placeholderNoSection
		}
		addField(dm, s.Header, text)
	}
}

// renderSignature appends the Signature and Defined in Header(s) fields
// shared by function and type entries.
func renderSignature(dm *DisplayModel, entry *Entry) {
	if entry.Signature != "" {
		addField(dm, "Signature", "```cpp\n"+entry.Signature+"```")
	}
	headers := JoinBackticked(entry.Headers)
	if headers == "" {
		headers = placeholderNoHeaders
	}
	addField(dm, "Defined in Header(s)", headers)
}

// memberList renders `name`: desc lines for type members.
func memberList(members []Member) string {
	if len(members) == 0 {
		return placeholderNoSection
	}
	lines := make([]string, 0, len(members))
	for _, m := range members {
		lines = append(lines, "`"+m.Name+"`: "+m.Desc)
	}
	return strings.Join(lines, "\n")
}

// addField appends a field, applying the per-field truncation budget and
// the total field cap.
func addField(dm *DisplayModel, label, value string) {
	if len(dm.Fields) >= DefaultFieldCount {
		return
	}
	dm.Fields = append(dm.Fields, DisplayField{
		Label: label,
		Value: Truncate(value, DefaultFieldLimit),
	})
}
