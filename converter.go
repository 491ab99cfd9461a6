package refbot

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor or a
	// selected page fragment). Returns the Markdown representation.
	Convert(html string) (string, error)
}
