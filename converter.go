package raas

// Converter converts rendered HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. Relative links are
	// resolved against pageURL when it is an absolute URL.
	Convert(html, pageURL string) (string, error)
}

// Selector narrows rendered HTML to the parts a caller is interested in.
type Selector interface {
	// Select returns the outer HTML of every element matching the CSS
	// selector, in document order. Returns EMALFORMED when nothing matches.
	Select(html, selector string) (string, error)

	// Title returns the document title, or an empty string.
	Title(html string) string
}
