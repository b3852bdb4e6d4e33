package raas

// ExtractResult holds the main content of a rendered page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, without navigation,
	// footers or sidebars.
	ContentHTML string
}

// Extractor separates the main content of a rendered page from boilerplate.
type Extractor interface {
	// Extract returns the main content of html, which was fetched from
	// pageURL. pageURL may be empty.
	Extract(html, pageURL string) (*ExtractResult, error)
}
