// Package trafilatura extracts the main content from pages rendered by the
// service.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/raas"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements raas.Extractor at compile time.
var _ raas.Extractor = (*Extractor)(nil)

// Extractor separates the main content of a rendered page from navigation,
// footers and other boilerplate. Links and images inside the content are
// kept.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content of rawHTML. pageURL is the
// address the page was fetched from and may be empty. Pages without
// recognizable content fail with EMALFORMED.
func (e *Extractor) Extract(rawHTML, pageURL string) (*raas.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, raas.Errorf(raas.EMALFORMED, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
		IncludeImages:  true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, raas.Errorf(raas.EMALFORMED, "extract content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, raas.Errorf(raas.EMALFORMED, "no main content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(buf.String())
	if content == "" {
		return nil, raas.Errorf(raas.EMALFORMED, "no main content found")
	}

	return &raas.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: content,
	}, nil
}
