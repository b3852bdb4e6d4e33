// Package goquery narrows rendered HTML returned by the service using CSS
// selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/raas"
)

// Ensure Selector implements raas.Selector at compile time.
var _ raas.Selector = (*Selector)(nil)

// Selector extracts parts of an HTML document with goquery.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the outer HTML of all elements matching selector,
// joined by newlines in document order.
func (s *Selector) Select(html, selector string) (string, error) {
	if strings.TrimSpace(selector) == "" {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", raas.Errorf(raas.EMALFORMED, "failed to parse HTML: %v", err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", raas.Errorf(raas.EMALFORMED, "no elements match %q", selector)
	}

	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		if h, err := goquery.OuterHtml(el); err == nil {
			parts = append(parts, h)
		}
	})
	return strings.Join(parts, "\n"), nil
}

// Title returns the trimmed text of the document's <title> element,
// falling back to the first <h1>.
func (s *Selector) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
