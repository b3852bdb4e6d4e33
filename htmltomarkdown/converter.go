// Package htmltomarkdown turns HTML rendered by the service into Markdown.
package htmltomarkdown

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/raas"
	"golang.org/x/net/html"
)

// Ensure Converter implements raas.Converter at compile time.
var _ raas.Converter = (*Converter)(nil)

// linkAttrs lists the attributes rewritten to absolute URLs, by element.
var linkAttrs = map[string]string{
	"a":      "href",
	"img":    "src",
	"source": "src",
	"video":  "src",
	"audio":  "src",
}

// Converter wraps html-to-markdown with the CommonMark and table plugins.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a rendered page into Markdown. Relative links and
// image sources are resolved against pageURL. An empty or relative pageURL
// leaves links as they are.
func (c *Converter) Convert(rawHTML, pageURL string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", raas.Errorf(raas.EMALFORMED, "empty HTML input")
	}

	if pageBase, err := url.Parse(pageURL); err == nil && pageBase.IsAbs() {
		resolved, err := resolveLinks(rawHTML, pageBase)
		if err != nil {
			return "", raas.Errorf(raas.EMALFORMED, "parse HTML: %v", err)
		}
		rawHTML = resolved
	}

	result, err := c.conv.ConvertString(rawHTML)
	if err != nil {
		return "", raas.Errorf(raas.EMALFORMED, "convert HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}

// resolveLinks rewrites relative link attributes in rawHTML against pageBase.
// A <base href> in the document takes precedence over pageBase.
func resolveLinks(rawHTML string, pageBase *url.URL) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "base" {
			if ref, ok := attr(n, "href"); ok {
				if u, err := pageBase.Parse(ref); err == nil {
					pageBase = u
				}
			}
		}
		if n.Type == html.ElementNode {
			if key, ok := linkAttrs[n.Data]; ok {
				resolveAttr(n, key, pageBase)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func resolveAttr(n *html.Node, key string, pageBase *url.URL) {
	for i, a := range n.Attr {
		if a.Key != key {
			continue
		}
		ref := strings.TrimSpace(a.Val)
		if ref == "" || strings.HasPrefix(ref, "#") {
			return
		}
		u, err := pageBase.Parse(ref)
		if err != nil {
			return
		}
		n.Attr[i].Val = u.String()
		return
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
