package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/raas"
)

// maxSitemapDepth bounds recursion through nested sitemap indexes.
const maxSitemapDepth = 5

// Ensure SitemapService implements raas.SitemapService.
var _ raas.SitemapService = (*SitemapService)(nil)

// SitemapService reads sitemaps directly from the target site. Sitemaps are
// plain XML and do not need rendering, so they bypass the RaaS endpoint.
type SitemapService struct {
	doer Doer
}

// NewSitemapService creates a new SitemapService using doer.
// If doer is nil, a client with DefaultTimeout is used.
func NewSitemapService(doer Doer) *SitemapService {
	if doer == nil {
		doer = &http.Client{Timeout: DefaultTimeout}
	}
	return &SitemapService{doer: doer}
}

// URLs returns the page URLs listed in the sitemap at sitemapURL.
func (s *SitemapService) URLs(ctx context.Context, sitemapURL string, filter *raas.URLFilter) ([]string, error) {
	seenSitemaps := make(map[string]bool)
	urls, err := s.walk(ctx, sitemapURL, seenSitemaps, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(urls))
	out := []string{}
	for _, u := range urls {
		if seen[u] || !filter.Match(u) {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out, nil
}

// walk fetches one sitemap and follows sitemap indexes depth-first.
func (s *SitemapService) walk(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] || depth > maxSitemapDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	root, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	var urls []string
	for _, child := range locs(root, "sitemap") {
		found, err := s.walk(ctx, child, seen, depth+1)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// fetch downloads and parses a sitemap document.
func (s *SitemapService) fetch(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, raas.Errorf(raas.EINVALIDURL, "invalid sitemap url %q", sitemapURL)
	}

	resp, err := s.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, raas.Errorf(raas.EUNEXPECTEDSTATUS, "%d", resp.StatusCode)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, raas.Errorf(raas.EMALFORMED, "parse sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, raas.Errorf(raas.EMALFORMED, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}
