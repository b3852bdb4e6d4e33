package mock

import (
	"context"

	"github.com/fwojciec/raas"
)

var _ raas.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of raas.SitemapService.
type SitemapService struct {
	URLsFn func(ctx context.Context, sitemapURL string, filter *raas.URLFilter) ([]string, error)
}

func (s *SitemapService) URLs(ctx context.Context, sitemapURL string, filter *raas.URLFilter) ([]string, error) {
	return s.URLsFn(ctx, sitemapURL, filter)
}
