package mock

import "github.com/fwojciec/raas"

var _ raas.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of raas.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*raas.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*raas.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
