package mock

import "github.com/fwojciec/raas"

var _ raas.Selector = (*Selector)(nil)

// Selector is a mock implementation of raas.Selector.
type Selector struct {
	SelectFn func(html, selector string) (string, error)
	TitleFn  func(html string) string
}

func (s *Selector) Select(html, selector string) (string, error) {
	return s.SelectFn(html, selector)
}

func (s *Selector) Title(html string) string {
	return s.TitleFn(html)
}
