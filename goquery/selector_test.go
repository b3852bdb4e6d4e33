package goquery_test

import (
	"testing"

	"github.com/fwojciec/raas"
	"github.com/fwojciec/raas/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Selector implements raas.Selector at compile time.
var _ raas.Selector = (*goquery.Selector)(nil)

const page = `<html><head><title> Search results </title></head>
<body>
<nav><a href="/">Home</a></nav>
<main><h1>Results</h1><p class="hit">first</p><p class="hit">second</p></main>
</body></html>`

func TestSelector_Select(t *testing.T) {
	t.Parallel()

	t.Run("returns matching elements in document order", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSelector()
		html, err := s.Select(page, "p.hit")

		require.NoError(t, err)
		assert.Equal(t, "<p class=\"hit\">first</p>\n<p class=\"hit\">second</p>", html)
	})

	t.Run("keeps nested markup", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSelector()
		html, err := s.Select(page, "main")

		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Results</h1>")
		assert.NotContains(t, html, "<nav>")
	})

	t.Run("returns input unchanged for empty selector", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSelector()
		html, err := s.Select(page, " ")

		require.NoError(t, err)
		assert.Equal(t, page, html)
	})

	t.Run("fails when nothing matches", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSelector()
		_, err := s.Select(page, "article")

		require.Error(t, err)
		assert.Equal(t, raas.EMALFORMED, raas.ErrorCode(err))
	})
}

func TestSelector_Title(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed title", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Search results", goquery.NewSelector().Title(page))
	})

	t.Run("falls back to first heading", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Only heading", goquery.NewSelector().Title("<body><h1> Only heading </h1><h1>Second</h1></body>"))
	})

	t.Run("returns empty string when there is no title", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.NewSelector().Title("<p>plain</p>"))
	})
}
