package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/raas"
	main "github.com/fwojciec/raas/cmd/raas"
	"github.com/fwojciec/raas/goquery"
	"github.com/fwojciec/raas/htmltomarkdown"
	"github.com/fwojciec/raas/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renderedPage = `<html><head><title>Docs</title></head><body><nav>menu</nav><main><p>Hello <strong>world</strong></p></main></body></html>`

func newDeps(client raas.Client) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:         context.Background(),
		Stdout:      stdout,
		Stderr:      stderr,
		EndpointURL: "http://localhost:5002",
		Client:      client,
		Selector:    goquery.NewSelector(),
		Converter:   htmltomarkdown.NewConverter(),
	}, stdout, stderr
}

func TestGetCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds the request from flags", func(t *testing.T) {
		t.Parallel()

		var gotMethod raas.Method
		var gotReq *raas.FetchRequest
		client := &mock.Client{
			ExecuteFn: func(_ context.Context, method raas.Method, req *raas.FetchRequest) (raas.Result, error) {
				gotMethod, gotReq = method, req
				return raas.Result{}, nil
			},
		}
		deps, stdout, _ := newDeps(client)

		cmd := &main.GetCmd{
			URL: "https://example.com",
			Fetch: main.FetchFlags{
				Header:  map[string]string{"User-Agent": "raas"},
				Force:   "utf-8",
				Timeout: 5 * time.Second,
			},
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, raas.MethodGet, gotMethod)
		assert.Equal(t, &raas.FetchRequest{
			URL:         "https://example.com",
			EndpointURL: "http://localhost:5002",
			Headers:     map[string]string{"User-Agent": "raas"},
			Force:       "utf-8",
			Timeout:     5 * time.Second,
		}, gotReq)
		assert.Equal(t, "{}\n", stdout.String())
	})

	t.Run("prints selected html", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return raas.Result{"body": renderedPage}, nil
			},
		}
		deps, stdout, _ := newDeps(client)

		cmd := &main.GetCmd{URL: "https://example.com", Output: main.OutputFlags{Format: "html", Select: "main p"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<p>Hello <strong>world</strong></p>\n", stdout.String())
	})

	t.Run("prints markdown with the page title", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return raas.Result{"body": renderedPage}, nil
			},
		}
		deps, stdout, _ := newDeps(client)

		cmd := &main.GetCmd{URL: "https://example.com", Output: main.OutputFlags{Format: "markdown", Select: "main"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Docs\n\nHello **world**\n", stdout.String())
	})

	t.Run("resolves markdown links against the fetched url", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return raas.Result{"body": `<main><a href="guide.html">Guide</a></main>`}, nil
			},
		}
		deps, stdout, _ := newDeps(client)

		cmd := &main.GetCmd{URL: "https://example.com/docs/", Output: main.OutputFlags{Format: "markdown", Select: "main"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "[Guide](https://example.com/docs/guide.html)\n", stdout.String())
	})

	t.Run("reports a missing render field", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return raas.Result{"status": 200.0}, nil
			},
		}
		deps, _, stderr := newDeps(client)

		cmd := &main.GetCmd{URL: "https://example.com", Output: main.OutputFlags{Format: "html", Field: "html"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, raas.EMALFORMED, raas.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: malformed_response")
	})

	t.Run("reports transport errors without a code", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return nil, errors.New("connection refused")
			},
		}
		deps, _, stderr := newDeps(client)

		err := (&main.GetCmd{URL: "https://example.com"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: connection refused\n", stderr.String())
	})
}

func TestGetCmd_Run_Extract(t *testing.T) {
	t.Parallel()

	t.Run("converts only the extracted content", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return raas.Result{"body": renderedPage}, nil
			},
		}
		deps, stdout, _ := newDeps(client)
		var extractedFrom, extractedURL string
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*raas.ExtractResult, error) {
				extractedFrom, extractedURL = html, pageURL
				return &raas.ExtractResult{Title: "Extracted", ContentHTML: "<p>Main text</p>"}, nil
			},
		}

		cmd := &main.GetCmd{URL: "https://example.com", Output: main.OutputFlags{Format: "markdown", Extract: true}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, renderedPage, extractedFrom)
		assert.Equal(t, "https://example.com", extractedURL)
		assert.Equal(t, "# Extracted\n\nMain text\n", stdout.String())
	})

	t.Run("reports extraction failures", func(t *testing.T) {
		t.Parallel()

		client := &mock.Client{
			ExecuteFn: func(_ context.Context, _ raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				return raas.Result{"body": renderedPage}, nil
			},
		}
		deps, _, stderr := newDeps(client)
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(string, string) (*raas.ExtractResult, error) {
				return nil, raas.Errorf(raas.EMALFORMED, "no main content found")
			},
		}

		cmd := &main.GetCmd{URL: "https://example.com", Output: main.OutputFlags{Format: "html", Extract: true}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "no main content found")
	})
}

func TestPostCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("executes with POST", func(t *testing.T) {
		t.Parallel()

		var gotMethod raas.Method
		client := &mock.Client{
			ExecuteFn: func(_ context.Context, method raas.Method, _ *raas.FetchRequest) (raas.Result, error) {
				gotMethod = method
				return raas.Result{"ok": true}, nil
			},
		}
		deps, stdout, _ := newDeps(client)

		err := (&main.PostCmd{URL: "https://example.com/form"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, raas.MethodPost, gotMethod)
		assert.Contains(t, stdout.String(), `"ok": true`)
	})
}
