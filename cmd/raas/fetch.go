package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/raas"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	return runFetch(deps, raas.MethodGet, c.Fetch.request(c.URL, deps.EndpointURL), c.Output)
}

// Run executes the post command.
func (c *PostCmd) Run(deps *Dependencies) error {
	return runFetch(deps, raas.MethodPost, c.Fetch.request(c.URL, deps.EndpointURL), c.Output)
}

func runFetch(deps *Dependencies, method raas.Method, req *raas.FetchRequest, out OutputFlags) error {
	result, err := deps.Client.Execute(deps.Ctx, method, req)
	if err != nil {
		reportError(deps, err)
		return err
	}

	if err := writeResult(deps, result, req.URL, out); err != nil {
		reportError(deps, err)
		return err
	}
	return nil
}

// writeResult prints result, fetched from pageURL, in the requested format.
func writeResult(deps *Dependencies, result raas.Result, pageURL string, out OutputFlags) error {
	if out.Format == "" || out.Format == "json" {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}

	page, err := raas.Render(result, out.Field)
	if err != nil {
		return err
	}
	title := deps.Selector.Title(page)

	content := page
	if out.Extract {
		extracted, err := deps.Extractor.Extract(page, pageURL)
		if err != nil {
			return err
		}
		content = extracted.ContentHTML
		if extracted.Title != "" {
			title = extracted.Title
		}
	}

	html, err := deps.Selector.Select(content, out.Select)
	if err != nil {
		return err
	}

	if out.Format == "html" {
		_, err = fmt.Fprintln(deps.Stdout, html)
		return err
	}

	md, err := deps.Converter.Convert(html, pageURL)
	if err != nil {
		return err
	}
	if title != "" && !strings.HasPrefix(md, "# ") {
		md = "# " + title + "\n\n" + md
	}
	_, err = fmt.Fprintln(deps.Stdout, md)
	return err
}

// reportError prints err to stderr with its error code, if any.
func reportError(deps *Dependencies, err error) {
	if code := raas.ErrorCode(err); code != "" {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", code, raas.ErrorMessage(err))
		return
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", raas.ErrorMessage(err))
}
