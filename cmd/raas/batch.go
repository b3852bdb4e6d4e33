package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/raas"
	"github.com/fwojciec/raas/batch"
)

// batchLine is one line of batch output.
type batchLine struct {
	URL      string      `json:"url"`
	Attempts int         `json:"attempts"`
	Result   raas.Result `json:"result,omitempty"`
	Code     string      `json:"code,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.Sitemap != "" {
		filter, err := raas.NewURLFilter(c.Include, c.Exclude)
		if err != nil {
			reportError(deps, err)
			return err
		}
		found, err := deps.Sitemaps.URLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			reportError(deps, err)
			return err
		}
		urls = append(urls, found...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to fetch. Pass URLs or --sitemap")
	}

	items := make([]batch.Item, len(urls))
	for i, url := range urls {
		items[i] = batch.Item{
			Method:  raas.Method(c.Method),
			Request: c.Fetch.request(url, deps.EndpointURL),
		}
	}

	runner := &batch.Runner{
		Client:      deps.Client,
		Concurrency: c.Concurrency,
		RetryDelays: retryDelays(c.Retries),
	}
	if c.RPS > 0 {
		runner.Limiter = batch.NewHostLimiter(c.RPS)
	}

	outcomes, err := runner.Run(deps.Ctx, items, func(p batch.Progress) {
		status := "ok"
		if p.Outcome.Err != nil {
			status = "failed"
		}
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", p.Completed, p.Total, status, p.Outcome.URL)
	})
	if err != nil {
		reportError(deps, err)
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	var failed int
	for _, o := range outcomes {
		line := batchLine{URL: o.URL, Attempts: o.Attempts, Result: o.Result}
		if o.Err != nil {
			failed++
			line.Code = raas.ErrorCode(o.Err)
			line.Error = raas.ErrorMessage(o.Err)
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(outcomes))
	}
	return nil
}

// retryDelays returns n exponential backoff delays starting at one second.
func retryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}
