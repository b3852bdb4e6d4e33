// Package batch sends many fetch requests through a raas.Client with
// bounded concurrency, per-endpoint rate limiting and optional retries of
// transport failures.
package batch

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/raas"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Item is a single request in a batch.
type Item struct {
	Method  raas.Method
	Request *raas.FetchRequest
}

// Outcome is the result of one Item. Exactly one of Result and Err is set.
type Outcome struct {
	Position int
	URL      string
	Result   raas.Result
	Err      error
	Attempts int
}

// Progress reports a finished Item.
type Progress struct {
	Completed int
	Total     int
	Outcome   Outcome
}

// ProgressFunc is called once per finished Item, in completion order, from
// the goroutine that called Run.
type ProgressFunc func(Progress)

// Runner executes Items concurrently through Client.
type Runner struct {
	Client raas.Client

	// Limiter, if set, is waited on before every attempt, keyed by the
	// endpoint host.
	Limiter Limiter

	// Concurrency bounds the number of in-flight requests.
	Concurrency int

	// RetryDelays lists the waits between attempts. Only transport
	// failures are retried; a reply from the service, good or bad, is
	// final. Nil means a single attempt.
	RetryDelays []time.Duration
}

// Run executes items and returns one Outcome per item in input order.
// Individual failures are reported in the outcomes; the returned error is
// non-nil only when ctx ends before all items finish.
func (r *Runner) Run(ctx context.Context, items []Item, progress ProgressFunc) ([]Outcome, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomeCh := make(chan Outcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, item := range items {
			g.Go(func() error {
				outcomeCh <- r.runItem(gctx, i, item)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	outcomes := make([]Outcome, len(items))
	var completed atomic.Int64
	for outcome := range outcomeCh {
		outcomes[outcome.Position] = outcome
		n := completed.Add(1)
		if progress != nil {
			progress(Progress{
				Completed: int(n),
				Total:     len(items),
				Outcome:   outcome,
			})
		}
	}

	return outcomes, ctx.Err()
}

func (r *Runner) runItem(ctx context.Context, position int, item Item) Outcome {
	outcome := Outcome{Position: position}
	if item.Request != nil {
		outcome.URL = item.Request.URL
	}

	// Invalid requests never reach the limiter or the network.
	if err := item.Request.Validate(item.Method); err != nil {
		outcome.Err = err
		return outcome
	}

	host := endpointHost(item.Request.EndpointURL)
	maxAttempts := len(r.RetryDelays) + 1
	for attempt := 0; attempt < maxAttempts; attempt++ {
		outcome.Attempts = attempt + 1

		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx, host); err != nil {
				outcome.Err = err
				return outcome
			}
		}

		result, err := r.Client.Execute(ctx, item.Method, item.Request)
		if err == nil {
			outcome.Result, outcome.Err = result, nil
			return outcome
		}
		outcome.Err = err

		if !retryable(ctx, err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			outcome.Err = ctx.Err()
			return outcome
		case <-time.After(r.RetryDelays[attempt]):
		}
	}

	return outcome
}

// retryable reports whether err is a transport failure worth another attempt.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return raas.ErrorCode(err) == ""
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
