package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/raas"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	EndpointURL string
	Client      raas.Client
	Selector    raas.Selector
	Converter   raas.Converter
	Extractor   raas.Extractor
	Sitemaps    raas.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Endpoint      string        `short:"e" env:"RAAS_ENDPOINT_URL" help:"Base URL of the RaaS endpoint"`
	ClientTimeout time.Duration `default:"30s" help:"Timeout for each round trip to the endpoint"`
	Verbose       bool          `short:"v" help:"Log every request to stderr"`

	Get   GetCmd   `cmd:"" help:"Ask the endpoint to GET a URL"`
	Post  PostCmd  `cmd:"" help:"Ask the endpoint to POST to a URL"`
	Batch BatchCmd `cmd:"" help:"Fetch many URLs concurrently"`
}

// FetchFlags are the per-request options shared by all commands.
type FetchFlags struct {
	Header  map[string]string `short:"H" mapsep:"none" help:"Header sent with the request to the RaaS endpoint as name=value (repeatable)"`
	Force   string            `help:"Override the endpoint's detection, e.g. the response encoding"`
	Timeout time.Duration     `short:"t" help:"Fetch timeout the endpoint should apply"`
}

// request builds a FetchRequest for url.
func (f FetchFlags) request(url, endpoint string) *raas.FetchRequest {
	return &raas.FetchRequest{
		URL:         url,
		EndpointURL: endpoint,
		Headers:     f.Header,
		Force:       f.Force,
		Timeout:     f.Timeout,
	}
}

// OutputFlags control how a single result is printed.
type OutputFlags struct {
	Format  string `short:"f" enum:"json,html,markdown" default:"json" help:"Output format (json, html, markdown)"`
	Field   string `default:"body" help:"Result field holding the rendered page"`
	Select  string `short:"s" help:"CSS selector applied to the page before printing html or markdown"`
	Extract bool   `short:"x" help:"Keep only the main content of the page, dropping navigation and footers"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL string `arg:"" help:"URL to fetch"`

	Fetch  FetchFlags  `embed:""`
	Output OutputFlags `embed:""`
}

// PostCmd is the "post" subcommand.
type PostCmd struct {
	URL string `arg:"" help:"URL to post to"`

	Fetch  FetchFlags  `embed:""`
	Output OutputFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs    []string `arg:"" optional:"" help:"URLs to fetch"`
	Sitemap string   `help:"Also fetch every page listed in this sitemap"`
	Include []string `short:"I" sep:"none" help:"Only fetch sitemap URLs matching this regex (repeatable)"`
	Exclude []string `short:"X" sep:"none" help:"Skip sitemap URLs matching this regex (repeatable)"`

	Method      string  `short:"m" enum:"GET,POST" default:"GET" help:"Method the endpoint uses (GET, POST)"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent request limit"`
	RPS         float64 `default:"0" help:"Requests per second per endpoint (0 = unlimited)"`
	Retries     int     `default:"0" help:"Retries for transport failures"`

	Fetch FetchFlags `embed:""`
}
