package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/raas"
	"github.com/fwojciec/raas/goquery"
	"github.com/fwojciec/raas/htmltomarkdown"
	raashttp "github.com/fwojciec/raas/http"
	raasslog "github.com/fwojciec/raas/slog"
	"github.com/fwojciec/raas/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Client overrides the HTTP client, for end-to-end testing.
	Client raas.Client
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("raas"),
		kong.Description("Fetch pages through a Rendering-as-a-Service endpoint"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'raas --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	client := m.Client
	if client == nil {
		client = raashttp.NewClient(raashttp.WithTimeout(cli.ClientTimeout))
	}
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		client = raasslog.NewLoggingClient(client, logger)
	}

	deps.EndpointURL = cli.Endpoint
	deps.Client = client
	deps.Selector = goquery.NewSelector()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractor = trafilatura.NewExtractor()
	deps.Sitemaps = raashttp.NewSitemapService(&http.Client{Timeout: cli.ClientTimeout})

	return kongCtx.Run(deps)
}
