package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesum"
	"github.com/fwojciec/pagesum/gemini"
	"github.com/fwojciec/pagesum/goquery"
	pagehttp "github.com/fwojciec/pagesum/http"
	"github.com/fwojciec/pagesum/openai"
	"github.com/fwojciec/pagesum/pipeline"
	"github.com/fwojciec/pagesum/readability"
	pageslog "github.com/fwojciec/pagesum/slog"
	"github.com/fwojciec/pagesum/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		ReportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// ReportError writes err to w. Application errors are skipped because the
// failing command has already printed their message.
func ReportError(w io.Writer, err error) {
	var e *pagesum.Error
	if errors.As(err, &e) {
		return
	}
	fmt.Fprintln(w, err)
}

// Main represents the program.
type Main struct {
	// Getenv looks up credential environment variables.
	Getenv func(string) string

	// Service replaces the configured pipeline. Used for end-to-end testing.
	Service pagesum.Service
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Getenv: m.Getenv,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesum"),
		kong.Description("Scrape web pages and summarize their content"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesum --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := NewLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	deps.Logger = logger
	deps.Provider = cli.Provider

	deps.Service = m.Service
	if deps.Service == nil {
		deps.Service = cli.Config.Pipeline(logger)
	}

	return kongCtx.Run(deps)
}

// Pipeline wires the fetcher, extractor and summarizer selected by c.
func (c *Config) Pipeline(logger *slog.Logger) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Fetcher:    pageslog.NewLoggingFetcher(c.fetcher(), logger),
		Extractor:  pageslog.NewLoggingExtractor(c.extractor(), logger),
		Summarizer: pageslog.NewLoggingSummarizer(c.summarizer(), logger),
	}
}

func (c *Config) fetcher() *pagehttp.Fetcher {
	opts := []pagehttp.Option{
		pagehttp.WithTimeout(c.Timeout),
		pagehttp.WithMaxBodyBytes(c.MaxBodyBytes),
	}
	if len(c.UserAgents) > 0 {
		opts = append(opts, pagehttp.WithUserAgents(c.UserAgents...))
	}
	return pagehttp.NewFetcher(opts...)
}

func (c *Config) extractor() pagesum.Extractor {
	rules := pagesum.DefaultTextRules()
	rules.MaxChars = c.MaxChars

	heuristic := goquery.NewExtractor(goquery.WithTextRules(rules))
	switch c.Extractor {
	case "readability":
		e := readability.NewExtractor(heuristic)
		e.Rules = rules
		return e
	case "trafilatura":
		e := trafilatura.NewExtractor(heuristic)
		e.Rules = rules
		return e
	}
	return heuristic
}

func (c *Config) summarizer() pagesum.Summarizer {
	if c.Provider == "openai" {
		var opts []openai.Option
		if c.Model != "" {
			opts = append(opts, openai.WithModel(c.Model))
		}
		return openai.NewSummarizer(opts...)
	}

	var opts []gemini.Option
	if c.Model != "" {
		opts = append(opts, gemini.WithModel(c.Model))
	}
	return gemini.NewSummarizer(opts...)
}

// NewLogger returns a logger writing to w at the given level and format.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}
