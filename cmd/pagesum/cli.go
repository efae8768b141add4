package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesum"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Service pagesum.Service

	// Provider is the configured summarization provider, used to pick the
	// credential environment variable.
	Provider string
	Getenv   func(string) string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config `embed:""`

	Serve     ServeCmd     `cmd:"" help:"Run the JSON API server"`
	Scrape    ScrapeCmd    `cmd:"" help:"Scrape a page and print its readable text"`
	Summarize SummarizeCmd `cmd:"" help:"Scrape a page and print a summary of it"`
}

// Config holds the pipeline settings shared by all commands.
type Config struct {
	Timeout      time.Duration `default:"30s" env:"PAGESUM_TIMEOUT" help:"Fetch timeout per page"`
	MaxChars     int           `default:"50000" env:"PAGESUM_MAX_CHARS" help:"Truncate extracted text beyond this many characters"`
	MaxBodyBytes int64         `default:"10485760" env:"PAGESUM_MAX_BODY_BYTES" help:"Maximum response body size to read"`
	Extractor    string        `enum:"heuristic,readability,trafilatura" default:"heuristic" env:"PAGESUM_EXTRACTOR" help:"Content extractor (${enum})"`
	Provider     string        `enum:"gemini,openai" default:"gemini" env:"PAGESUM_PROVIDER" help:"Summarization provider (${enum})"`
	Model        string        `env:"PAGESUM_MODEL" help:"Model name (defaults per provider)"`
	UserAgents   []string      `name:"user-agent" env:"PAGESUM_USER_AGENTS" help:"User-Agent to send (repeatable, rotated when more than one)"`
	LogLevel     string        `enum:"debug,info,warn,error" default:"info" env:"PAGESUM_LOG_LEVEL" help:"Log level (${enum})"`
	LogFormat    string        `enum:"text,json" default:"text" env:"PAGESUM_LOG_FORMAT" help:"Log format (${enum})"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":5000" env:"PAGESUM_ADDR" help:"Address to listen on"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL  string `arg:"" help:"Page URL"`
	JSON bool   `name:"json" help:"Print the result as JSON"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL         string `arg:"" help:"Page URL"`
	APIKey      string `name:"api-key" help:"Provider API key (defaults to GEMINI_API_KEY or OPENAI_API_KEY)"`
	Type        string `short:"t" default:"medium" help:"Summary type: brief, medium, detailed or bullets"`
	MaxWords    int    `help:"Word limit hint for non-bullet summaries"`
	BulletCount int    `help:"Number of bullet points for bullets summaries"`
	JSON        bool   `name:"json" help:"Print the result as JSON"`
}
