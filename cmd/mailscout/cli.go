package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mailscout"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Renderer mailscout.Renderer
	Runs     mailscout.RunStore
}

// log returns the configured logger, or one that discards everything.
func (d *Dependencies) log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogFile string `name:"log-file" default:"mailscout.log" env:"MAILSCOUT_LOG" help:"Log file, rotated at 10MB (empty disables)"`
	Verbose bool   `short:"v" help:"Also log to stderr, including every page load"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape email addresses from a list of websites"`
	Filter FilterCmd `cmd:"" help:"Drop generic addresses from a raw emails CSV"`
	Runs   RunsCmd   `cmd:"" help:"List recorded scrape runs, or show one"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Input          string        `short:"i" default:"websites.csv" help:"CSV of websites, one per row in the first column, with a header"`
	Raw            string        `default:"emails_raw.csv" help:"Output CSV of every address found"`
	Filtered       string        `default:"emails_filtered.csv" help:"Output CSV without generic addresses"`
	UserAgent      []string      `name:"user-agent" sep:"none" help:"User agent to pick from per site (repeatable)"`
	Proxy          string        `env:"MAILSCOUT_PROXY" help:"Proxy server as host:port"`
	Headless       bool          `default:"true" negatable:"" help:"Run the browser without a window"`
	Settle         time.Duration `default:"3s" help:"Wait after page load for client-side rendering"`
	Timeout        time.Duration `default:"30s" help:"Page load timeout"`
	ContactPattern string        `name:"contact-pattern" default:"/contact" help:"Substring marking contact page links"`
	IgnorePrefix   []string      `name:"ignore-prefix" help:"Generic address prefix to drop (repeatable, defaults to support@, info@, noreply@, contact@, admin@, webmaster@)"`
	Rate           float64       `default:"0" help:"Page loads per second per domain (0 disables)"`
	Static         bool          `help:"Fetch pages over plain HTTP instead of a browser"`
	History        bool          `default:"true" negatable:"" help:"Record the run in the history database"`
}

// RendererConfig builds the renderer configuration from the flags.
func (c *ScrapeCmd) RendererConfig() mailscout.RendererConfig {
	cfg := mailscout.DefaultRendererConfig()
	if len(c.UserAgent) > 0 {
		cfg.UserAgents = c.UserAgent
	}
	cfg.Proxy = c.Proxy
	cfg.Headless = c.Headless
	cfg.SettleDelay = c.Settle
	cfg.LoadTimeout = c.Timeout
	return cfg
}

// FilterCmd is the "filter" subcommand.
type FilterCmd struct {
	Input        string   `short:"i" default:"emails_raw.csv" help:"Raw emails CSV (Website,Email)"`
	Output       string   `short:"o" default:"emails_filtered.csv" help:"Filtered emails CSV"`
	IgnorePrefix []string `name:"ignore-prefix" help:"Generic address prefix to drop (repeatable)"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	ID    string `arg:"" optional:"" help:"Run ID to show"`
	Limit int    `short:"n" default:"20" help:"Maximum runs to list"`
	Raw   bool   `help:"Show raw rows instead of filtered ones"`
}
