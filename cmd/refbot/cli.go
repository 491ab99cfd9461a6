package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/scrape"
)

// CorpusLister lists the IDs of stored corpora.
type CorpusLister interface {
	List() ([]string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Config  Config
	Corpora refbot.CorpusService
	Writer  refbot.CorpusWriter
	Lister  CorpusLister
	Matcher refbot.Matcher
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Lookup  LookupCmd  `cmd:"" help:"Resolve a symbol and print its card pages"`
	View    ViewCmd    `cmd:"" help:"Resolve a symbol and browse its card interactively"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape a reference site into a corpus"`
	Corpora CorporaCmd `cmd:"" help:"List stored corpora"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Query  string `arg:"" help:"Symbol or page name to look up"`
	Corpus string `short:"c" default:"cpp-symbols" help:"Corpus to search"`
}

// ViewCmd is the "view" subcommand.
type ViewCmd struct {
	Query  string `arg:"" help:"Symbol or page name to look up"`
	Corpus string `short:"c" default:"cpp-symbols" help:"Corpus to search"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Corpus string `arg:"" help:"Corpus ID to save the entries under"`
	URL    string `arg:"" help:"Index page to scrape from"`
	Kind   string `short:"k" default:"symbol" enum:"symbol,stub,manpage" help:"Page kind: symbol, stub, or manpage"`
}

// CorporaCmd is the "corpora" subcommand.
type CorporaCmd struct{}
