package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/fs"
	"github.com/fwojciec/refbot/goquery"
	"github.com/fwojciec/refbot/htmltomarkdown"
	refhttp "github.com/fwojciec/refbot/http"
	"github.com/fwojciec/refbot/levenshtein"
	"github.com/fwojciec/refbot/scrape"
	refslog "github.com/fwojciec/refbot/slog"
	"github.com/fwojciec/refbot/sqlite"
	"github.com/fwojciec/refbot/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// SQLite database, opened when the sqlite backend is configured.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Corpora refbot.CorpusService
	Writer  refbot.CorpusWriter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	config, err := LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: config,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("refbot"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'refbot --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel(cli.Verbose),
	}))
	deps.Logger = logger

	// Wire the corpus backend
	switch config.Storage {
	case "sqlite":
		m.DB = sqlite.NewDB(config.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set db_path in the config to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", config.DBPath, err)
		}
		defer m.Close()

		store := sqlite.NewCorpusService(m.DB)
		m.Corpora, m.Writer = store, store
		deps.Lister = &sqliteLister{ctx: ctx, store: store}
	default:
		store := fs.NewCorpusStore(config.DataDir)
		m.Corpora, m.Writer = store, store
		deps.Lister = store
	}

	deps.Corpora = refslog.NewLoggingCorpusService(m.Corpora, logger)
	deps.Writer = refslog.NewLoggingCorpusWriter(m.Writer, logger)
	deps.Matcher = &levenshtein.Matcher{}

	if cmd == "scrape" {
		fetcher := refhttp.NewFetcher()
		defer fetcher.Close()

		links, parser := scrapeComponents(cli.Scrape.Kind)
		deps.Scraper = &scrape.Scraper{
			Fetcher:     refslog.NewLoggingFetcher(fetcher, logger),
			Links:       links,
			Parser:      parser,
			Corpora:     deps.Writer,
			Sitemaps:    refslog.NewLoggingSitemapService(refhttp.NewSitemapService(nil), logger),
			RateLimiter: scrape.NewDomainLimiter(config.RequestsPerSecond),
			Concurrency: config.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// scrapeComponents maps a page kind to its link selector and parser.
func scrapeComponents(kind string) (refbot.LinkExtractor, refbot.EntryParser) {
	switch kind {
	case "stub":
		return goquery.NewStubIndexSelector(), goquery.NewStubParser()
	case "manpage":
		return goquery.NewStubIndexSelector(), scrape.NewManpageParser(trafilatura.NewExtractor(), htmltomarkdown.NewConverter())
	default:
		return goquery.NewSymbolIndexSelector(), goquery.NewSymbolParser()
	}
}

// sqliteLister adapts the sqlite store to the CorpusLister interface.
type sqliteLister struct {
	ctx   context.Context
	store *sqlite.CorpusService
}

func (l *sqliteLister) List() ([]string, error) {
	infos, err := l.store.ListCorpora(l.ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	return ids, nil
}

func logLevel(verbose bool) slog.Level {
	if verbose || os.Getenv("REFBOT_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
