package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/fwojciec/docgraph/fs"
	"github.com/fwojciec/docgraph/goquery"
	dochttp "github.com/fwojciec/docgraph/http"
	"github.com/fwojciec/docgraph/htmltomarkdown"
	"github.com/fwojciec/docgraph/index"
	"github.com/fwojciec/docgraph/readability"
	"github.com/fwojciec/docgraph/rod"
	"github.com/fwojciec/docgraph/schedule"
	docslog "github.com/fwojciec/docgraph/slog"
	"github.com/fwojciec/docgraph/sqlite"
	"github.com/fwojciec/docgraph/store"
	"github.com/fwojciec/docgraph/trafilatura"
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
	// Configuration file path. Set before calling Run().
	ConfigPath string

	// Database path. Set before calling Run().
	DBPath string

	// SQLite database, nil when the filesystem backend is selected.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Store     *store.Store
	Indexer   *index.Indexer
	Scheduler *schedule.Scheduler
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		DBPath:     defaultDBPath(),
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docgraph"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docgraph --help' to see available commands")
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

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	cfg, err := loadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set DOCGRAPH_CONFIG to use a different config path")
		return err
	}
	deps.Config = cfg

	repo, err := m.openRepository(stderr)
	if err != nil {
		return err
	}
	defer m.Close()

	m.Store = store.NewStore(repo, logger)
	if err := m.Store.Rebuild(ctx); err != nil {
		return fmt.Errorf("failed to rebuild store: %w", err)
	}

	m.Indexer = index.NewIndexer(docgraph.DefaultThresholds(), index.DefaultPatterns(), logger)
	seedIndexer(m.Indexer, m.Store.Documents())

	deps.Store = m.Store
	deps.Indexer = m.Indexer

	// Crawling commands get a real fetcher; the rest run on stored state.
	var runner docgraph.JobRunner
	if cmd == "run" || cmd == "crawl" {
		plain := cli.Run.PlainHTTP || cli.Crawl.PlainHTTP

		fetcher, err := newFetcher(plain)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --plain-http")
			return fmt.Errorf("failed to start fetcher: %w", err)
		}
		defer fetcher.Close()

		crawler := &crawl.Crawler{
			Fetcher:    docslog.NewLoggingFetcher(fetcher, logger),
			Extractors: newExtractors(),
			Limiter:    crawl.NewLimiter(cfg.RateLimit),
			Retry:      cfg.Retry,
			Timeout:    cfg.FetchTimeout,
			Logger:     logger,
		}
		runner = docslog.NewLoggingRunner(&Pipeline{
			Crawler: crawler,
			Store:   m.Store,
			Indexer: m.Indexer,
		}, logger)
	}

	m.Scheduler = schedule.NewScheduler(*cfg, runner, nil, logger)
	deps.Scheduler = m.Scheduler

	return kongCtx.Run(deps)
}

// openRepository selects the persistence backend. DOCGRAPH_STORAGE=fs uses
// one JSON file per document instead of SQLite.
func (m *Main) openRepository(stderr io.Writer) (docgraph.DocumentRepository, error) {
	if os.Getenv("DOCGRAPH_STORAGE") == "fs" {
		return fs.NewRepository(defaultDataDir()), nil
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCGRAPH_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return sqlite.NewRepository(m.DB), nil
}

// newFetcher builds the browser fetcher, or a plain HTTP one for sources
// that render without JavaScript.
func newFetcher(plain bool) (docgraph.Fetcher, error) {
	if plain {
		return dochttp.NewFetcher(), nil
	}
	return rod.NewFetcher()
}

// newExtractors wires one extractor per content format, with the API
// reference extractor as the fallback for unknown formats.
func newExtractors() docgraph.ExtractorRegistry {
	registry := goquery.NewRegistry(goquery.NewAPIReferenceExtractor())
	registry.Register(docgraph.FormatAPIReference, goquery.NewAPIReferenceExtractor())
	registry.Register(docgraph.FormatInteractive, goquery.NewInteractiveExtractor())
	registry.Register(docgraph.FormatRichText, &goquery.RichTextExtractor{
		Body:      trafilatura.NewExtractor(),
		Fallback:  readability.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
	})
	registry.Register(docgraph.FormatVideo, goquery.NewVideoExtractor())
	return registry
}

func defaultConfigPath() string {
	if path := os.Getenv("DOCGRAPH_CONFIG"); path != "" {
		return path
	}
	return "docgraph.json"
}

func defaultDBPath() string {
	if path := os.Getenv("DOCGRAPH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docgraph.db"
	}
	dir := filepath.Join(home, ".docgraph")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docgraph.db")
}

func defaultDataDir() string {
	if path := os.Getenv("DOCGRAPH_DATA"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docgraph-data"
	}
	return filepath.Join(home, ".docgraph", "data")
}
