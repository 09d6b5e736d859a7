package main

import (
	"context"
	"io"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/index"
	"github.com/fwojciec/docgraph/schedule"
	"github.com/fwojciec/docgraph/store"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *docgraph.Config
	Store     *store.Store
	Indexer   *index.Indexer
	Scheduler *schedule.Scheduler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run      RunCmd      `cmd:"" help:"Start the scheduler and crawl on the configured cadence"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl one source immediately"`
	Search   SearchCmd   `cmd:"" help:"Search stored documentation"`
	Explore  ExploreCmd  `cmd:"" help:"Search indexed endpoints, schemas, examples, and concepts"`
	Related  RelatedCmd  `cmd:"" help:"Show cross-source relationships"`
	Patterns PatternsCmd `cmd:"" help:"Show the integration pattern catalog"`
	Jobs     JobsCmd     `cmd:"" help:"List crawler jobs"`
	Versions VersionsCmd `cmd:"" help:"Show the version history of a document"`
	Stats    StatsCmd    `cmd:"" help:"Show store, index, and scheduler statistics"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	PlainHTTP bool `help:"Fetch with plain HTTP instead of a browser"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Source    string `arg:"" help:"Source name from the configuration"`
	PlainHTTP bool   `help:"Fetch with plain HTTP instead of a browser"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query; quoted phrases rank higher"`
	Source string `short:"s" help:"Restrict to one source"`
	Limit  int    `short:"n" default:"10" help:"Maximum results"`
	Offset int    `help:"Skip this many results"`
}

// ExploreCmd is the "explore" subcommand.
type ExploreCmd struct {
	Query  string `arg:"" help:"Search query"`
	Source string `short:"s" help:"Restrict to one source"`
	Limit  int    `short:"n" default:"10" help:"Maximum results"`
}

// RelatedCmd is the "related" subcommand.
type RelatedCmd struct{}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct{}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct{}

// VersionsCmd is the "versions" subcommand.
type VersionsCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
