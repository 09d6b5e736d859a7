package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the explore command.
func (c *ExploreCmd) Run(deps *Dependencies) error {
	matches := deps.Indexer.Search(docgraph.IndexQuery{
		Query:  c.Query,
		Source: c.Source,
		Limit:  c.Limit,
	})

	if len(matches) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	for _, m := range matches {
		source := m.Source
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(deps.Stdout, "%-12s  %.2f  %-10s  %s\n", m.Type, m.Relevance, source, m.Title)
	}

	return nil
}
