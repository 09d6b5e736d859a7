package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Store.Search(docgraph.SearchQuery{
		Query:  c.Query,
		Source: c.Source,
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	for i, r := range results {
		title := r.Document.Title
		if title == "" {
			title = r.Document.URL
		}
		fmt.Fprintf(deps.Stdout, "%d. [%.0f] %s (%s, v%s)\n   %s\n",
			c.Offset+i+1, r.Score, title, r.Document.Source, r.Document.Meta.Version, r.Document.URL)
		if r.Snippet != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Snippet)
		}
	}

	return nil
}
