package main

import (
	"fmt"
)

// Run executes the related command.
func (c *RelatedCmd) Run(deps *Dependencies) error {
	rels := deps.Indexer.Relationships()
	if len(rels) == 0 {
		fmt.Fprintln(deps.Stdout, "No relationships found. Crawl at least two sources first.")
		return nil
	}

	for _, rel := range rels {
		fmt.Fprintf(deps.Stdout, "%.2f  %-24s  %s <-> %s\n    %s\n",
			rel.Score, rel.Kind, rel.SourceAPI, rel.TargetAPI, rel.Description)
	}

	return nil
}
