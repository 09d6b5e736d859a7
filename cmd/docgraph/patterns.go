package main

import (
	"fmt"
	"strings"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	for _, p := range deps.Indexer.Patterns() {
		fmt.Fprintf(deps.Stdout, "%s [%s]\n  %s\n  Sources: %s\n",
			p.Name, p.Difficulty, p.Description, strings.Join(p.Sources, ", "))
		for i, step := range p.Steps {
			fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, step)
		}
		if len(p.ExampleIDs) > 0 {
			fmt.Fprintf(deps.Stdout, "  Examples: %d indexed\n", len(p.ExampleIDs))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
