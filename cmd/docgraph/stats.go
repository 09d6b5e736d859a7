package main

import (
	"fmt"
	"time"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	st := deps.Store.Stats()
	fmt.Fprintf(deps.Stdout, "Store:     %d documents, %d endpoints, %d schemas, %d examples, %d bytes, %d tokens indexed\n",
		st.Documents, st.Endpoints, st.Schemas, st.Examples, st.TotalSize, st.IndexedTokens)
	for source, n := range st.BySource {
		fmt.Fprintf(deps.Stdout, "           %s: %d documents\n", source, n)
	}

	ix := deps.Indexer.Stats()
	fmt.Fprintf(deps.Stdout, "Index:     %d endpoints, %d schemas, %d examples, %d concepts, %d relationships, %d patterns\n",
		ix.Endpoints, ix.Schemas, ix.Examples, ix.Concepts, ix.Relationships, ix.Patterns)

	sc := deps.Scheduler.Stats()
	fmt.Fprintf(deps.Stdout, "Scheduler: %d jobs", sc.Jobs)
	for status, n := range sc.ByStatus {
		fmt.Fprintf(deps.Stdout, ", %d %s", n, status)
	}
	fmt.Fprintln(deps.Stdout)
	if !sc.NextRun.IsZero() {
		fmt.Fprintf(deps.Stdout, "           next run %s\n", sc.NextRun.Format(time.RFC3339))
	}

	return nil
}
