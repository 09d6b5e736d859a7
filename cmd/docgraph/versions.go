package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/docgraph"
)

// Run executes the versions command.
func (c *VersionsCmd) Run(deps *Dependencies) error {
	doc, err := deps.Store.Get(c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	versions, err := deps.Store.Versions(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n  current: v%s, updated %s\n",
		doc.URL, doc.Source, doc.Meta.Version, doc.Meta.LastUpdated.Format(time.RFC3339))

	for _, v := range versions {
		fmt.Fprintf(deps.Stdout, "  v%s  %s", v.Version, v.CreatedAt.Format(time.RFC3339))
		if len(v.Changes) > 0 {
			fmt.Fprintf(deps.Stdout, "  (%s)", strings.Join(v.Changes, "; "))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
