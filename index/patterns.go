package index

import (
	"sort"

	"github.com/fwojciec/docgraph"
)

// DefaultPatterns returns the authored integration pattern catalog. Steps
// describe multi-source procedures; example IDs are filled in at index
// time from whatever content actually mentions the participating sources.
func DefaultPatterns() []*docgraph.IntegrationPattern {
	return []*docgraph.IntegrationPattern{
		{
			ID:          "pattern-roster-sync",
			Name:        "Roster synchronization",
			Description: "Pull class rosters from a student information system and mirror them into a learning platform.",
			Sources:     []string{"classlink", "canvas"},
			Steps: []string{
				"Authenticate against the roster provider with OAuth client credentials",
				"Page through sections and enrollments since the last sync checkpoint",
				"Upsert courses and enrollments into the learning platform",
				"Record the new checkpoint for incremental syncs",
			},
			Prerequisites: []string{"OAuth application registered with both providers"},
			Difficulty:    "intermediate",
		},
		{
			ID:          "pattern-grade-passback",
			Name:        "Grade passback",
			Description: "Report assessment scores from a practice tool back into the gradebook of record.",
			Sources:     []string{"quizizz", "canvas"},
			Steps: []string{
				"Resolve the gradebook line item for the assignment",
				"Collect completed attempts and compute final scores",
				"Submit scores through the gradebook API with retry on transient failures",
				"Reconcile rejected submissions and surface them for manual review",
			},
			Prerequisites: []string{"Assignment linked to a gradebook line item"},
			Difficulty:    "advanced",
		},
		{
			ID:          "pattern-sso-launch",
			Name:        "Single sign-on launch",
			Description: "Launch an embedded learning tool from a portal without a second login prompt.",
			Sources:     []string{"classlink", "quizizz"},
			Steps: []string{
				"Exchange the portal session for a short-lived launch token",
				"Redirect the browser to the tool's launch endpoint with the token",
				"Validate the token server side and establish the tool session",
			},
			Difficulty: "beginner",
		},
		{
			ID:          "pattern-usage-analytics",
			Name:        "Cross-platform usage analytics",
			Description: "Combine activity data from multiple learning tools into one engagement report.",
			Sources:     []string{"canvas", "quizizz", "classlink"},
			Steps: []string{
				"Export activity events from each platform on a daily cadence",
				"Normalize student identities across platforms using roster data",
				"Aggregate engagement metrics per student and per class",
			},
			Prerequisites: []string{"Roster synchronization in place for identity matching"},
			Difficulty:    "advanced",
		},
	}
}

// enrichPatterns attaches code example IDs to each pattern whose source
// list includes the example's source. Must be called with mu held.
func (ix *Indexer) enrichPatterns() {
	for _, p := range ix.patterns {
		p.ExampleIDs = nil
		members := make(map[string]struct{}, len(p.Sources))
		for _, s := range p.Sources {
			members[s] = struct{}{}
		}
		for _, ex := range ix.examples {
			if _, ok := members[ex.Source]; ok {
				p.ExampleIDs = append(p.ExampleIDs, ex.ID)
			}
		}
		sort.Strings(p.ExampleIDs)
	}
}
