package mock

import (
	"time"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.Clock = (*Clock)(nil)

// Clock is a mock implementation of docgraph.Clock.
type Clock struct {
	NowFn func() time.Time
}

func (c *Clock) Now() time.Time {
	return c.NowFn()
}
