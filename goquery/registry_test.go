package goquery_test

import (
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/goquery"
	"github.com/fwojciec/docgraph/mock"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("returns the registered extractor", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.ContentExtractor{}
		video := &mock.ContentExtractor{}
		r := goquery.NewRegistry(fallback)
		r.Register(docgraph.FormatVideo, video)

		assert.Same(t, video, r.Get(docgraph.FormatVideo))
	})

	t.Run("falls back for unregistered formats", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.ContentExtractor{}
		r := goquery.NewRegistry(fallback)

		assert.Same(t, fallback, r.Get(docgraph.FormatInteractive))
	})
}
