package docgraph_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns the code of an application error", func(t *testing.T) {
		t.Parallel()
		err := docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", "doc-1")
		assert.Equal(t, docgraph.ENOTFOUND, docgraph.ErrorCode(err))
	})

	t.Run("unwraps a wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("loading: %w", docgraph.Errorf(docgraph.EPARSE, "bad json"))
		assert.Equal(t, docgraph.EPARSE, docgraph.ErrorCode(err))
	})

	t.Run("defaults to EINTERNAL for unknown errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docgraph.EINTERNAL, docgraph.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docgraph.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns the message of an application error", func(t *testing.T) {
		t.Parallel()
		err := docgraph.Errorf(docgraph.EINVALID, "source name required")
		assert.Equal(t, "source name required", docgraph.ErrorMessage(err))
	})

	t.Run("hides messages of unknown errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", docgraph.ErrorMessage(errors.New("boom")))
	})

	t.Run("returns empty for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docgraph.ErrorMessage(nil))
	})
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, docgraph.Retryable(docgraph.Errorf(docgraph.EUNAVAILABLE, "connection reset")))
	assert.False(t, docgraph.Retryable(docgraph.Errorf(docgraph.EPARSE, "malformed page")))
	assert.False(t, docgraph.Retryable(docgraph.Errorf(docgraph.EINVALID, "bad config")))
	assert.False(t, docgraph.Retryable(errors.New("boom")))
	assert.False(t, docgraph.Retryable(nil))
}
