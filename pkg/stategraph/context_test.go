package stategraph

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewContext tests default context construction.
func TestNewContext(t *testing.T) {
	ctx := NewContext(context.Background())

	assert.NotNil(t, ctx.Logger())
	assert.NotEmpty(t, ctx.RunID())
	assert.Empty(t, ctx.NodeID())
	assert.Equal(t, 1, ctx.Attempt())
}

// TestNewContext_Options tests logger and run ID overrides.
func TestNewContext_Options(t *testing.T) {
	logger := slog.Default().With("component", "test")

	ctx := NewContext(context.Background(),
		WithLogger(logger),
		WithContextRunID("run-123"))

	assert.Same(t, logger, ctx.Logger())
	assert.Equal(t, "run-123", ctx.RunID())
}

// TestNewContext_NilLogger tests the never-nil Logger() promise when a nil
// logger is configured, including per-node derivation.
func TestNewContext_NilLogger(t *testing.T) {
	ctx := NewContext(context.Background(), WithLogger(nil))

	require.NotNil(t, ctx.Logger())

	ec, ok := ctx.(*executionContext)
	require.True(t, ok)
	assert.NotPanics(t, func() {
		derived := ec.withNodeID("supervisor")
		assert.NotNil(t, derived.Logger())
	})
}

// TestNewContext_UniqueRunIDs tests that generated run IDs differ.
func TestNewContext_UniqueRunIDs(t *testing.T) {
	a := NewContext(context.Background())
	b := NewContext(context.Background())

	assert.NotEqual(t, a.RunID(), b.RunID())
}

// TestContext_WrapsParent tests that cancellation flows through from the
// parent context.
func TestContext_WrapsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := NewContext(parent)

	select {
	case <-ctx.Done():
		t.Fatal("context done before cancel")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not done after cancel")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

// TestContext_WithNodeID tests per-node context derivation.
func TestContext_WithNodeID(t *testing.T) {
	base := NewContext(context.Background(), WithContextRunID("run-1"))

	ec, ok := base.(*executionContext)
	require.True(t, ok)

	derived := ec.withNodeID("supervisor")

	assert.Equal(t, "supervisor", derived.NodeID())
	assert.Equal(t, "run-1", derived.RunID())
	assert.Equal(t, 1, derived.Attempt())
	assert.NotNil(t, derived.Logger())

	// The base context is untouched
	assert.Empty(t, base.NodeID())
}
