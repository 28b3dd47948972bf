package hcm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/stategraph/pkg/stategraph/observability"
	"github.com/randalmurphal/stategraph/pkg/stategraph/registry"
	"github.com/randalmurphal/stategraph/pkg/stategraph/session"
)

// Bridge carries session memory across independent workflow runs.
//
// Before each run, Seed merges the session's stored memory into the
// initial state (stored memory wins for keys present in both). After each
// run, Commit copies the final state's memory back out. The bridge owns
// the memory between runs; during a run, the state owns it exclusively.
//
// A Bridge is safe for concurrent use across sessions. Interleaving Seed
// and Commit for the same session from multiple goroutines is the
// caller's responsibility to avoid.
type Bridge struct {
	store   session.Store
	cache   *registry.Registry[string, map[string]string]
	turns   *registry.Registry[string, int]
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithBridgeLogger sets the logger for session-store events.
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithBridgeMetrics sets the recorder for session snapshot metrics.
// Defaults to a no-op recorder.
func WithBridgeMetrics(metrics observability.MetricsRecorder) BridgeOption {
	return func(b *Bridge) {
		if metrics != nil {
			b.metrics = metrics
		}
	}
}

// NewBridge creates a bridge. A nil store keeps memory in-process only;
// with a store, committed memory survives restarts.
func NewBridge(store session.Store, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		store:   store,
		cache:   registry.New[string, map[string]string](),
		turns:   registry.New[string, int](),
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Seed returns the state with the session's stored memory merged in.
// Stored memory takes precedence over any defaults already in the state;
// state keys absent from storage are preserved.
func (b *Bridge) Seed(sessionID string, s State) (State, error) {
	stored, err := b.memory(sessionID)
	if err != nil {
		return s, fmt.Errorf("seed session %s: %w", sessionID, err)
	}
	for k, v := range stored {
		s = s.Remember(k, v)
	}
	return s, nil
}

// Commit retains the final state's memory for the session and, when the
// bridge has a store, persists a snapshot.
func (b *Bridge) Commit(sessionID string, s State) error {
	copied := make(map[string]string, len(s.Memory))
	for k, v := range s.Memory {
		copied[k] = v
	}
	b.cache.Register(sessionID, copied)

	turns, _ := b.turns.Get(sessionID)
	turns++
	b.turns.Register(sessionID, turns)

	if b.store == nil {
		return nil
	}

	snap := session.New(sessionID, copied).WithTurns(turns)
	data, err := snap.Marshal()
	if err != nil {
		observability.LogSessionError(b.logger, sessionID, "marshal", err)
		return fmt.Errorf("commit session %s: %w", sessionID, err)
	}
	if err := b.store.Save(sessionID, data); err != nil {
		observability.LogSessionError(b.logger, sessionID, "save", err)
		return fmt.Errorf("commit session %s: %w", sessionID, err)
	}

	observability.LogSessionSave(b.logger, sessionID, len(data))
	b.metrics.RecordSessionSave(context.Background(), sessionID, int64(len(data)))
	return nil
}

// Memory returns a copy of the session's current memory.
func (b *Bridge) Memory(sessionID string) (map[string]string, error) {
	return b.memory(sessionID)
}

// Forget drops the session's memory from the bridge and its store.
func (b *Bridge) Forget(sessionID string) error {
	b.cache.Delete(sessionID)
	b.turns.Delete(sessionID)
	if b.store == nil {
		return nil
	}
	if err := b.store.Delete(sessionID); err != nil {
		return fmt.Errorf("forget session %s: %w", sessionID, err)
	}
	return nil
}

// memory loads the session's memory from the cache, falling back to the
// store. An unknown session yields an empty map.
func (b *Bridge) memory(sessionID string) (map[string]string, error) {
	if cached, ok := b.cache.Get(sessionID); ok {
		copied := make(map[string]string, len(cached))
		for k, v := range cached {
			copied[k] = v
		}
		return copied, nil
	}

	if b.store == nil {
		return map[string]string{}, nil
	}

	data, err := b.store.Load(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	snap, err := session.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	b.cache.Register(sessionID, snap.Memory)
	b.turns.Register(sessionID, snap.Turns)

	copied := make(map[string]string, len(snap.Memory))
	for k, v := range snap.Memory {
		copied[k] = v
	}
	return copied, nil
}
