package hcm

import (
	"context"
	"testing"
	"time"

	"github.com/randalmurphal/stategraph/pkg/stategraph/observability"
	"github.com/randalmurphal/stategraph/pkg/stategraph/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionSave records one RecordSessionSave call.
type sessionSave struct {
	sessionID string
	size      int64
}

// recordingMetrics captures session-save metric calls.
type recordingMetrics struct {
	saves []sessionSave
}

var _ observability.MetricsRecorder = (*recordingMetrics)(nil)

func (m *recordingMetrics) RecordNodeExecution(_ context.Context, _ string, _ time.Duration, _ error) {
}

func (m *recordingMetrics) RecordGraphRun(_ context.Context, _ bool, _ time.Duration) {}

func (m *recordingMetrics) RecordSessionSave(_ context.Context, sessionID string, size int64) {
	m.saves = append(m.saves, sessionSave{sessionID: sessionID, size: size})
}

// TestBridge_SeedEmptySession tests seeding an unknown session: the state
// passes through unchanged.
func TestBridge_SeedEmptySession(t *testing.T) {
	bridge := NewBridge(nil)

	initial := NewInitialState("request", map[string]string{"preset": "kept"})
	seeded, err := bridge.Seed("new-session", initial)

	require.NoError(t, err)
	v, _ := seeded.MemoryValue("preset")
	assert.Equal(t, "kept", v)
}

// TestBridge_CommitThenSeed tests memory continuity across runs.
func TestBridge_CommitThenSeed(t *testing.T) {
	bridge := NewBridge(nil)

	final := State{}.Remember(MemLastUsername, "jane.smith")
	require.NoError(t, bridge.Commit("session-1", final))

	seeded, err := bridge.Seed("session-1", NewInitialState("Reset the password", nil))
	require.NoError(t, err)

	v, ok := seeded.MemoryValue(MemLastUsername)
	require.True(t, ok)
	assert.Equal(t, "jane.smith", v)
}

// TestBridge_StoredMemoryWins tests seed precedence: stored values replace
// state defaults for shared keys, other state keys survive.
func TestBridge_StoredMemoryWins(t *testing.T) {
	bridge := NewBridge(nil)

	require.NoError(t, bridge.Commit("session-1", State{}.Remember("shared", "stored")))

	initial := NewInitialState("request", map[string]string{
		"shared":     "default",
		"state-only": "kept",
	})
	seeded, err := bridge.Seed("session-1", initial)
	require.NoError(t, err)

	shared, _ := seeded.MemoryValue("shared")
	assert.Equal(t, "stored", shared)
	stateOnly, _ := seeded.MemoryValue("state-only")
	assert.Equal(t, "kept", stateOnly)
}

// TestBridge_SessionsAreIsolated tests that sessions do not leak into each other.
func TestBridge_SessionsAreIsolated(t *testing.T) {
	bridge := NewBridge(nil)

	require.NoError(t, bridge.Commit("session-a", State{}.Remember("who", "alice")))
	require.NoError(t, bridge.Commit("session-b", State{}.Remember("who", "bob")))

	memA, err := bridge.Memory("session-a")
	require.NoError(t, err)
	memB, err := bridge.Memory("session-b")
	require.NoError(t, err)

	assert.Equal(t, "alice", memA["who"])
	assert.Equal(t, "bob", memB["who"])
}

// TestBridge_PersistsThroughStore tests the store round trip: a fresh
// bridge over the same store sees committed memory.
func TestBridge_PersistsThroughStore(t *testing.T) {
	store := session.NewMemoryStore()
	defer store.Close()

	first := NewBridge(store)
	require.NoError(t, first.Commit("session-1", State{}.Remember(MemLastUsername, "jane.smith")))

	// New bridge, same store: simulates a process restart
	second := NewBridge(store)
	seeded, err := second.Seed("session-1", NewInitialState("request", nil))
	require.NoError(t, err)

	v, ok := seeded.MemoryValue(MemLastUsername)
	require.True(t, ok)
	assert.Equal(t, "jane.smith", v)
}

// TestBridge_CommitWritesSnapshot tests the persisted snapshot contents.
func TestBridge_CommitWritesSnapshot(t *testing.T) {
	store := session.NewMemoryStore()
	defer store.Close()

	bridge := NewBridge(store)
	require.NoError(t, bridge.Commit("session-1", State{}.Remember("k", "v")))
	require.NoError(t, bridge.Commit("session-1", State{}.Remember("k", "v2")))

	data, err := store.Load("session-1")
	require.NoError(t, err)

	snap, err := session.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "session-1", snap.SessionID)
	assert.Equal(t, 2, snap.Turns)
	assert.Equal(t, map[string]string{"k": "v2"}, snap.Memory)
}

// TestBridge_CommitRecordsMetrics tests that a persisted snapshot is
// reported to the configured metrics recorder with its size.
func TestBridge_CommitRecordsMetrics(t *testing.T) {
	store := session.NewMemoryStore()
	defer store.Close()

	metrics := &recordingMetrics{}
	bridge := NewBridge(store, WithBridgeMetrics(metrics))

	require.NoError(t, bridge.Commit("session-1", State{}.Remember("k", "v")))

	data, err := store.Load("session-1")
	require.NoError(t, err)

	require.Len(t, metrics.saves, 1)
	assert.Equal(t, "session-1", metrics.saves[0].sessionID)
	assert.Equal(t, int64(len(data)), metrics.saves[0].size)
}

// TestBridge_CommitWithoutStoreRecordsNoMetrics tests that an in-process
// commit with nothing persisted reports no snapshot save.
func TestBridge_CommitWithoutStoreRecordsNoMetrics(t *testing.T) {
	metrics := &recordingMetrics{}
	bridge := NewBridge(nil, WithBridgeMetrics(metrics))

	require.NoError(t, bridge.Commit("session-1", State{}.Remember("k", "v")))

	assert.Empty(t, metrics.saves)
}

// TestBridge_Forget tests dropping a session from bridge and store.
func TestBridge_Forget(t *testing.T) {
	store := session.NewMemoryStore()
	defer store.Close()

	bridge := NewBridge(store)
	require.NoError(t, bridge.Commit("session-1", State{}.Remember("k", "v")))

	require.NoError(t, bridge.Forget("session-1"))

	memory, err := bridge.Memory("session-1")
	require.NoError(t, err)
	assert.Empty(t, memory)

	_, err = store.Load("session-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

// TestBridge_MemoryReturnsCopy tests that callers cannot mutate the
// bridge's cached memory through the returned map.
func TestBridge_MemoryReturnsCopy(t *testing.T) {
	bridge := NewBridge(nil)
	require.NoError(t, bridge.Commit("session-1", State{}.Remember("k", "v")))

	memory, err := bridge.Memory("session-1")
	require.NoError(t, err)
	memory["k"] = "mutated"

	again, err := bridge.Memory("session-1")
	require.NoError(t, err)
	assert.Equal(t, "v", again["k"])
}

// TestBridge_EndToEndSession tests the full session loop with the workflow:
// two runs bridged through shared memory.
func TestBridge_EndToEndSession(t *testing.T) {
	store := session.NewMemoryStore()
	defer store.Close()

	bridge := NewBridge(store)
	dir := &recordingDirectory{}
	workflow, err := BuildWorkflow(RuleAnalyzer{}, dir, nil)
	require.NoError(t, err)

	const sessionID = "session-1"

	// First run names the user
	state, err := bridge.Seed(sessionID, NewInitialState("Assign HR Manager role to jane.smith", nil))
	require.NoError(t, err)
	final, err := workflow.Run(testRunCtx(), state)
	require.NoError(t, err)
	require.NoError(t, bridge.Commit(sessionID, final))

	// Second run relies on remembered last_username
	state, err = bridge.Seed(sessionID, NewInitialState("Reset the password", nil))
	require.NoError(t, err)
	final, err = workflow.Run(testRunCtx(), state)
	require.NoError(t, err)
	require.NoError(t, bridge.Commit(sessionID, final))

	assert.Equal(t, []string{"jane.smith"}, dir.resetCalls)

	memory, err := bridge.Memory(sessionID)
	require.NoError(t, err)
	assert.Equal(t, "jane.smith", memory[MemLastUsername])
	assert.Equal(t, ActionResetPassword, memory[MemLastAction])
	assert.Equal(t, "HR Manager", memory[MemLastRole])
}
