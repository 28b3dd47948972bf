// Package session provides durable storage for per-session memory snapshots.
//
// A session is a sequence of independent graph runs that share a memory
// map. The caller loads the snapshot before a run, seeds the initial state
// with it, and saves the final state's memory back after the run.
package session

import (
	"errors"
	"time"
)

// Store persists session-memory snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot for a session.
	// Overwrites any existing snapshot for the session.
	Save(sessionID string, data []byte) error

	// Load retrieves the snapshot for a session.
	// Returns ErrNotFound if no snapshot exists.
	Load(sessionID string) ([]byte, error)

	// List returns metadata for all stored sessions, ordered by most
	// recently saved first. Returns an empty slice (not an error) when the
	// store is empty.
	List() ([]Info, error)

	// Delete removes a session's snapshot.
	// Returns nil if no snapshot exists.
	Delete(sessionID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides snapshot metadata without loading the full memory map.
type Info struct {
	SessionID string
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no snapshot exists for the session.
	ErrNotFound = errors.New("session snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("session store closed")
)
