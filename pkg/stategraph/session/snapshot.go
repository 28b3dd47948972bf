package session

import (
	"encoding/json"
	"time"
)

// Version is the current snapshot format version.
// Increment when making breaking changes to the snapshot structure.
const Version = 1

// Snapshot is the persisted memory of a session.
type Snapshot struct {
	// Metadata
	Version   int       `json:"version"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`

	// Turns counts completed runs within the session.
	Turns int `json:"turns"`

	// Memory holds the session's durable facts.
	Memory map[string]string `json:"memory"`
}

// Marshal serializes a snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot from JSON.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// New creates a snapshot for the given session.
// The memory map is copied, so later caller mutation does not leak in.
func New(sessionID string, memory map[string]string) *Snapshot {
	copied := make(map[string]string, len(memory))
	for k, v := range memory {
		copied[k] = v
	}
	return &Snapshot{
		Version:   Version,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Memory:    copied,
	}
}

// WithTurns sets the completed-run counter.
func (s *Snapshot) WithTurns(turns int) *Snapshot {
	s.Turns = turns
	return s
}
