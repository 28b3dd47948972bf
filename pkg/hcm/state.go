// Package hcm implements an HCM operations assistant on top of the
// stategraph engine: a supervisor node interprets a user request and
// routes it to a specialist agent (role assignment, password reset,
// account unlock).
package hcm

// Node identifiers in the assistant workflow.
const (
	NodeSupervisor    = "supervisor"
	NodeRoleAgent     = "role_agent"
	NodePasswordAgent = "password_agent"
	NodeUnlockAgent   = "unlock_agent"
)

// StepEnd is the routing label nodes write when the pipeline is finished.
// The workflow's destination map resolves it to stategraph.END.
const StepEnd = "end"

// Supported actions.
const (
	ActionAssignRole    = "assign_role"
	ActionResetPassword = "reset_password"
	ActionUnlockUser    = "unlock_user"
)

// Memory keys written by the pipeline.
const (
	MemLastUsername = "last_username"
	MemLastAction   = "last_action"
	MemLastRole     = "last_assigned_role"
)

// State is the record threaded through the assistant workflow.
//
// The well-known fields are typed; caller-defined free-form data goes in
// Extra and passes through untouched by nodes that do not use it. Memory
// holds durable per-session facts and is merge-only for nodes: read it,
// add or update keys with Remember, never replace the map wholesale.
type State struct {
	// Messages is the conversational input history for this run.
	Messages []string `json:"messages"`

	// Action is what the user wants to do (see the Action constants).
	Action string `json:"action"`

	// Username is who to perform the action on.
	Username string `json:"username"`

	// ExtraInfo carries action-specific detail, such as the role name.
	ExtraInfo string `json:"extra_info"`

	// Result is the final outcome message produced by an agent.
	Result string `json:"result"`

	// NextStep is the routing hint: the node to run next, or StepEnd.
	NextStep string `json:"next_step"`

	// Memory holds durable per-session facts (user_memory).
	Memory map[string]string `json:"user_memory,omitempty"`

	// Extra holds caller-defined fields the pipeline passes through.
	Extra map[string]string `json:"extra,omitempty"`
}

// NewInitialState builds the state for one workflow run.
// The memory map is copied in, so the caller's map is not aliased.
func NewInitialState(message string, memory map[string]string) State {
	s := State{
		Messages: []string{message},
		NextStep: NodeSupervisor,
	}
	for k, v := range memory {
		s = s.Remember(k, v)
	}
	return s
}

// NextHint implements stategraph.NextHinter.
func (s State) NextHint() string {
	return s.NextStep
}

// Request returns the user request driving this run, or "" when the run
// has no messages.
func (s State) Request() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[0]
}

// Remember returns a copy of the state with key set in Memory.
// The existing map is never mutated, and no other keys are dropped,
// so nodes sharing a session cannot clobber each other's facts.
func (s State) Remember(key, value string) State {
	merged := make(map[string]string, len(s.Memory)+1)
	for k, v := range s.Memory {
		merged[k] = v
	}
	merged[key] = value
	s.Memory = merged
	return s
}

// MemoryValue returns the remembered value for key.
func (s State) MemoryValue(key string) (string, bool) {
	v, ok := s.Memory[key]
	return v, ok
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if s.Messages != nil {
		out.Messages = make([]string, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	if s.Memory != nil {
		out.Memory = make(map[string]string, len(s.Memory))
		for k, v := range s.Memory {
			out.Memory[k] = v
		}
	}
	if s.Extra != nil {
		out.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
