package hcm

import (
	"context"
	"strings"
)

// Decision is an analyzer's reading of a user request.
type Decision struct {
	// Action is one of the Action constants, or "" when the request could
	// not be classified.
	Action string
	// Username is the account the action targets, or "" when the request
	// names no user.
	Username string
	// ExtraInfo carries action-specific detail (e.g. the role name).
	ExtraInfo string
}

// Analyzer interprets a natural-language request into a Decision.
//
// The supervisor treats the analyzer as an opaque collaborator: an
// LLM-backed implementation, the rule-based one below, or anything else
// satisfying this contract. Implementations should honor ctx cancellation
// when they call out externally.
type Analyzer interface {
	Analyze(ctx context.Context, request string) (Decision, error)
}

// ParseDecision parses the reply format LLM-backed analyzers prompt for:
//
//	ACTION: assign_role
//	USERNAME: john.doe
//	EXTRA: HR Manager
//
// Unknown lines are ignored. An EXTRA of "none" maps to "".
func ParseDecision(text string) Decision {
	var d Decision
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ACTION:"):
			d.Action = strings.TrimSpace(strings.TrimPrefix(line, "ACTION:"))
		case strings.HasPrefix(line, "USERNAME:"):
			d.Username = strings.TrimSpace(strings.TrimPrefix(line, "USERNAME:"))
		case strings.HasPrefix(line, "EXTRA:"):
			extra := strings.TrimSpace(strings.TrimPrefix(line, "EXTRA:"))
			if !strings.EqualFold(extra, "none") {
				d.ExtraInfo = extra
			}
		}
	}
	return d
}

// RuleAnalyzer classifies requests with keyword rules.
// It is deterministic and needs no external service, which makes it the
// default analyzer for the CLI and for tests.
type RuleAnalyzer struct{}

var _ Analyzer = RuleAnalyzer{}

// Analyze implements Analyzer.
//
// Recognized request shapes:
//
//	Assign <role name> role to <username>
//	Reset password for <username>
//	Unlock user <username>
func (RuleAnalyzer) Analyze(_ context.Context, request string) (Decision, error) {
	lower := strings.ToLower(request)

	var d Decision
	switch {
	case strings.Contains(lower, "password"):
		d.Action = ActionResetPassword
		d.Username = usernameAfter(request, "for")
	case strings.Contains(lower, "unlock"):
		d.Action = ActionUnlockUser
		d.Username = usernameAfter(request, "user")
	case strings.Contains(lower, "role") || strings.Contains(lower, "assign"):
		d.Action = ActionAssignRole
		d.Username = usernameAfter(request, "to")
		d.ExtraInfo = roleName(request)
	}
	return d, nil
}

// usernameAfter returns the word following the given marker word, with
// trailing punctuation trimmed.
func usernameAfter(request, marker string) string {
	words := strings.Fields(request)
	for i, w := range words {
		if strings.EqualFold(w, marker) && i+1 < len(words) {
			return strings.Trim(words[i+1], ".,!?\"'")
		}
	}
	return ""
}

// roleName extracts the role name from an assignment request: the words
// between the leading verb and the word "role".
func roleName(request string) string {
	words := strings.Fields(request)
	start := 0
	if len(words) > 0 && strings.EqualFold(words[0], "assign") {
		start = 1
	}
	for i := start; i < len(words); i++ {
		if strings.EqualFold(words[i], "role") {
			return strings.Join(words[start:i], " ")
		}
	}
	return ""
}
