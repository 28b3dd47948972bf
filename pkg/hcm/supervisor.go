package hcm

import (
	"fmt"

	"github.com/randalmurphal/stategraph/pkg/stategraph"
	"github.com/randalmurphal/stategraph/pkg/stategraph/registry"
)

// Routes maps actions to the agent nodes that handle them.
type Routes struct {
	table *registry.Registry[string, string]
}

// DefaultRoutes returns the standard action→agent table.
func DefaultRoutes() *Routes {
	r := &Routes{table: registry.New[string, string]()}
	r.table.RegisterMany(map[string]string{
		ActionAssignRole:    NodeRoleAgent,
		ActionResetPassword: NodePasswordAgent,
		ActionUnlockUser:    NodeUnlockAgent,
	})
	return r
}

// Bind maps an action to an agent node, overriding any existing entry.
// Use it to plug additional specialist agents into the workflow.
func (r *Routes) Bind(action, node string) {
	r.table.Register(action, node)
}

// Agent returns the node handling the given action.
func (r *Routes) Agent(action string) (string, bool) {
	return r.table.Get(action)
}

// Labels returns the destination map for the supervisor's conditional
// edge: every agent node routes to itself, and StepEnd routes to END.
func (r *Routes) Labels() map[string]string {
	labels := map[string]string{StepEnd: stategraph.END}
	r.table.Range(func(_ string, node string) bool {
		labels[node] = node
		return true
	})
	return labels
}

// Supervisor returns the node that interprets the user request and decides
// which agent runs next.
//
// The analyzer fills in the action, username, and extra info. When the
// request names no user, the supervisor falls back to the session's
// remembered last_username, which is how "reset her password" style
// follow-ups resolve. The decision is recorded into session memory.
func Supervisor(analyzer Analyzer, routes *Routes) stategraph.NodeFunc[State] {
	return func(ctx stategraph.Context, s State) (State, error) {
		request := s.Request()
		if request == "" {
			return s, fmt.Errorf("empty request")
		}

		decision, err := analyzer.Analyze(ctx, request)
		if err != nil {
			return s, fmt.Errorf("analyze request: %w", err)
		}

		s.Action = decision.Action
		s.Username = decision.Username
		s.ExtraInfo = decision.ExtraInfo

		if s.Username == "" {
			if last, ok := s.MemoryValue(MemLastUsername); ok {
				ctx.Logger().Debug("no username in request, using remembered user",
					"username", last)
				s.Username = last
			}
		}

		node, ok := routes.Agent(s.Action)
		if !ok {
			s.Result = fmt.Sprintf("Sorry, I don't know how to handle that request: %q", request)
			s.NextStep = StepEnd
			ctx.Logger().Info("unroutable action", "action", s.Action)
			return s, nil
		}

		if s.Username != "" {
			s = s.Remember(MemLastUsername, s.Username)
		}
		s = s.Remember(MemLastAction, s.Action)

		s.NextStep = node
		ctx.Logger().Info("request routed",
			"action", s.Action,
			"username", s.Username,
			"next", node)
		return s, nil
	}
}

// RouteNext is the supervisor's router: it reads the routing hint the
// supervisor wrote. The workflow's destination map resolves the label.
func RouteNext(_ stategraph.Context, s State) string {
	return s.NextStep
}
