package hcm

import (
	"github.com/randalmurphal/stategraph/pkg/stategraph"
)

// BuildWorkflow assembles and compiles the assistant graph:
//
//	        supervisor
//	       /     |     \
//	 role_agent  |  unlock_agent
//	             |
//	      password_agent
//	       \     |     /
//	           END
//
// The supervisor's conditional edge resolves through routes.Labels();
// every agent runs exactly once and then terminates. A nil routes uses
// DefaultRoutes().
func BuildWorkflow(analyzer Analyzer, dir Directory, routes *Routes) (*stategraph.CompiledGraph[State], error) {
	if routes == nil {
		routes = DefaultRoutes()
	}

	graph := stategraph.NewGraph[State]().
		AddNode(NodeSupervisor, Supervisor(analyzer, routes)).
		AddNode(NodeRoleAgent, RoleAgent(dir)).
		AddNode(NodePasswordAgent, PasswordAgent(dir)).
		AddNode(NodeUnlockAgent, UnlockAgent(dir)).
		AddConditionalEdges(NodeSupervisor, RouteNext, routes.Labels()).
		AddEdge(NodeRoleAgent, stategraph.END).
		AddEdge(NodePasswordAgent, stategraph.END).
		AddEdge(NodeUnlockAgent, stategraph.END).
		SetEntry(NodeSupervisor)

	return graph.Compile()
}
