package stategraph

import (
	"fmt"
	"strings"
	"sync"
)

// conditionalEdge pairs a router with an optional destination map.
// A nil targets map means the router's labels are node IDs themselves.
type conditionalEdge[S any] struct {
	router  RouterFunc[S]
	targets map[string]string
}

// Graph is a mutable builder for creating execution graphs.
// Use NewGraph to create a new graph, then chain AddNode, AddEdge,
// and SetEntry calls to define the pipeline.
//
// Graph is NOT thread-safe during building. Use a single goroutine
// to construct the graph, then call Compile() to create an immutable
// CompiledGraph that can be safely shared.
//
// Example:
//
//	graph := stategraph.NewGraph[MyState]().
//	    AddNode("classify", classifyNode).
//	    AddNode("handle", handleNode).
//	    AddEdge("classify", "handle").
//	    AddEdge("handle", stategraph.END).
//	    SetEntry("classify")
//
//	compiled, err := graph.Compile()
type Graph[S any] struct {
	mu               sync.RWMutex
	nodes            map[string]NodeFunc[S]
	edges            map[string][]string
	conditionalEdges map[string]conditionalEdge[S]
	entryPoint       string
}

// NewGraph creates a new graph builder for state type S.
// The type parameter S defines the state that flows through the graph.
func NewGraph[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:            make(map[string]NodeFunc[S]),
		edges:            make(map[string][]string),
		conditionalEdges: make(map[string]conditionalEdge[S]),
	}
}

// AddNode adds a named node to the graph.
// Returns the graph for method chaining.
//
// Panics if:
//   - id is empty
//   - id is the reserved word "END" or "__end__" (case-insensitive)
//   - id contains whitespace (space, tab, newline)
//   - fn is nil
//   - id already exists in the graph
//
// Panicking keeps these programmer errors synchronous at the call site;
// referential integrity across nodes and edges is checked at Compile().
func (g *Graph[S]) AddNode(id string, fn NodeFunc[S]) *Graph[S] {
	if id == "" {
		panic("stategraph: node ID cannot be empty")
	}

	// Check reserved words (case-insensitive)
	idLower := strings.ToLower(id)
	if idLower == "end" || idLower == "__end__" {
		panic("stategraph: node ID cannot be reserved word 'END'")
	}

	if strings.ContainsAny(id, " \t\n\r") {
		panic("stategraph: node ID cannot contain whitespace")
	}

	if fn == nil {
		panic("stategraph: node function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		panic(fmt.Sprintf("stategraph: duplicate node ID: %s", id))
	}

	g.nodes[id] = fn
	return g
}

// AddEdge adds an unconditional edge from one node to another.
// The target can be a node ID or stategraph.END.
// Returns the graph for method chaining.
//
// A node may have at most one fixed edge; branching requires a conditional
// edge. Edge validation happens at Compile() time, not here, which allows
// edges to be added in any order.
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.edges[from] = append(g.edges[from], to)
	return g
}

// AddConditionalEdge adds a conditional edge where a RouterFunc determines
// the next node at runtime based on state. The router's return value is
// used directly as the next node ID (or END).
//
// A node can have either simple edges or a conditional edge, not both.
// If both are present, the conditional edge takes precedence.
func (g *Graph[S]) AddConditionalEdge(from string, router RouterFunc[S]) *Graph[S] {
	if router == nil {
		panic("stategraph: router function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.conditionalEdges[from] = conditionalEdge[S]{router: router}
	return g
}

// AddConditionalEdges adds a conditional edge whose router returns a label
// that is resolved through targets to find the actual next node. Every
// label the router may emit must appear as a key in targets; the mapped
// values are node IDs or stategraph.END.
//
// At run time a label absent from targets fails with a RouterError wrapping
// ErrUnknownLabel. Mapped destinations are validated at Compile().
//
// Example:
//
//	graph.AddConditionalEdges("supervisor", routeNext, map[string]string{
//	    "role_agent":     "role_agent",
//	    "password_agent": "password_agent",
//	    "end":            stategraph.END,
//	})
func (g *Graph[S]) AddConditionalEdges(from string, router RouterFunc[S], targets map[string]string) *Graph[S] {
	if router == nil {
		panic("stategraph: router function cannot be nil")
	}
	if len(targets) == 0 {
		panic("stategraph: destination map cannot be empty")
	}

	// Copy so later caller mutation cannot change routing.
	copied := make(map[string]string, len(targets))
	for label, to := range targets {
		copied[label] = to
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.conditionalEdges[from] = conditionalEdge[S]{router: router, targets: copied}
	return g
}

// SetEntry designates the entry point node.
// This must be called before Compile().
// Returns the graph for method chaining.
//
// Entry point validation happens at Compile() time.
func (g *Graph[S]) SetEntry(id string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entryPoint = id
	return g
}
