/*
Package stategraph provides graph-based orchestration for stateful agent
pipelines.

# Overview

stategraph is a Go library for building and executing directed graphs
where nodes transform a shared state record and edges define flow. It is
designed for multi-step agent pipelines where a supervisor-style node
routes work to specialist nodes based on the evolving state.

The library is inspired by LangGraph but built for Go with:
  - Type-safe generics for state management
  - Compile-time validation of graph structure
  - Explicit destination maps for conditional routing
  - OpenTelemetry integration for observability

# Basic Usage

Create a graph with nodes and edges, then compile and run:

	type State struct {
	    Input  string
	    Output string
	}

	func process(ctx stategraph.Context, s State) (State, error) {
	    s.Output = "Processed: " + s.Input
	    return s, nil
	}

	func main() {
	    graph := stategraph.NewGraph[State]().
	        AddNode("process", process).
	        AddEdge("process", stategraph.END).
	        SetEntry("process")

	    compiled, err := graph.Compile()
	    if err != nil {
	        log.Fatal(err)
	    }

	    ctx := stategraph.NewContext(context.Background())
	    result, err := compiled.Run(ctx, State{Input: "hello"})
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(result.Output) // "Processed: hello"
	}

# Conditional Routing

Use a conditional edge with a destination map for decision points. The
router returns a label, and the map resolves the label to the next node:

	graph.AddConditionalEdges("supervisor", routeNext, map[string]string{
	    "role_agent":     "role_agent",
	    "password_agent": "password_agent",
	    "end":            stategraph.END,
	})

A label absent from the map fails the run with a RouterError that carries
the offending label. AddConditionalEdge (no map) treats the router's
return value as the node ID itself.

# Routing Hints

State types may implement NextHinter to expose the node-written
"next step" field. When a node on a conditional edge returns a state with
an empty hint, Run fails immediately with ErrMissingNextHint instead of
letting the router read a stale value:

	func (s State) NextHint() string { return s.NextStep }

# Loops and the Step Budget

Conditional edges that return to earlier nodes create loops. Every run is
bounded by a step budget (default 25, one node invocation per step);
exceeding it returns a MaxStepsError carrying the last state and the node
that would have run next. Configure with WithMaxSteps.

# Session Memory

Pipelines that span multiple independent runs keep durable facts in a
per-session memory map threaded through the state. The session subpackage
stores memory snapshots between runs (in memory or SQLite); the caller
seeds each initial state from the store and commits the final state's
memory back. Nodes must treat the memory map as merge-only: read it, set
keys, never replace it wholesale.

# Error Handling

Errors include context about where execution failed:

	result, err := compiled.Run(ctx, state)
	var nodeErr *stategraph.NodeError
	if errors.As(err, &nodeErr) {
	    log.Printf("Node %s failed: %v", nodeErr.NodeID, nodeErr.Err)
	}

Panics in nodes are recovered and converted to PanicError with a stack
trace. Compile reports every validation failure at once via errors.Join.

# Thread Safety

  - Graph[S] is NOT safe for concurrent use during construction
  - CompiledGraph[S] IS safe for concurrent use (immutable)
  - Context IS safe for concurrent use
  - session.Store implementations are safe for concurrent use

Each Run call owns its state value exclusively for the duration of the
call; concurrent runs of the same compiled graph must use distinct states.

# Subpackages

  - session: durable per-session memory snapshots (memory, SQLite)
  - observability: logging, metrics, and tracing helpers
  - config: map-backed configuration with YAML/JSON loading
  - registry: generic thread-safe registry
*/
package stategraph
