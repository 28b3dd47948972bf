package stategraph

// END is the terminal sentinel.
// Use it as an edge target or router result to indicate the traversal
// should stop. It is rejected as a node ID, so it can never collide with
// a real node.
const END = "__end__"

// NodeFunc is the signature for all node functions.
// Nodes receive the execution context and current state, and return the
// updated state (or the same state) and any error.
//
// The state parameter is passed by value. Nodes should modify and return
// a new state value, not rely on pointer mutation.
//
// Example:
//
//	func greet(ctx stategraph.Context, s Chat) (Chat, error) {
//	    s.Reply = "hello " + s.Name
//	    return s, nil
//	}
type NodeFunc[S any] func(ctx Context, state S) (S, error)

// RouterFunc determines the label for a conditional edge based on state.
// With AddConditionalEdge the label is used directly as the next node ID
// (or END). With AddConditionalEdges the label is resolved through the
// edge's destination map first.
//
// Routers are evaluated on the state returned by the node that just ran,
// never on stale pre-node state. A router should not mutate the state it
// receives.
type RouterFunc[S any] func(ctx Context, state S) string

// NextHinter is implemented by state types that carry a routing hint
// (a "run this next" field written by nodes).
//
// When the current node sits on a conditional edge and its returned state
// implements NextHinter with an empty hint, Run fails immediately with a
// RouterError wrapping ErrMissingNextHint. This catches nodes that forgot
// to set their hint at the node boundary instead of surfacing a confusing
// router lookup failure later.
type NextHinter interface {
	// NextHint returns the proposed next node ID, or "" if unset.
	NextHint() string
}
