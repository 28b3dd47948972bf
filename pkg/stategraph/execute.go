package stategraph

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/randalmurphal/stategraph/pkg/stategraph/observability"
	"go.opentelemetry.io/otel/trace"
)

// Run executes the graph with the given initial state.
// Returns the final state and any error encountered.
//
// On success, returns the state after the last node executed before END.
// On error, returns the state at the point of failure (useful for debugging).
//
// Execution flow:
//  1. Start at the entry point node
//  2. Check for cancellation
//  3. Execute the current node
//  4. Determine the next node (via simple or conditional edge)
//  5. Repeat until END is reached, the step budget runs out, or an error
//     occurs
//
// The loop is strictly sequential: exactly one node invocation per step,
// and routers always see the state the preceding node returned.
//
// Example:
//
//	ctx := stategraph.NewContext(context.Background())
//	result, err := compiled.Run(ctx, initialState)
//	if err != nil {
//	    // result contains state at point of failure
//	}
func (cg *CompiledGraph[S]) Run(ctx Context, state S, opts ...RunOption) (result S, runErr error) {
	if ctx == nil {
		return state, ErrNilContext
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	runID := cfg.runID
	if runID == "" {
		runID = ctx.RunID()
	}

	startTime := time.Now()

	observability.LogRunStart(cfg.logger, runID)

	var execCtx context.Context = ctx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		execCtx, runSpan = cfg.spans.StartRunSpan(ctx, "stategraph", runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var stepCount int
	result, stepCount, runErr = cg.step(execCtx, ctx, state, &cfg)

	duration := time.Since(startTime)
	durationMs := float64(duration.Milliseconds())

	cfg.metrics.RecordGraphRun(ctx, runErr == nil, duration)

	if runErr != nil {
		lastNode := ""
		switch e := runErr.(type) {
		case *NodeError:
			lastNode = e.NodeID
		case *PanicError:
			lastNode = e.NodeID
		case *RouterError:
			lastNode = e.FromNode
		case *MaxStepsError:
			lastNode = e.LastNodeID
		case *CancellationError:
			lastNode = e.NodeID
		}
		observability.LogRunError(cfg.logger, runID, runErr, durationMs, lastNode)
	} else {
		observability.LogRunComplete(cfg.logger, runID, durationMs, stepCount)
	}

	return result, runErr
}

// step drives the node-by-node traversal.
// tracingCtx carries span context; sgCtx is the stategraph Context.
// Returns the final state, the number of nodes executed, and any error.
func (cg *CompiledGraph[S]) step(tracingCtx context.Context, sgCtx Context, state S, cfg *runConfig) (S, int, error) {
	current := cg.entryPoint
	steps := 0

	for current != END {
		if steps >= cfg.maxSteps {
			return state, steps, &MaxStepsError{
				Max:        cfg.maxSteps,
				LastNodeID: current,
				State:      state,
			}
		}

		// Check for cancellation before executing node
		select {
		case <-sgCtx.Done():
			return state, steps, &CancellationError{
				NodeID: current,
				State:  state,
				Cause:  sgCtx.Err(),
			}
		default:
		}

		observability.LogNodeStart(cfg.logger, current)

		nodeTracingCtx := tracingCtx
		var nodeSpan trace.Span
		if cfg.tracingEnabled {
			nodeTracingCtx, nodeSpan = cfg.spans.StartNodeSpan(tracingCtx, current)
		}

		nodeStart := time.Now()

		var nodeErr error
		state, nodeErr = cg.executeNode(sgCtx, current, state)

		nodeDuration := time.Since(nodeStart)
		nodeDurationMs := float64(nodeDuration.Milliseconds())

		cfg.metrics.RecordNodeExecution(nodeTracingCtx, current, nodeDuration, nodeErr)

		if cfg.tracingEnabled {
			cfg.spans.EndSpanWithError(nodeSpan, nodeErr)
		}

		if nodeErr != nil {
			observability.LogNodeError(cfg.logger, current, nodeErr)
			return state, steps, nodeErr
		}
		observability.LogNodeComplete(cfg.logger, current, nodeDurationMs)
		steps++

		next, err := cg.nextNode(sgCtx, state, current)
		if err != nil {
			return state, steps, err
		}

		current = next
	}

	return state, steps, nil
}

// executeNode executes a single node with panic recovery.
// Returns the new state and any error (including wrapped panics).
func (cg *CompiledGraph[S]) executeNode(ctx Context, nodeID string, state S) (result S, err error) {
	fn, exists := cg.getNode(nodeID)
	if !exists {
		// Defensive: a graph that passed Compile() always has the node, but
		// Run must not assume this graph was validated by this builder.
		return state, &NodeError{
			NodeID: nodeID,
			Op:     "lookup",
			Err:    fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID),
		}
	}

	// Create node-specific context with enriched logger
	nodeCtx := ctx
	if ec, ok := ctx.(*executionContext); ok {
		nodeCtx = ec.withNodeID(nodeID)
	}

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			result = state
			err = &PanicError{
				NodeID: nodeID,
				Value:  r,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	result, err = fn(nodeCtx, state)
	if err != nil {
		return result, &NodeError{
			NodeID: nodeID,
			Op:     "execute",
			Err:    err,
		}
	}

	return result, nil
}

// nextNode determines the next node to execute.
// Checks conditional edges first, then simple edges.
func (cg *CompiledGraph[S]) nextNode(ctx Context, state S, current string) (string, error) {
	if ce, exists := cg.getConditionalEdge(current); exists {
		// A node feeding a conditional edge must have set its routing hint
		// before returning; fail here rather than at router lookup.
		if hinter, ok := any(state).(NextHinter); ok && hinter.NextHint() == "" {
			return "", &RouterError{
				FromNode: current,
				Err:      ErrMissingNextHint,
			}
		}

		// Create node-specific context for the router
		routerCtx := ctx
		if ec, ok := ctx.(*executionContext); ok {
			routerCtx = ec.withNodeID(current)
		}

		label := ce.router(routerCtx, state)

		if label == "" {
			return "", &RouterError{
				FromNode: current,
				Returned: label,
				Err:      ErrInvalidRouterResult,
			}
		}

		next := label
		if ce.targets != nil {
			mapped, ok := ce.targets[label]
			if !ok {
				return "", &RouterError{
					FromNode: current,
					Returned: label,
					Err:      ErrUnknownLabel,
				}
			}
			next = mapped
		}

		if next != END {
			if _, exists := cg.getNode(next); !exists {
				return "", &RouterError{
					FromNode: current,
					Returned: label,
					Err:      ErrRouterTargetNotFound,
				}
			}
		}

		return next, nil
	}

	edges := cg.getEdges(current)
	if len(edges) == 0 {
		// No outgoing edges - this shouldn't happen if compilation was successful
		return "", &NodeError{
			NodeID: current,
			Op:     "routing",
			Err:    fmt.Errorf("no outgoing edge from node %s", current),
		}
	}

	// Compile() guarantees at most one fixed edge per node.
	return edges[0], nil
}
