package dag

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is the work attached to a node.
type Task func(ctx context.Context) error

// NodeError wraps the error returned by a node's task.
type NodeError struct {
	Node string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Node, e.Err)
}

// Unwrap returns the task error.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// Run executes the graph level by level. All tasks of a level run
// concurrently; the next level starts only after every task of the current
// one has returned. The first failure cancels the context passed to the
// rest of its level and is returned as a *NodeError; later levels do not run.
func Run(ctx context.Context, g *Graph, tasks map[string]Task) error {
	levels, err := g.Levels()
	if err != nil {
		return err
	}

	for _, node := range g.nodes {
		if tasks[node] == nil {
			return fmt.Errorf("no task for node %q", node)
		}
	}

	for _, level := range levels {
		if err := ctx.Err(); err != nil {
			return err
		}

		eg, egCtx := errgroup.WithContext(ctx)
		for _, node := range level {
			task := tasks[node]
			eg.Go(func() error {
				if err := task(egCtx); err != nil {
					return &NodeError{Node: node, Err: err}
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}

	return nil
}
