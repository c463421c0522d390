// Package dag orders and runs the build stages. Stages are nodes; an edge
// from A to B means A must finish before B starts. Run executes the graph
// level by level with every stage of a level running concurrently.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle lists the nodes left with unresolved dependencies.
		Cycle []string
	}

	// Graph is a directed graph of named nodes.
	Graph struct {
		// adjacency maps each node to the nodes that depend on it.
		adjacency map[string][]string
		// nodes keeps insertion order so every ordering is deterministic.
		nodes   []string
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to, meaning "from" must run before "to".
// Both nodes are implicitly added if they don't exist.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// inDegrees counts incoming edges per node.
func (g *Graph) inDegrees() map[string]int {
	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}
	return inDegree
}

// cycleError reports the nodes whose in-degree never reached zero.
func (g *Graph) cycleError(inDegree map[string]int) *CycleError {
	var cycleNodes []string
	for _, node := range g.nodes {
		if inDegree[node] > 0 {
			cycleNodes = append(cycleNodes, node)
		}
	}
	return &CycleError{Cycle: cycleNodes}
}

// Levels groups nodes into barriers: level 0 holds nodes without
// dependencies, level n holds nodes whose last dependency is in level n-1.
// Each level lists its nodes in insertion order.
func (g *Graph) Levels() ([][]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := g.inDegrees()

	var current []string
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			current = append(current, node)
		}
	}

	var levels [][]string
	placed := 0
	for len(current) > 0 {
		levels = append(levels, current)
		placed += len(current)

		ready := make(map[string]bool)
		for _, node := range current {
			for _, neighbor := range g.adjacency[node] {
				inDegree[neighbor]--
				if inDegree[neighbor] == 0 {
					ready[neighbor] = true
				}
			}
		}

		var next []string
		for _, node := range g.nodes {
			if ready[node] {
				next = append(next, node)
			}
		}
		current = next
	}

	if placed != len(g.nodes) {
		return nil, g.cycleError(inDegree)
	}

	return levels, nil
}
