package dag

import (
	"errors"
	"sync"
)

var (
	// ErrNodeNotFound is returned when an edge or query names an unknown node.
	ErrNodeNotFound = errors.New("dag: node not found")
	// ErrSelfEdge is returned when an edge would connect a node to itself.
	ErrSelfEdge = errors.New("dag: self-referential edge not allowed")
	// ErrCycle is returned when the graph is not acyclic.
	ErrCycle = errors.New("dag: cycle detected")
)

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the maps and the order slice during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order lists node IDs in insertion order.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// index is the insertion position, used for deterministic tie-breaking.
	index int
	// deps lists the IDs this node depends on (predecessors), in edge order.
	deps []string
	// dependents lists the IDs that depend on this node (successors), in edge order.
	dependents []string
	// depSet mirrors deps for duplicate detection.
	depSet map[string]struct{}
}
