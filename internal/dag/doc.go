// Package dag provides the task graph used by the scheduler: a directed graph
// stored as an arena of string-keyed nodes with ordered predecessor and
// successor lists.
//
// Nodes never point at each other; edges are recorded as id lists. Insertion
// order is remembered so that every traversal (node listing, cycle detection,
// topological order) is deterministic for a given build.
package dag
