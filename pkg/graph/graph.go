// Package graph defines the read-only graph surface consumed by the pregel
// engine, together with an in-memory reference implementation.
//
// Node ids are dense over [0, NodeCount()) for the lifetime of a graph; the
// engine's node value store and vote tracker are indexed by them directly.
package graph

// RelationshipVisitor is invoked once per outgoing relationship. The weight
// is the resolved value of the graph's relationship property for that edge,
// or the graph's default weight when the edge carries none. Returning false
// stops the iteration early.
type RelationshipVisitor func(target int64, weight float64) bool

// Graph is the accessor the engine reads topology from. Implementations must
// be safe for concurrent readers and immutable for the duration of a run.
type Graph interface {
	// NodeCount returns the number of nodes. Ids are dense in [0, NodeCount()).
	NodeCount() int64

	// Degree returns the number of outgoing relationships of a node.
	Degree(id int64) int64

	// ForEachRelationship iterates the outgoing relationships of a node.
	ForEachRelationship(id int64, fn RelationshipVisitor)

	// HasRelationshipProperty reports whether the named relationship property
	// can be resolved on this graph.
	HasRelationshipProperty(name string) bool
}
