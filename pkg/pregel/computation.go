package pregel

// Computation is the user-supplied per-node update rule. Compute is invoked
// exactly once per scheduled node per superstep with the messages drained
// from the node's inbox. Implementations typically call SetNodeValue,
// SendMessages and VoteToHalt on the context. A returned error aborts the
// whole run and leaves the value store partially updated; the engine never
// retries.
//
// Compute must be safe for concurrent invocation on distinct node ids.
type Computation interface {
	Compute(ctx *ComputeContext, nodeID int64, messages []float64) error
}

// RelationshipWeighter is optionally implemented by a Computation to
// transform outgoing message values with the relationship weight. When a
// computation does not implement it, values are sent unchanged.
type RelationshipWeighter interface {
	ApplyRelationshipWeight(value, weight float64) float64
}

// AllocationTracker receives the engine's working-memory allocation sizes.
// The default NoopTracker discards them.
type AllocationTracker interface {
	Record(bytes int64)
}

// NoopTracker is the AllocationTracker used when none is supplied.
type NoopTracker struct{}

var _ AllocationTracker = (*NoopTracker)(nil)

func (NoopTracker) Record(int64) {}
