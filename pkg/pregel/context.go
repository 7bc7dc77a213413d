package pregel

// ComputeContext is the facade through which a computation reads and writes
// engine state. One context exists per superstep and is shared by every
// worker; all methods take the node id they operate on and are safe for
// concurrent use under the contracts documented below.
type ComputeContext struct {
	p         *Pregel
	superstep int
}

// Superstep returns the current superstep index, starting at 0.
func (c *ComputeContext) Superstep() int {
	return c.superstep
}

// IsInitialSuperstep reports whether this is superstep 0.
func (c *ComputeContext) IsInitialSuperstep() bool {
	return c.superstep == 0
}

// InitialNodeValue returns the configured seed value, independent of the
// node's current state.
func (c *ComputeContext) InitialNodeValue() float64 {
	return c.p.config.InitialNodeValue
}

// NodeValue returns the stored value of any node. Reading a node other than
// the one being computed returns, at best, the value as of the previous
// barrier: the engine does not fence same-superstep writes by other workers,
// so such reads must not be relied on for freshness.
func (c *ComputeContext) NodeValue(id int64) float64 {
	return c.p.values[id]
}

// SetNodeValue writes the value store. By contract a computation may only
// set the value of the node it is currently computing.
func (c *ComputeContext) SetNodeValue(id int64, value float64) {
	c.p.values[id] = value
}

// Degree returns the node's outgoing relationship count.
func (c *ComputeContext) Degree(id int64) int64 {
	return c.p.graph.Degree(id)
}

// VoteToHalt marks the node inactive. It is not scheduled again until a
// message is delivered to it.
func (c *ComputeContext) VoteToHalt(id int64) {
	c.p.votes.halt(id)
}

// SendMessages enqueues value to every neighbor of id for the next superstep
// (the current one in asynchronous mode). When the computation implements
// RelationshipWeighter, each outgoing value is first passed through the
// transform with the relationship's weight.
func (c *ComputeContext) SendMessages(id int64, value float64) {
	p := c.p
	p.graph.ForEachRelationship(id, func(target int64, weight float64) bool {
		v := value
		if p.weighter != nil {
			v = p.weighter.ApplyRelationshipWeight(value, weight)
		}
		p.messenger.send(c.superstep, target, v)
		return true
	})
}
