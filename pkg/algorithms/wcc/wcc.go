// Package wcc labels connected components by minimum-id propagation: every
// node starts with its own id and repeatedly adopts the smallest id it hears
// from a neighbor, forwarding the change. At convergence all nodes of a
// component carry the component's smallest node id; an isolated node keeps
// its own.
package wcc

import (
	"github.com/openbsp/openbsp/pkg/pregel"
)

// Computation is the per-node update rule. It is stateless and safe to share.
type Computation struct{}

var _ pregel.Computation = (*Computation)(nil)

func New() *Computation {
	return &Computation{}
}

func (c *Computation) Compute(ctx *pregel.ComputeContext, nodeID int64, messages []float64) error {
	if ctx.IsInitialSuperstep() {
		// In asynchronous mode the inbox can already hold labels from
		// neighbors computed earlier in this superstep; they count toward
		// the starting label instead of being discarded.
		label := float64(nodeID)
		for _, m := range messages {
			if m < label {
				label = m
			}
		}
		ctx.SetNodeValue(nodeID, label)
		ctx.SendMessages(nodeID, label)
		return nil
	}

	current := ctx.NodeValue(nodeID)
	next := current
	for _, m := range messages {
		if m < next {
			next = m
		}
	}

	if next < current {
		ctx.SetNodeValue(nodeID, next)
		ctx.SendMessages(nodeID, next)
	} else {
		ctx.VoteToHalt(nodeID)
	}

	return nil
}
