// Package sssp computes single-source shortest path distances. The source
// starts at distance 0 and every relaxation is forwarded to the neighbors
// with the relationship weight added in transit, so a node's inbox holds
// candidate distances through each of its incoming edges. Unreachable nodes
// keep the Unreachable value the run must be configured with.
package sssp

import (
	"errors"
	"math"

	"github.com/openbsp/openbsp/pkg/pregel"
)

// Unreachable is the initial node value every run must be configured with,
// so that nodes the source cannot reach are recognizable in the result.
var Unreachable = math.Inf(1)

// ErrInitialValue is returned by Compute when the run was configured with a
// finite initial node value. A node seeded below its true distance can never
// be relaxed, so the result would be silently wrong.
var ErrInitialValue = errors.New("sssp: initial node value must be Unreachable (+Inf)")

// Computation relaxes distances from a single source node.
type Computation struct {
	Source int64
}

var (
	_ pregel.Computation          = (*Computation)(nil)
	_ pregel.RelationshipWeighter = (*Computation)(nil)
)

// New returns the computation for the given source node. The engine must be
// configured with InitialNodeValue set to Unreachable; Compute rejects runs
// configured otherwise with ErrInitialValue.
func New(source int64) *Computation {
	return &Computation{Source: source}
}

func (c *Computation) Compute(ctx *pregel.ComputeContext, nodeID int64, messages []float64) error {
	if ctx.IsInitialSuperstep() {
		if ctx.InitialNodeValue() != Unreachable {
			return ErrInitialValue
		}
		if nodeID == c.Source {
			ctx.SetNodeValue(nodeID, 0)
			ctx.SendMessages(nodeID, 0)
			ctx.VoteToHalt(nodeID)
			return nil
		}
		// Non-source nodes fall through: in asynchronous mode the inbox
		// can already hold candidate distances from this superstep.
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
	}
	ctx.VoteToHalt(nodeID)

	return nil
}

// ApplyRelationshipWeight adds the edge weight to the distance in transit.
func (c *Computation) ApplyRelationshipWeight(value, weight float64) float64 {
	return value + weight
}
