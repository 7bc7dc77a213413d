package pregel

import (
	"fmt"

	"github.com/openbsp/openbsp/pkg/graph"
)

const (
	// DefaultInitialNodeValue seeds every node absent custom seeding.
	DefaultInitialNodeValue = -1.0

	// DefaultConcurrency is the worker pool size and batch count used when
	// the caller does not set one.
	DefaultConcurrency = 4
)

// Config carries the immutable parameters of one engine run. It is shared
// read-only across all workers; construct it once and treat it as a value.
type Config struct {
	// InitialNodeValue is the seed value for all nodes when no per-node
	// initial values are supplied.
	InitialNodeValue float64

	// IsAsynchronous disables message double-buffering: sends become visible
	// within the same superstep, trading determinism for convergence speed.
	IsAsynchronous bool

	// RelationshipWeightProperty names the relationship property consulted
	// for the weight transform. Empty means the graph's weights are not
	// resolved through a named property.
	RelationshipWeightProperty string

	// Concurrency is the worker pool size and the number of node batches per
	// superstep. Must be at least 1.
	Concurrency int
}

// DefaultConfig returns the configuration used when callers override nothing.
func DefaultConfig() Config {
	return Config{
		InitialNodeValue: DefaultInitialNodeValue,
		Concurrency:      DefaultConcurrency,
	}
}

func (c Config) validate(g graph.Graph) error {
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.Concurrency)
	}
	if c.RelationshipWeightProperty != "" && !g.HasRelationshipProperty(c.RelationshipWeightProperty) {
		return fmt.Errorf("%w: %q", ErrUnknownWeightProperty, c.RelationshipWeightProperty)
	}
	return nil
}
