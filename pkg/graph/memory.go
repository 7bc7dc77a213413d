package graph

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/openbsp/openbsp/internal/concurrency"
)

// parallelBuildThreshold is the edge count above which Build fills the
// adjacency arrays with a worker pool instead of a single pass.
const parallelBuildThreshold = 1 << 14

const defaultRelationshipWeight = 1.0

// MemoryGraph is an immutable in-memory adjacency structure in compressed
// sparse row form. It is the reference Graph implementation used by tests and
// the CLI; the engine itself only depends on the Graph interface.
type MemoryGraph struct {
	offsets  []int64
	targets  []int64
	weights  []float64 // nil when the graph carries no relationship property
	property string
}

var _ Graph = (*MemoryGraph)(nil)

func (g *MemoryGraph) NodeCount() int64 {
	return int64(len(g.offsets) - 1)
}

func (g *MemoryGraph) Degree(id int64) int64 {
	return g.offsets[id+1] - g.offsets[id]
}

func (g *MemoryGraph) ForEachRelationship(id int64, fn RelationshipVisitor) {
	for i := g.offsets[id]; i < g.offsets[id+1]; i++ {
		weight := defaultRelationshipWeight
		if g.weights != nil {
			weight = g.weights[i]
		}
		if !fn(g.targets[i], weight) {
			return
		}
	}
}

func (g *MemoryGraph) HasRelationshipProperty(name string) bool {
	return name != "" && name == g.property
}

// RelationshipCount returns the number of stored (directed) relationships.
func (g *MemoryGraph) RelationshipCount() int64 {
	return int64(len(g.targets))
}

// Builder accumulates relationships and assembles a MemoryGraph. It is not
// safe for concurrent use; Build itself parallelizes internally.
type Builder struct {
	nodeCount int64
	property  string

	sources []int64
	targets []int64
	weights []float64
}

// NewBuilder returns a builder for a graph with the given dense node count.
func NewBuilder(nodeCount int64) *Builder {
	return &Builder{nodeCount: nodeCount}
}

// WithRelationshipProperty declares the name under which per-relationship
// weights are resolvable. Relationships added without an explicit weight
// default to 1.
func (b *Builder) WithRelationshipProperty(name string) *Builder {
	b.property = name
	return b
}

// Add records a directed relationship with the default weight.
func (b *Builder) Add(source, target int64) error {
	return b.AddWeighted(source, target, defaultRelationshipWeight)
}

// AddWeighted records a directed relationship carrying a weight. The weight
// is retained only when a relationship property was declared on the builder.
func (b *Builder) AddWeighted(source, target int64, weight float64) error {
	if source < 0 || source >= b.nodeCount {
		return fmt.Errorf("source id %d out of range [0, %d)", source, b.nodeCount)
	}
	if target < 0 || target >= b.nodeCount {
		return fmt.Errorf("target id %d out of range [0, %d)", target, b.nodeCount)
	}

	b.sources = append(b.sources, source)
	b.targets = append(b.targets, target)
	if b.property != "" {
		b.weights = append(b.weights, weight)
	}

	return nil
}

// Build assembles the compressed adjacency arrays. The builder can be reused
// afterwards, but relationships already added are retained.
func (b *Builder) Build() (*MemoryGraph, error) {
	if b.nodeCount < 0 {
		return nil, fmt.Errorf("node count %d must not be negative", b.nodeCount)
	}

	g := &MemoryGraph{
		offsets:  make([]int64, b.nodeCount+1),
		targets:  make([]int64, len(b.targets)),
		property: b.property,
	}
	if b.property != "" {
		g.weights = make([]float64, len(b.targets))
	}

	degrees := make([]int64, b.nodeCount)
	for _, src := range b.sources {
		degrees[src]++
	}
	for i, d := range degrees {
		g.offsets[i+1] = g.offsets[i] + d
	}

	if len(b.sources) < parallelBuildThreshold {
		b.fill(g, 0, len(b.sources), degrees)
		return g, nil
	}

	// The insertion cursor per source node is shared across workers, so the
	// fill pass scatters edges with one atomic add per edge.
	cursors := make([]int64, b.nodeCount)
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(b.sources) + workers - 1) / workers

	pool := concurrency.NewPool(context.Background(), workers)
	for start := 0; start < len(b.sources); start += chunk {
		end := min(start+chunk, len(b.sources))
		pool.Go(func(ctx context.Context) error {
			for i := start; i < end; i++ {
				src := b.sources[i]
				slot := g.offsets[src] + atomic.AddInt64(&cursors[src], 1) - 1
				g.targets[slot] = b.targets[i]
				if g.weights != nil {
					g.weights[slot] = b.weights[i]
				}
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	return g, nil
}

// fill is the single-threaded scatter used for small graphs. It reuses the
// degrees slice as insertion cursors.
func (b *Builder) fill(g *MemoryGraph, start, end int, cursors []int64) {
	for i := range cursors {
		cursors[i] = 0
	}
	for i := start; i < end; i++ {
		src := b.sources[i]
		slot := g.offsets[src] + cursors[src]
		cursors[src]++
		g.targets[slot] = b.targets[i]
		if g.weights != nil {
			g.weights[slot] = b.weights[i]
		}
	}
}
