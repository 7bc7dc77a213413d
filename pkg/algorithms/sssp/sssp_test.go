package sssp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openbsp/openbsp/pkg/algorithms/sssp"
	"github.com/openbsp/openbsp/pkg/executor"
	"github.com/openbsp/openbsp/pkg/graph"
	"github.com/openbsp/openbsp/pkg/pregel"
)

type weightedEdge struct {
	source, target int64
	weight         float64
}

func runSSSP(t *testing.T, nodeCount, source int64, edges []weightedEdge) []float64 {
	t.Helper()

	b := graph.NewBuilder(nodeCount).WithRelationshipProperty("cost")
	for _, e := range edges {
		require.NoError(t, b.AddWeighted(e.source, e.target, e.weight))
	}
	g, err := b.Build()
	require.NoError(t, err)

	pool := executor.NewFixedPool(4)
	t.Cleanup(pool.Close)

	config := pregel.DefaultConfig()
	config.InitialNodeValue = sssp.Unreachable
	config.RelationshipWeightProperty = "cost"

	p, err := pregel.New(g, config, sssp.New(source), 0, pool)
	require.NoError(t, err)

	values, err := p.Run(context.Background(), 100)
	require.NoError(t, err)
	return values
}

func TestShortestPathsWeighted(t *testing.T) {
	// 0 →(1) 1 →(2) 2, plus a direct 0 →(5) 2 that loses to the two-hop path.
	values := runSSSP(t, 3, 0, []weightedEdge{
		{0, 1, 1},
		{1, 2, 2},
		{0, 2, 5},
	})
	require.Equal(t, []float64{0, 1, 3}, values)
}

func TestUnreachableNodesKeepInfinity(t *testing.T) {
	values := runSSSP(t, 3, 0, []weightedEdge{{0, 1, 1}})
	require.Equal(t, 0.0, values[0])
	require.Equal(t, 1.0, values[1])
	require.True(t, math.IsInf(values[2], 1))
}

func TestAsynchronousModeRelaxesInitialInbox(t *testing.T) {
	// With a single worker, the source's distance reaches node 1 within
	// superstep 0 and must be relaxed there, not dropped.
	b := graph.NewBuilder(3).WithRelationshipProperty("cost")
	require.NoError(t, b.AddWeighted(0, 1, 1))
	require.NoError(t, b.AddWeighted(1, 2, 1))
	g, err := b.Build()
	require.NoError(t, err)

	pool := executor.NewFixedPool(1)
	t.Cleanup(pool.Close)

	config := pregel.DefaultConfig()
	config.InitialNodeValue = sssp.Unreachable
	config.RelationshipWeightProperty = "cost"
	config.IsAsynchronous = true
	config.Concurrency = 1

	p, err := pregel.New(g, config, sssp.New(0), 0, pool)
	require.NoError(t, err)

	values, err := p.Run(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, values)
}

func TestRejectsFiniteInitialValue(t *testing.T) {
	b := graph.NewBuilder(2).WithRelationshipProperty("cost")
	require.NoError(t, b.AddWeighted(0, 1, 1))
	g, err := b.Build()
	require.NoError(t, err)

	pool := executor.NewFixedPool(2)
	t.Cleanup(pool.Close)

	// The engine default of -1 seeds every node closer than any real path.
	config := pregel.DefaultConfig()
	config.RelationshipWeightProperty = "cost"

	p, err := pregel.New(g, config, sssp.New(0), 0, pool)
	require.NoError(t, err)

	values, err := p.Run(context.Background(), 10)
	require.ErrorIs(t, err, sssp.ErrInitialValue)
	require.Nil(t, values)
}

func TestRelaxationPrefersLaterCheaperPath(t *testing.T) {
	// The cheap route has more hops and arrives in a later superstep.
	values := runSSSP(t, 4, 0, []weightedEdge{
		{0, 3, 10},
		{0, 1, 1},
		{1, 2, 1},
		{2, 3, 1},
	})
	require.Equal(t, []float64{0, 1, 2, 3}, values)
}
