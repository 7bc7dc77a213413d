package wcc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openbsp/openbsp/pkg/algorithms/wcc"
	"github.com/openbsp/openbsp/pkg/executor"
	"github.com/openbsp/openbsp/pkg/graph"
	"github.com/openbsp/openbsp/pkg/pregel"
)

func runWCC(t *testing.T, nodeCount int64, edges [][2]int64) []float64 {
	t.Helper()

	b := graph.NewBuilder(nodeCount)
	for _, e := range edges {
		require.NoError(t, b.Add(e[0], e[1]))
		require.NoError(t, b.Add(e[1], e[0]))
	}
	g, err := b.Build()
	require.NoError(t, err)

	pool := executor.NewFixedPool(4)
	t.Cleanup(pool.Close)

	p, err := pregel.New(g, pregel.DefaultConfig(), wcc.New(), 0, pool)
	require.NoError(t, err)

	values, err := p.Run(context.Background(), 100)
	require.NoError(t, err)
	return values
}

func TestTwoComponents(t *testing.T) {
	values := runWCC(t, 6, [][2]int64{{0, 1}, {1, 2}, {3, 4}, {4, 5}})
	require.Equal(t, []float64{0, 0, 0, 3, 3, 3}, values)
}

func TestIsolatedNodesKeepOwnId(t *testing.T) {
	values := runWCC(t, 3, nil)
	require.Equal(t, []float64{0, 1, 2}, values)
}

func TestAsynchronousModeCountsInitialInbox(t *testing.T) {
	// With a single worker, node 0's label reaches node 1 within the same
	// superstep; node 1's first compute must fold it in, not discard it.
	b := graph.NewBuilder(2)
	require.NoError(t, b.Add(0, 1))
	require.NoError(t, b.Add(1, 0))
	g, err := b.Build()
	require.NoError(t, err)

	pool := executor.NewFixedPool(1)
	t.Cleanup(pool.Close)

	config := pregel.DefaultConfig()
	config.IsAsynchronous = true
	config.Concurrency = 1

	p, err := pregel.New(g, config, wcc.New(), 0, pool)
	require.NoError(t, err)

	values, err := p.Run(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, values)
}

func TestChainPropagatesMinimum(t *testing.T) {
	// A long chain needs one superstep per hop; the label still reaches
	// the far end well before the iteration cap.
	var edges [][2]int64
	for i := int64(0); i < 49; i++ {
		edges = append(edges, [2]int64{i, i + 1})
	}
	values := runWCC(t, 50, edges)
	for i, v := range values {
		require.Zerof(t, v, "node %d", i)
	}
}
