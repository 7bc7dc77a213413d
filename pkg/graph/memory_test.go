package graph

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMemoryGraphDegreeAndIteration(t *testing.T) {
	b := NewBuilder(4)
	require.NoError(t, b.Add(0, 1))
	require.NoError(t, b.Add(0, 2))
	require.NoError(t, b.Add(1, 2))

	g, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, int64(4), g.NodeCount())
	require.Equal(t, int64(3), g.RelationshipCount())
	require.Equal(t, int64(2), g.Degree(0))
	require.Equal(t, int64(1), g.Degree(1))
	require.Equal(t, int64(0), g.Degree(3))

	var targets []int64
	g.ForEachRelationship(0, func(target int64, weight float64) bool {
		targets = append(targets, target)
		require.Equal(t, 1.0, weight)
		return true
	})
	require.ElementsMatch(t, []int64{1, 2}, targets)
}

func TestMemoryGraphVisitorEarlyExit(t *testing.T) {
	b := NewBuilder(3)
	require.NoError(t, b.Add(0, 1))
	require.NoError(t, b.Add(0, 2))

	g, err := b.Build()
	require.NoError(t, err)

	var seen int
	g.ForEachRelationship(0, func(int64, float64) bool {
		seen++
		return false
	})
	require.Equal(t, 1, seen)
}

func TestMemoryGraphRelationshipProperty(t *testing.T) {
	b := NewBuilder(2).WithRelationshipProperty("cost")
	require.NoError(t, b.AddWeighted(0, 1, 2.5))

	g, err := b.Build()
	require.NoError(t, err)

	require.True(t, g.HasRelationshipProperty("cost"))
	require.False(t, g.HasRelationshipProperty("distance"))
	require.False(t, g.HasRelationshipProperty(""))

	g.ForEachRelationship(0, func(target int64, weight float64) bool {
		require.Equal(t, int64(1), target)
		require.Equal(t, 2.5, weight)
		return true
	})
}

func TestMemoryGraphRejectsOutOfRangeIds(t *testing.T) {
	b := NewBuilder(2)
	require.Error(t, b.Add(-1, 0))
	require.Error(t, b.Add(0, 2))
	require.Error(t, b.Add(5, 0))
}

// The parallel fill pass must produce the same per-node adjacency multisets
// as a direct scan of the edge stream, regardless of slot ordering.
func TestMemoryGraphParallelBuild(t *testing.T) {
	const (
		nodes = 500
		edges = parallelBuildThreshold + 1000
	)

	rng := rand.New(rand.NewSource(42))
	b := NewBuilder(nodes).WithRelationshipProperty("w")

	want := make([]map[int64]int, nodes)
	for i := range want {
		want[i] = make(map[int64]int)
	}
	for i := 0; i < edges; i++ {
		src, dst := rng.Int63n(nodes), rng.Int63n(nodes)
		require.NoError(t, b.AddWeighted(src, dst, float64(dst)))
		want[src][dst]++
	}

	g, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, int64(edges), g.RelationshipCount())

	for id := int64(0); id < nodes; id++ {
		got := make(map[int64]int)
		g.ForEachRelationship(id, func(target int64, weight float64) bool {
			got[target]++
			require.Equal(t, float64(target), weight)
			return true
		})
		if diff := cmp.Diff(want[id], got); diff != "" {
			t.Fatalf("adjacency mismatch for node %d (-want +got):\n%s", id, diff)
		}
	}
}
