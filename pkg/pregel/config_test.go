package pregel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openbsp/openbsp/pkg/graph"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, -1.0, cfg.InitialNodeValue)
	require.False(t, cfg.IsAsynchronous)
	require.Empty(t, cfg.RelationshipWeightProperty)
	require.Equal(t, 4, cfg.Concurrency)
}

func TestConfigValidate(t *testing.T) {
	unweighted, err := graph.NewBuilder(1).Build()
	require.NoError(t, err)

	weighted, err := graph.NewBuilder(1).WithRelationshipProperty("cost").Build()
	require.NoError(t, err)

	tests := []struct {
		name    string
		config  Config
		graph   graph.Graph
		wantErr error
	}{
		{
			name:   "defaults_are_valid",
			config: DefaultConfig(),
			graph:  unweighted,
		},
		{
			name: "concurrency_zero",
			config: Config{
				Concurrency: 0,
			},
			graph:   unweighted,
			wantErr: ErrInvalidConcurrency,
		},
		{
			name: "concurrency_negative",
			config: Config{
				Concurrency: -3,
			},
			graph:   unweighted,
			wantErr: ErrInvalidConcurrency,
		},
		{
			name: "unresolvable_weight_property",
			config: Config{
				Concurrency:                1,
				RelationshipWeightProperty: "cost",
			},
			graph:   unweighted,
			wantErr: ErrUnknownWeightProperty,
		},
		{
			name: "resolvable_weight_property",
			config: Config{
				Concurrency:                1,
				RelationshipWeightProperty: "cost",
			},
			graph: weighted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.validate(tc.graph)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
