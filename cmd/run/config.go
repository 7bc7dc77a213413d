package run

import (
	"fmt"

	"github.com/openbsp/openbsp/pkg/pregel"
)

const (
	AlgorithmWCC  = "wcc"
	AlgorithmSSSP = "sssp"
)

type LogConfig struct {
	// Format is the log output format ("text" or "json").
	Format string

	// Level is the log level ("none", "debug", "info", "warn", "error").
	Level string
}

type TraceConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRatio  float64
}

// Config holds everything the run command needs: the engine parameters plus
// the surrounding I/O and observability settings.
type Config struct {
	// Input is the path of the edge-list file ("src dst [weight]" per line,
	// node ids dense in [0, n)).
	Input string

	// Output is the path the result is written to; "-" or empty means stdout.
	Output string

	// Algorithm selects the computation ("wcc" or "sssp").
	Algorithm string

	// Source is the source node id for sssp.
	Source int64

	// MaxIterations caps the number of supersteps.
	MaxIterations int

	// BatchSize overrides the per-worker node batch size; 0 derives it from
	// the concurrency.
	BatchSize int

	InitialNodeValue           float64
	Asynchronous               bool
	RelationshipWeightProperty string
	Concurrency                int

	MetricsAddr string

	Log   LogConfig
	Trace TraceConfig
}

// DefaultConfig returns the run command config with the engine defaults
// filled in.
func DefaultConfig() *Config {
	engine := pregel.DefaultConfig()
	return &Config{
		Algorithm:        AlgorithmWCC,
		MaxIterations:    100,
		InitialNodeValue: engine.InitialNodeValue,
		Concurrency:      engine.Concurrency,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Trace: TraceConfig{
			SampleRatio: 0.2,
		},
	}
}

// Verify rejects settings the engine's own validation cannot see, such as a
// missing input path. Engine-level validation still happens in pregel.New.
func (c *Config) Verify() error {
	if c.Input == "" {
		return fmt.Errorf("an input edge list is required (--input)")
	}
	if c.Algorithm != AlgorithmWCC && c.Algorithm != AlgorithmSSSP {
		return fmt.Errorf("unknown algorithm %q: expected %q or %q", c.Algorithm, AlgorithmWCC, AlgorithmSSSP)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations must not be negative, got %d", c.MaxIterations)
	}
	if c.Source < 0 {
		return fmt.Errorf("source node id must not be negative, got %d", c.Source)
	}
	if c.Trace.Enabled && c.Trace.OTLPEndpoint == "" {
		return fmt.Errorf("tracing requires an OTLP endpoint (--trace-otlp-endpoint)")
	}
	return nil
}
