package run

import (
	"github.com/spf13/cobra"

	"github.com/openbsp/openbsp/cmd/util"
)

// bindRunFlags binds the cobra cmd flags to the equivalent config value being
// managed by viper. This bridges the config between cobra flags and viper.
func bindRunFlags(command *cobra.Command) {
	defaultConfig := DefaultConfig()
	flags := command.Flags()

	flags.String("input", defaultConfig.Input, "path of the edge-list file to load ('src dst [weight]' per line)")
	util.MustBindPFlag("input", flags.Lookup("input"))
	util.MustBindEnv("input", "OPENBSP_INPUT")

	flags.String("output", defaultConfig.Output, "path the per-node results are written to ('-' for stdout)")
	util.MustBindPFlag("output", flags.Lookup("output"))
	util.MustBindEnv("output", "OPENBSP_OUTPUT")

	flags.String("algorithm", defaultConfig.Algorithm, "computation to run ('wcc' or 'sssp')")
	util.MustBindPFlag("algorithm", flags.Lookup("algorithm"))
	util.MustBindEnv("algorithm", "OPENBSP_ALGORITHM")

	flags.Int64("source", defaultConfig.Source, "source node id (sssp only)")
	util.MustBindPFlag("source", flags.Lookup("source"))
	util.MustBindEnv("source", "OPENBSP_SOURCE")

	flags.Int("max-iterations", defaultConfig.MaxIterations, "superstep cap for the run")
	util.MustBindPFlag("maxIterations", flags.Lookup("max-iterations"))
	util.MustBindEnv("maxIterations", "OPENBSP_MAX_ITERATIONS")

	flags.Int("batch-size", defaultConfig.BatchSize, "node batch size per worker; 0 derives one batch per worker")
	util.MustBindPFlag("batchSize", flags.Lookup("batch-size"))
	util.MustBindEnv("batchSize", "OPENBSP_BATCH_SIZE")

	flags.Float64("initial-node-value", defaultConfig.InitialNodeValue, "seed value for all nodes (sssp overrides this with +Inf unless set explicitly)")
	util.MustBindPFlag("initialNodeValue", flags.Lookup("initial-node-value"))
	util.MustBindEnv("initialNodeValue", "OPENBSP_INITIAL_NODE_VALUE")

	flags.Bool("async", defaultConfig.Asynchronous, "disable message double-buffering; sends become visible within the same superstep")
	util.MustBindPFlag("asynchronous", flags.Lookup("async"))
	util.MustBindEnv("asynchronous", "OPENBSP_ASYNC")

	flags.String("relationship-weight-property", defaultConfig.RelationshipWeightProperty, "relationship property consulted for the weight transform")
	util.MustBindPFlag("relationshipWeightProperty", flags.Lookup("relationship-weight-property"))
	util.MustBindEnv("relationshipWeightProperty", "OPENBSP_RELATIONSHIP_WEIGHT_PROPERTY")

	flags.Int("concurrency", defaultConfig.Concurrency, "worker pool size and batch count per superstep")
	util.MustBindPFlag("concurrency", flags.Lookup("concurrency"))
	util.MustBindEnv("concurrency", "OPENBSP_CONCURRENCY")

	flags.String("metrics-addr", defaultConfig.MetricsAddr, "host:port to expose prometheus metrics on; empty disables the endpoint")
	util.MustBindPFlag("metricsAddr", flags.Lookup("metrics-addr"))
	util.MustBindEnv("metricsAddr", "OPENBSP_METRICS_ADDR")

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in ('text' or 'json')")
	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindEnv("log.format", "OPENBSP_LOG_FORMAT")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to set ('none', 'debug', 'info', 'warn', 'error')")
	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindEnv("log.level", "OPENBSP_LOG_LEVEL")

	flags.Bool("trace-enabled", defaultConfig.Trace.Enabled, "enable tracing")
	util.MustBindPFlag("trace.enabled", flags.Lookup("trace-enabled"))
	util.MustBindEnv("trace.enabled", "OPENBSP_TRACE_ENABLED")

	flags.String("trace-otlp-endpoint", defaultConfig.Trace.OTLPEndpoint, "the endpoint of the trace collector")
	util.MustBindPFlag("trace.otlpEndpoint", flags.Lookup("trace-otlp-endpoint"))
	util.MustBindEnv("trace.otlpEndpoint", "OPENBSP_TRACE_OTLP_ENDPOINT")

	flags.Float64("trace-sample-ratio", defaultConfig.Trace.SampleRatio, "the fraction of traces to sample")
	util.MustBindPFlag("trace.sampleRatio", flags.Lookup("trace-sample-ratio"))
	util.MustBindEnv("trace.sampleRatio", "OPENBSP_TRACE_SAMPLE_RATIO")
}
