// Package run contains the command that loads a graph and executes one
// computation over it.
package run

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openbsp/openbsp/pkg/algorithms/sssp"
	"github.com/openbsp/openbsp/pkg/algorithms/wcc"
	"github.com/openbsp/openbsp/pkg/executor"
	"github.com/openbsp/openbsp/pkg/graph"
	"github.com/openbsp/openbsp/pkg/logger"
	"github.com/openbsp/openbsp/pkg/pregel"
	"github.com/openbsp/openbsp/pkg/telemetry"
)

// NewRunCommand returns the `openbsp run` command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a computation over an edge-list graph",
		Long:  "Run a computation over an edge-list graph and write the per-node results.",
		Run:   run,
		Args:  cobra.NoArgs,
	}

	bindRunFlags(cmd)

	return cmd
}

// ReadConfig returns the run configuration based on the bound flags,
// environment variables and the optional config.yaml.
func ReadConfig() (*Config, error) {
	config := DefaultConfig()

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

func run(cmd *cobra.Command, _ []string) {
	config, err := ReadConfig()
	if err != nil {
		panic(err)
	}

	// Shortest paths need unreachable nodes to stay at +Inf; only an explicit
	// flag overrides that.
	if config.Algorithm == AlgorithmSSSP && !cmd.Flags().Changed("initial-node-value") {
		config.InitialNodeValue = sssp.Unreachable
	}

	if err := config.Verify(); err != nil {
		panic(err)
	}

	log := logger.MustNewLogger(config.Log.Format, config.Log.Level)

	if config.Trace.Enabled {
		tp := telemetry.MustNewTracerProvider(
			telemetry.WithOTLPEndpoint(config.Trace.OTLPEndpoint),
			telemetry.WithSamplingRatio(config.Trace.SampleRatio),
		)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runEngine(ctx, config, log); err != nil {
		panic(err)
	}
}

func runEngine(ctx context.Context, config *Config, log logger.Logger) error {
	g, err := loadGraph(config.Input, config.RelationshipWeightProperty)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	log.Info("graph loaded",
		zap.String("input", config.Input),
		zap.Int64("node_count", g.NodeCount()),
		zap.Int64("relationship_count", g.RelationshipCount()),
	)

	engineConfig := pregel.Config{
		InitialNodeValue:           config.InitialNodeValue,
		IsAsynchronous:             config.Asynchronous,
		RelationshipWeightProperty: config.RelationshipWeightProperty,
		Concurrency:                config.Concurrency,
	}

	var computation pregel.Computation
	switch config.Algorithm {
	case AlgorithmWCC:
		computation = wcc.New()
	case AlgorithmSSSP:
		computation = sssp.New(config.Source)
	default:
		return fmt.Errorf("unknown algorithm %q", config.Algorithm)
	}

	pool := executor.NewFixedPool(engineConfig.Concurrency)
	defer pool.Close()

	engine, err := pregel.New(g, engineConfig, computation, config.BatchSize, pool, pregel.WithLogger(log))
	if err != nil {
		return err
	}

	var srv *http.Server
	group, ctx := errgroup.WithContext(ctx)

	if config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: config.MetricsAddr, Handler: mux}

		group.Go(func() error {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		log.Info("metrics endpoint started", zap.String("addr", config.MetricsAddr))
	}

	var values []float64
	group.Go(func() error {
		defer func() {
			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}
		}()

		result, err := engine.Run(ctx, config.MaxIterations)
		if err != nil {
			return err
		}
		values = result
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	return writeResults(config.Output, values)
}

// loadGraph reads a whitespace-separated edge list ("src dst [weight]" per
// line, '#' comments allowed). Node ids must be dense: the node count is the
// largest id seen plus one.
func loadGraph(path, weightProperty string) (*graph.MemoryGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type edge struct {
		source, target int64
		weight         float64
	}

	var (
		edges     []edge
		nodeCount int64
	)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected 'src dst [weight]', got %q", line, text)
		}

		source, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad source id: %w", line, err)
		}
		target, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad target id: %w", line, err)
		}
		if source < 0 || target < 0 {
			return nil, fmt.Errorf("line %d: node ids must not be negative", line)
		}

		weight := 1.0
		if len(fields) > 2 {
			weight, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad weight: %w", line, err)
			}
		}

		edges = append(edges, edge{source: source, target: target, weight: weight})
		if source+1 > nodeCount {
			nodeCount = source + 1
		}
		if target+1 > nodeCount {
			nodeCount = target + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	b := graph.NewBuilder(nodeCount)
	if weightProperty != "" {
		b = b.WithRelationshipProperty(weightProperty)
	}
	for _, e := range edges {
		if err := b.AddWeighted(e.source, e.target, e.weight); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

func writeResults(path string, values []float64) error {
	var out io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	for id, value := range values {
		fmt.Fprintf(w, "%d\t%g\n", id, value)
	}

	return w.Flush()
}
