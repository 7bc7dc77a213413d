// Package pregel implements a vertex-centric, bulk-synchronous-parallel graph
// computation engine. Callers supply a per-node update rule (Computation) and
// the engine drives it through supersteps: active nodes are partitioned into
// batches, each batch is computed on a fixed worker pool, and a full barrier
// separates one superstep from the next. Messages sent during a superstep are
// double-buffered and delivered at the following one unless asynchronous mode
// is enabled, in which case sends are visible within the same superstep.
//
// A run terminates when every node has voted to halt and no message was sent
// during the completed superstep, or when the iteration cap is reached.
package pregel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/openbsp/openbsp/pkg/executor"
	"github.com/openbsp/openbsp/pkg/graph"
	"github.com/openbsp/openbsp/pkg/logger"
	"github.com/openbsp/openbsp/pkg/telemetry"
)

var tracer = otel.Tracer("pkg/pregel")

// maxNodeCount bounds the supported id range: node ids index dense arrays and
// must stay int32-addressable.
const maxNodeCount = math.MaxInt32

var (
	ErrNilGraph              = errors.New("pregel: graph must not be nil")
	ErrNilComputation        = errors.New("pregel: computation must not be nil")
	ErrNilExecutor           = errors.New("pregel: executor must not be nil")
	ErrInvalidConcurrency    = errors.New("pregel: concurrency must be at least 1")
	ErrUnknownWeightProperty = errors.New("pregel: relationship weight property cannot be resolved on the graph")
	ErrGraphTooLarge         = errors.New("pregel: graphs with more than 2^31-1 nodes are not supported")
	ErrInitialValuesLength   = errors.New("pregel: initial values length must equal the node count")
	ErrNegativeIterations    = errors.New("pregel: maxIterations must not be negative")
)

// Option customizes engine construction.
type Option func(*Pregel)

// WithLogger sets the logger used for run progress. Defaults to a noop logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Pregel) {
		p.log = log
	}
}

// WithInitialValues seeds the value store per node instead of the
// configuration's scalar initial value. The slice is copied at each run start.
func WithInitialValues(values []float64) Option {
	return func(p *Pregel) {
		p.seed = values
	}
}

// WithAllocationTracker registers a hook that receives the sizes of the
// engine's working-memory allocations.
func WithAllocationTracker(tracker AllocationTracker) Option {
	return func(p *Pregel) {
		p.tracker = tracker
	}
}

// Pregel drives one computation over one graph. It owns its value store,
// vote tracker and message buffers for the duration of a run. A Pregel must
// not be used by multiple goroutines at once, though a single instance may
// be re-run sequentially.
type Pregel struct {
	graph       graph.Graph
	config      Config
	computation Computation
	weighter    RelationshipWeighter
	batchSize   int64
	exec        executor.Executor
	log         logger.Logger
	tracker     AllocationTracker
	seed        []float64

	values     []float64
	votes      *voteTracker
	messenger  *messenger
	supersteps int
}

// New validates the configuration against the graph and assembles an engine.
// A batchSize below 1 derives the batch size from the configured concurrency
// so that each worker receives one contiguous range per superstep. The
// executor's lifecycle belongs to the caller: create it before the first run
// and close it when no further runs are needed.
func New(g graph.Graph, config Config, computation Computation, batchSize int, exec executor.Executor, opts ...Option) (*Pregel, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if computation == nil {
		return nil, ErrNilComputation
	}
	if exec == nil {
		return nil, ErrNilExecutor
	}
	if err := config.validate(g); err != nil {
		return nil, err
	}

	nodeCount := g.NodeCount()
	if nodeCount > maxNodeCount {
		return nil, fmt.Errorf("%w: got %d", ErrGraphTooLarge, nodeCount)
	}

	p := &Pregel{
		graph:       g,
		config:      config,
		computation: computation,
		exec:        exec,
		log:         logger.NewNoopLogger(),
		tracker:     NoopTracker{},
	}
	if weighter, ok := computation.(RelationshipWeighter); ok {
		p.weighter = weighter
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.seed != nil && int64(len(p.seed)) != nodeCount {
		return nil, fmt.Errorf("%w: got %d values for %d nodes", ErrInitialValuesLength, len(p.seed), nodeCount)
	}

	p.batchSize = int64(batchSize)
	if p.batchSize < 1 {
		p.batchSize = (nodeCount + int64(config.Concurrency) - 1) / int64(config.Concurrency)
		if p.batchSize < 1 {
			p.batchSize = 1
		}
	}

	return p, nil
}

// Supersteps returns the number of supersteps completed by the last run.
func (p *Pregel) Supersteps() int {
	return p.supersteps
}

// Run executes supersteps until the computation halts, maxIterations is
// reached, or ctx is canceled. Cancellation is not an error: in-flight
// batches finish their current node and the value store is returned as a
// partial result. The returned slice is indexed by node id and is the
// engine's own store; it remains valid until the next Run.
func (p *Pregel) Run(ctx context.Context, maxIterations int) ([]float64, error) {
	if maxIterations < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeIterations, maxIterations)
	}

	ctx, span := tracer.Start(ctx, "pregel.Run", trace.WithAttributes(
		attribute.Int64("node_count", p.graph.NodeCount()),
		attribute.Int("concurrency", p.config.Concurrency),
		attribute.Bool("asynchronous", p.config.IsAsynchronous),
		attribute.Int("max_iterations", maxIterations),
	))
	defer span.End()

	runID := ulid.Make().String()
	start := time.Now()
	p.initState()

	p.log.Info("starting run",
		zap.String("run_id", runID),
		zap.Int64("node_count", p.graph.NodeCount()),
		zap.Int("concurrency", p.config.Concurrency),
		zap.Bool("asynchronous", p.config.IsAsynchronous),
		zap.Int("max_iterations", maxIterations),
	)

	outcome := outcomeIterationLimit
	for superstep := 0; superstep < maxIterations; superstep++ {
		if ctx.Err() != nil {
			outcome = outcomeCanceled
			break
		}

		stepStart := time.Now()
		p.messenger.beginSuperstep()
		if err := p.runSuperstep(ctx, superstep); err != nil {
			telemetry.TraceError(span, err)
			runsTotal.WithLabelValues(outcomeError).Inc()
			p.log.Error("run aborted",
				zap.String("run_id", runID),
				zap.Int("superstep", superstep),
				zap.Error(err),
			)
			return nil, err
		}
		p.supersteps = superstep + 1
		superstepsTotal.Inc()
		superstepDurationMs.Observe(float64(time.Since(stepStart).Milliseconds()))

		sent := p.messenger.anySent()
		active := p.votes.anyActive()
		p.log.Debug("superstep complete",
			zap.String("run_id", runID),
			zap.Int("superstep", superstep),
			zap.Bool("messages_sent", sent),
			zap.Bool("nodes_active", active),
			zap.Duration("took", time.Since(stepStart)),
		)

		if ctx.Err() != nil {
			outcome = outcomeCanceled
			break
		}
		if !active && !sent {
			outcome = outcomeHalted
			break
		}
	}

	runsTotal.WithLabelValues(outcome).Inc()
	messagesSentTotal.Add(float64(p.messenger.totalSent()))
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("supersteps", p.supersteps),
	)
	p.log.Info("run finished",
		zap.String("run_id", runID),
		zap.String("outcome", outcome),
		zap.Int("supersteps", p.supersteps),
		zap.Int64("messages_sent", p.messenger.totalSent()),
		zap.Duration("took", time.Since(start)),
	)

	return p.values, nil
}

// runSuperstep partitions the node-id range into contiguous batches,
// dispatches them to the worker pool and barriers on their completion. The
// barrier is the sole inter-superstep ordering guarantee: all value-store and
// message-buffer writes of superstep k are visible to every worker in k+1.
func (p *Pregel) runSuperstep(ctx context.Context, superstep int) error {
	cctx := &ComputeContext{p: p, superstep: superstep}

	nodeCount := p.graph.NodeCount()
	for batchStart := int64(0); batchStart < nodeCount; batchStart += p.batchSize {
		batchEnd := min(batchStart+p.batchSize, nodeCount)
		p.exec.Submit(func() error {
			return p.computeBatch(ctx, cctx, batchStart, batchEnd)
		})
	}

	return p.exec.AwaitAll()
}

// computeBatch runs the computation for every scheduled node in [start, end).
// Halted nodes are skipped unless a message is waiting for them, in which
// case the delivery reactivates the node first. The context is sampled once
// per node so cancellation latency stays bounded without per-message cost.
func (p *Pregel) computeBatch(ctx context.Context, cctx *ComputeContext, start, end int64) error {
	for id := start; id < end; id++ {
		if ctx.Err() != nil {
			return nil
		}

		if !p.votes.isActive(id) {
			if !p.messenger.pending(cctx.superstep, id) {
				continue
			}
			p.votes.reactivate(id)
		}

		messages := p.messenger.drain(cctx.superstep, id)
		if err := p.computation.Compute(cctx, id, messages); err != nil {
			return fmt.Errorf("compute node %d in superstep %d: %w", id, cctx.superstep, err)
		}
	}

	return nil
}

func (p *Pregel) initState() {
	nodeCount := p.graph.NodeCount()

	p.values = make([]float64, nodeCount)
	if p.seed != nil {
		copy(p.values, p.seed)
	} else {
		for i := range p.values {
			p.values[i] = p.config.InitialNodeValue
		}
	}

	p.votes = newVoteTracker(nodeCount)
	p.messenger = newMessenger(nodeCount, p.config.IsAsynchronous)
	p.supersteps = 0

	p.tracker.Record(nodeCount * 8)
	p.tracker.Record(p.votes.sizeBytes())
	p.tracker.Record(p.messenger.sizeBytes())
}
