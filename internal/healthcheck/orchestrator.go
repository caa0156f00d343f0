package healthcheck

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nodewatchhq/nodewatch/internal/metrics"
	"github.com/nodewatchhq/nodewatch/internal/node"
)

// DefaultMaxInFlight bounds how many probes one run may have in flight.
const DefaultMaxInFlight = 8

// Orchestrator fans a probe out across every node visible to a
// conversation and aggregates exactly one outcome per node, in registry
// order. One node's failure never aborts the batch.
type Orchestrator struct {
	logger      *slog.Logger
	registry    *node.Registry
	prober      Prober
	metrics     *metrics.Metrics
	maxInFlight int
}

// NewOrchestrator wires the registry and prober together. maxInFlight
// values below one fall back to DefaultMaxInFlight.
func NewOrchestrator(log *slog.Logger, registry *node.Registry, prober Prober, m *metrics.Metrics, maxInFlight int) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	if maxInFlight < 1 {
		maxInFlight = DefaultMaxInFlight
	}
	return &Orchestrator{
		logger:      log.With(slog.String("component", "orchestrator")),
		registry:    registry,
		prober:      prober,
		metrics:     m,
		maxInFlight: maxInFlight,
	}
}

// Run probes every node visible to the conversation and returns the
// collected report. It never fails: an empty report means no nodes were
// visible and no probe was issued. Cancelling ctx abandons in-flight
// probes; their entries surface as Failed outcomes.
func (o *Orchestrator) Run(ctx context.Context, chatID int64) Report {
	targets := o.registry.VisibleNodes(chatID)
	if len(targets) == 0 {
		o.logger.Info("no visible nodes", slog.Int64("chat_id", chatID))
		return Report{}
	}

	log := o.logger.With(slog.String("run_id", uuid.NewString()))
	log.Info("run started",
		slog.Int64("chat_id", chatID),
		slog.Int("nodes", len(targets)),
	)
	start := time.Now()

	// One slot per node, written by exactly one goroutine, so the join
	// barrier is the only synchronization the results need and registry
	// order survives regardless of completion order.
	results := make(Report, len(targets))
	sem := make(chan struct{}, o.maxInFlight)
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			probeStart := time.Now()
			outcome := o.prober.Probe(ctx, target)
			o.metrics.ObserveProbe(outcomeLabel(outcome), time.Since(probeStart))
			results[i] = Result{Node: target, Outcome: outcome}
		}()
	}
	wg.Wait()

	log.Info("run finished", slog.Duration("elapsed", time.Since(start)))
	return results
}

func outcomeLabel(o Outcome) string {
	if _, failed := o.FailureReason(); failed {
		return "failed"
	}
	return "responded"
}
