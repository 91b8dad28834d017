// SPDX-License-Identifier: MIT
// Package: batch
//
// batch.go - bounded worker pool with in-order delivery.
//
// Purpose:
//   - Reconstruct events concurrently (errgroup.SetLimit).
//   - Re-sequence outcomes so the Sink sees ascending event indices.
//
// Determinism:
//   - Each event draws from reco.Stream(Seed, Index); worker count never changes results.
//   - Duplicate indices fail the run before any work starts.

package batch

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/reco"
)

var (
	// ErrNoReconstructor: Runner.Reconstructor is nil.
	ErrNoReconstructor = errors.New("batch: nil reconstructor")

	// ErrDuplicateIndex: two events share an index.
	ErrDuplicateIndex = errors.New("batch: duplicate event index")
)

// Sink receives outcomes in ascending event index order, never
// concurrently.
type Sink interface {
	Write(ctx context.Context, out reco.Outcome) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, out reco.Outcome) error

// Write implements Sink.
func (f SinkFunc) Write(ctx context.Context, out reco.Outcome) error { return f(ctx, out) }

// Discard is a Sink that drops every outcome.
var Discard Sink = SinkFunc(func(context.Context, reco.Outcome) error { return nil })

// Runner reconstructs event batches.
type Runner struct {
	Reconstructor *reco.Reconstructor
	Workers       int // <= 0 means 1
	Seed          int64
	Metrics       *Metrics     // optional
	Logger        *slog.Logger // optional
}

// resequencer hands outcomes to the sink in rank order.
type resequencer struct {
	mu      sync.Mutex
	next    int
	pending map[int]reco.Outcome
	sink    Sink
	summary *Summary
}

func (q *resequencer) push(ctx context.Context, rank int, out reco.Outcome) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending[rank] = out
	for {
		o, ok := q.pending[q.next]
		if !ok {
			return nil
		}
		delete(q.pending, q.next)
		q.next++
		q.summary.Add(o)
		if err := q.sink.Write(ctx, o); err != nil {
			return fmt.Errorf("batch: sink event %d: %w", o.Index, err)
		}
	}
}

// Run reconstructs events and returns the run summary.
//
// Errors:
//   - ErrNoReconstructor, ErrDuplicateIndex before any work starts.
//   - The first sink error; remaining work is cancelled.
//   - ctx.Err() when cancelled.
func (r *Runner) Run(ctx context.Context, events []event.Event, sink Sink) (*Summary, error) {
	if r.Reconstructor == nil {
		return nil, ErrNoReconstructor
	}
	if sink == nil {
		sink = Discard
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	workers := max(r.Workers, 1)

	order := make([]int, len(events))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(events[a].Index, events[b].Index)
	})
	for i := 1; i < len(order); i++ {
		if events[order[i]].Index == events[order[i-1]].Index {
			return nil, fmt.Errorf("index %d: %w", events[order[i]].Index, ErrDuplicateIndex)
		}
	}

	summary := NewSummary()
	q := &resequencer{pending: make(map[int]reco.Outcome), sink: sink, summary: summary}
	start := time.Now()
	logger.InfoContext(ctx, "batch started", slog.Int("events", len(events)), slog.Int("workers", workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for rank, pos := range order {
		if gctx.Err() != nil {
			break
		}
		rank, ev := rank, events[pos]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			out := r.Reconstructor.Reconstruct(gctx, ev, reco.Stream(r.Seed, ev.Index))
			if out.Reason == reco.ReasonCancelled {
				return out.Err
			}
			r.Metrics.observe(out, time.Since(t0).Seconds())
			if out.Status == reco.Rejected {
				logger.DebugContext(gctx, "event rejected",
					slog.Int64("event", ev.Index),
					slog.String("reason", out.Reason.String()),
					slog.String("stage", out.Stage.String()),
				)
			}

			return q.push(gctx, rank, out)
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	logger.InfoContext(ctx, "batch finished",
		slog.Int("processed", summary.Processed),
		slog.Int("accepted", summary.Accepted),
		slog.Int("rejected", summary.RejectedTotal()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return summary, nil
}
