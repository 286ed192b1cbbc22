// Package dispatcher drains the notification outbox and publishes events to
// the message broker. Delivery is at-least-once: an entry is only marked
// processed after a successful publish, so consumers must tolerate duplicates.
package dispatcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"leasegate/internal/notification/outbox"
)

var (
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leasegate_outbox_events_published_total",
		Help: "Total number of outbox events published to the broker",
	})
	publishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leasegate_outbox_publish_failures_total",
		Help: "Total number of outbox publish failures",
	})
	pendingEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leasegate_outbox_pending_entries",
		Help: "Number of outbox entries awaiting publication",
	})
)

// Publisher sends one event to the broker.
type Publisher interface {
	Publish(eventType string, body []byte) error
}

// Worker polls the outbox and publishes pending entries.
type Worker struct {
	store        outbox.Store
	publisher    Publisher
	batchSize    int
	pollInterval time.Duration
	concurrency  int
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures the Worker.
type Option func(*Worker)

// WithBatchSize sets the maximum number of entries fetched per poll.
func WithBatchSize(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// WithPollInterval sets the interval between polls.
func WithPollInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.pollInterval = interval
		}
	}
}

// WithConcurrency bounds how many entries are published in parallel.
func WithConcurrency(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// New creates an outbox dispatcher worker.
func New(store outbox.Store, publisher Publisher, logger *slog.Logger, opts ...Option) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		store:        store,
		publisher:    publisher,
		batchSize:    100,
		pollInterval: 500 * time.Millisecond,
		concurrency:  4,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the polling loop in a background goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
}

// Stop cancels the polling loop, drains one final batch, and waits.
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			// Final drain with a fresh context; w.ctx is already cancelled.
			drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.poll(drainCtx)
			cancel()
			return
		case <-ticker.C:
			w.poll(w.ctx)
		}
	}
}

// Poll fetches and publishes one batch. Exposed for tests.
func (w *Worker) Poll(ctx context.Context) {
	w.poll(ctx)
}

func (w *Worker) poll(ctx context.Context) {
	entries, err := w.store.FetchUnprocessed(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("failed to fetch outbox entries", "error", err)
		return
	}
	if len(entries) == 0 {
		pendingEntries.Set(0)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if err := w.publisher.Publish(entry.EventType, entry.Payload); err != nil {
				publishFailures.Inc()
				w.logger.Error("failed to publish outbox entry",
					"entry_id", entry.ID,
					"event_type", entry.EventType,
					"error", err,
				)
				// Leave the entry pending; the next poll retries it.
				return nil
			}
			if err := w.store.MarkProcessed(gctx, entry.ID, time.Now()); err != nil {
				w.logger.Error("failed to mark outbox entry processed",
					"entry_id", entry.ID,
					"error", err,
				)
				return nil
			}
			eventsPublished.Inc()
			return nil
		})
	}
	_ = g.Wait()

	if pending, err := w.store.CountPending(ctx); err == nil {
		pendingEntries.Set(float64(pending))
	}
}
