package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/corray333/digital-store/internal/clock"
	"github.com/corray333/digital-store/internal/dal/interfaces/ioutboxrepo"
	outboxmodel "github.com/corray333/digital-store/internal/service/models/outbox"
)

// maxConcurrentPublishes bounds the per-batch publish fan-out.
const maxConcurrentPublishes = 3

// publisher delivers a message to the broker.
type publisher interface {
	Publish(exchange, routingKey string, msg amqp.Publishing) error
}

// Worker relays messages from the outbox table to the broker.
type Worker struct {
	outboxRepo    ioutboxrepo.IOutboxRepository
	publisher     publisher
	clock         clock.Clock
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

type option func(*Worker)

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
	opts ...option,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	w := &Worker{
		outboxRepo:    outboxRepo,
		publisher:     publisher,
		clock:         clock.NewSystem(),
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WithClock sets the clock used for retry scheduling.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(c clock.Clock) option {
	return func(w *Worker) {
		w.clock = c
	}
}

// Start begins relaying messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages publishes one batch of pending messages with a bounded
// fan-out. Each delivery records its own outcome, so a failed message never
// blocks the rest of the batch.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	var g errgroup.Group
	g.SetLimit(maxConcurrentPublishes)
	for _, msg := range messages {
		g.Go(func() error {
			w.deliver(ctx, msg)

			return nil
		})
	}
	_ = g.Wait()
}

// deliver publishes a single message, deleting it on success and scheduling
// an exponentially backed-off retry on failure.
func (w *Worker) deliver(ctx context.Context, msg outboxmodel.OutboxMessage) {
	err := w.publisher.Publish(
		msg.ExchangeName,
		msg.RoutingKey,
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Payload,
		},
	)
	if err != nil {
		newRetryCount := msg.RetryCount + 1
		backoff := time.Duration(math.Pow(2, float64(newRetryCount))) * w.retryInterval
		nextRetryAt := w.clock.Now().Add(backoff)

		slog.Warn("Failed to publish message from outbox, will retry",
			"outbox_id", msg.ID,
			"retry_count", newRetryCount,
			"next_retry", nextRetryAt,
			"error", err,
		)

		if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, newRetryCount, err.Error(), nextRetryAt); err != nil {
			slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
		}

		return
	}

	if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
		slog.Error("Failed to delete message from outbox after successful publish",
			"outbox_id", msg.ID,
			"error", err,
		)

		return
	}

	slog.Info("Message successfully published and removed from outbox", "outbox_id", msg.ID)
}
