package outbox

import (
	"time"
)

// Queues the relay worker publishes to.
const (
	QueueOrderPlaced  = "store.order.placed"
	QueueLeadCaptured = "store.lead.captured"
)

const defaultMaxRetries = 5

// OutboxMessage represents a notification event waiting to be relayed to
// RabbitMQ. Rows stay in the outbox until published successfully.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewMessage creates a JSON message bound for the queue via the default
// exchange, due for relay immediately.
func NewMessage(queue string, payload []byte, now time.Time) OutboxMessage {
	return OutboxMessage{
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
}
