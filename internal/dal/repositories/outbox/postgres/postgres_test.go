package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/corray333/digital-store/internal/clock"
	"github.com/corray333/digital-store/internal/service/models/outbox"
)

func TestOutboxRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepository(mock)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := outbox.NewMessage(outbox.QueueOrderPlaced, []byte(`{"id":"order-1"}`), now)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO outbox (queue_name,exchange_name,routing_key,payload,content_type,`+
			`retry_count,max_retries,last_error,created_at,updated_at,next_retry_at) `+
			`VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
	)).
		WithArgs(
			outbox.QueueOrderPlaced,
			"",
			outbox.QueueOrderPlaced,
			[]byte(`{"id":"order-1"}`),
			"application/json",
			0,
			5,
			"",
			now,
			now,
			now,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Insert(context.Background(), msg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_GetPendingMessages(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewOutboxRepository(mock, WithClock(clock.NewFixed(now)))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, queue_name, exchange_name, routing_key, payload, content_type, `+
			`retry_count, max_retries, last_error, created_at, updated_at, next_retry_at `+
			`FROM outbox WHERE next_retry_at <= $1 AND retry_count < max_retries `+
			`ORDER BY next_retry_at ASC LIMIT 10`,
	)).
		WithArgs(now).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "queue_name", "exchange_name", "routing_key", "payload", "content_type",
			"retry_count", "max_retries", "last_error", "created_at", "updated_at", "next_retry_at",
		}).AddRow(
			int64(7), outbox.QueueOrderPlaced, "", outbox.QueueOrderPlaced, []byte(`{}`),
			"application/json", 1, 5, "broker unreachable", now, now, now,
		))

	messages, err := repo.GetPendingMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, int64(7), messages[0].ID)
	require.Equal(t, outbox.QueueOrderPlaced, messages[0].QueueName)
	require.Equal(t, 1, messages[0].RetryCount)
	require.Equal(t, "broker unreachable", messages[0].LastError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM outbox WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_UpdateRetry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewOutboxRepository(mock, WithClock(clock.NewFixed(now)))
	nextRetryAt := now.Add(time.Minute)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE outbox SET retry_count = $1, last_error = $2, next_retry_at = $3, `+
			`updated_at = $4 WHERE id = $5`,
	)).
		WithArgs(2, "broker unreachable", nextRetryAt, now, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateRetry(context.Background(), 7, 2, "broker unreachable", nextRetryAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_InsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepository(mock)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO outbox").
		WillReturnError(errors.New("connection reset"))

	err = repo.Insert(context.Background(), outbox.NewMessage(outbox.QueueLeadCaptured, []byte(`{}`), now))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
