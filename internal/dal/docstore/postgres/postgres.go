package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/digital-store/internal/clock"
	"github.com/corray333/digital-store/internal/dal/docstore"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of a pgx pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store implements docstore.Store on a single Postgres table. Every document
// lives in the documents table as a jsonb value keyed by collection name, and
// filters are evaluated with the jsonb containment operator.
type Store struct {
	db    DB
	clock clock.Clock
}

// option is a function that configures the Store.
type option func(*Store)

// NewStore creates a new Postgres-backed document store.
func NewStore(db DB, opts ...option) *Store {
	s := &Store{
		db:    db,
		clock: clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithClock sets the clock used to stamp created_at on new documents.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(c clock.Clock) option {
	return func(s *Store) {
		s.clock = c
	}
}

// Create persists data as a new document and returns its assigned id.
func (s *Store) Create(ctx context.Context, collection string, data any) (string, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	id := uuid.NewString()

	query, args, err := sq.Insert("documents").
		Columns("id", "collection", "data", "created_at").
		Values(id, collection, body, s.clock.Now()).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Find returns documents of the collection matching the filter.
func (s *Store) Find(ctx context.Context, collection string, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	builder := sq.Select("id", "data", "created_at").
		From("documents").
		Where(sq.Eq{"collection": collection}).
		PlaceholderFormat(sq.Dollar)

	if len(filter) > 0 {
		body, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filter: %w", err)
		}
		builder = builder.Where(sq.Expr("data @> ?::jsonb", body))
	}

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}

// FindByID returns the document with the given id, or docstore.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection string, id string) (docstore.Document, error) {
	// A malformed id cannot name a stored document.
	if _, err := uuid.Parse(id); err != nil {
		return docstore.Document{}, docstore.ErrNotFound
	}

	query, args, err := sq.Select("id", "data", "created_at").
		From("documents").
		Where(sq.Eq{"collection": collection, "id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var doc docstore.Document
	err = s.db.QueryRow(ctx, query, args...).Scan(&doc.ID, &doc.Data, &doc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to query document: %w", err)
	}

	return doc, nil
}

// Ping verifies connectivity to the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Collections lists the distinct collection names currently stored.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, "SELECT DISTINCT collection FROM documents ORDER BY collection")
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return names, nil
}
