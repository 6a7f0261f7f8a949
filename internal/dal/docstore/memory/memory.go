package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/corray333/digital-store/internal/clock"
	"github.com/corray333/digital-store/internal/dal/docstore"
	"github.com/google/uuid"
)

// Store is an in-memory docstore.Store used in tests as a stand-in for the
// Postgres store. It mirrors the jsonb containment semantics of the real
// store so the same filters work against both.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]document
	clock       clock.Clock
}

type document struct {
	id        string
	data      []byte
	createdAt time.Time
}

// option is a function that configures the Store.
type option func(*Store)

// NewStore creates an empty in-memory document store.
func NewStore(opts ...option) *Store {
	s := &Store{
		collections: make(map[string][]document),
		clock:       clock.NewSystem(),
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], document{
		id:        id,
		data:      body,
		createdAt: s.clock.Now(),
	})

	return id, nil
}

// Find returns documents of the collection matching the filter.
func (s *Store) Find(ctx context.Context, collection string, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	var want any
	if len(filter) > 0 {
		normalized, err := normalize(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize filter: %w", err)
		}
		want = normalized
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []docstore.Document
	for _, doc := range s.collections[collection] {
		if want != nil {
			var stored any
			if err := json.Unmarshal(doc.data, &stored); err != nil {
				return nil, fmt.Errorf("failed to unmarshal document: %w", err)
			}
			if !contains(stored, want) {
				continue
			}
		}

		docs = append(docs, toDocument(doc))
		if limit > 0 && len(docs) == limit {
			break
		}
	}

	return docs, nil
}

// FindByID returns the document with the given id, or docstore.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection string, id string) (docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if doc.id == id {
			return toDocument(doc), nil
		}
	}

	return docstore.Document{}, docstore.ErrNotFound
}

// Ping always succeeds: the store is the process itself.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Collections lists the distinct collection names currently stored.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func toDocument(doc document) docstore.Document {
	data := make([]byte, len(doc.data))
	copy(data, doc.data)

	return docstore.Document{
		ID:        doc.id,
		Data:      data,
		CreatedAt: doc.createdAt,
	}
}

// normalize round-trips a filter through JSON so its values compare like
// unmarshaled document values (numbers as float64, structs as maps).
func normalize(filter docstore.Filter) (any, error) {
	body, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}

	var normalized any
	if err := json.Unmarshal(body, &normalized); err != nil {
		return nil, err
	}

	return normalized, nil
}

// contains implements jsonb containment: objects must contain every filter
// key, arrays must contain every filter element in some element, scalars
// compare by equality.
func contains(stored, want any) bool {
	switch want := want.(type) {
	case map[string]any:
		storedMap, ok := stored.(map[string]any)
		if !ok {
			return false
		}
		for key, value := range want {
			inner, ok := storedMap[key]
			if !ok || !contains(inner, value) {
				return false
			}
		}

		return true
	case []any:
		storedSlice, ok := stored.([]any)
		if !ok {
			return false
		}
		for _, value := range want {
			matched := false
			for _, inner := range storedSlice {
				if contains(inner, value) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}

		return true
	default:
		return stored == want
	}
}
