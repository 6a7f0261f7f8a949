package docstore

import (
	"context"
	"errors"
	"time"
)

// Collection names used by the repositories.
const (
	CollectionProduct = "product"
	CollectionOrder   = "order"
	CollectionLead    = "lead"
)

// ErrNotFound is returned when no document matches a lookup.
var ErrNotFound = errors.New("document not found")

// Document is one stored record together with its store-assigned identity.
// Data holds the raw JSON body; the id and creation time live outside it.
type Document struct {
	ID        string
	Data      []byte
	CreatedAt time.Time
}

// Filter selects documents by JSON containment: a document matches when it
// contains the filter as a sub-document. A slice value matches when every
// filter element is contained in some element of the document's array, which
// is how download tokens are located inside an order's link list.
type Filter map[string]any

// Store is a schema-flexible document store keeping JSON records per
// collection. Implementations must be safe for concurrent use.
type Store interface {
	// Create persists data as a new document and returns its assigned id.
	Create(ctx context.Context, collection string, data any) (string, error)

	// Find returns documents of the collection matching the filter. A nil
	// filter matches everything; limit <= 0 means no limit. Result order is
	// unspecified.
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)

	// FindByID returns the document with the given id, or ErrNotFound. An id
	// that is not well-formed for the store also reports ErrNotFound: it
	// cannot name a stored document.
	FindByID(ctx context.Context, collection string, id string) (Document, error)

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error

	// Collections lists the distinct collection names currently stored.
	Collections(ctx context.Context) ([]string, error)
}
