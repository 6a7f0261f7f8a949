package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. The HTTP layer maps them to status
// codes with errors.Is, so wrap them with context instead of replacing them.
var (
	// ErrNotFound marks a referenced product, order or token that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks malformed or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLinkExpired marks a download token past its validity window.
	// Distinct from ErrNotFound: a stale token is not a garbage token.
	ErrLinkExpired = errors.New("download link expired")

	// ErrFileUnavailable marks a purchased product without a deliverable file.
	ErrFileUnavailable = errors.New("file not available for this product")
)

// ProductNotFoundError carries the id of a referenced product that does not
// exist, so handlers can name it in the response. Matches ErrNotFound via
// errors.Is.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrNotFound
}
