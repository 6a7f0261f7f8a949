package status

import (
	"database/sql/driver"
	"errors"
)

// Status is the lifecycle state of an order. Orders are written once at
// checkout and never transition afterwards, so the value set here is the
// whole story: payment is simulated and always succeeds as "paid".
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPending.String():
		return StatusPending, nil
	case StatusPaid.String():
		return StatusPaid, nil
	case StatusFailed.String():
		return StatusFailed, nil
	case StatusRefunded.String():
		return StatusRefunded, nil
	default:
		return "", ErrInvalidStatus
	}
}
