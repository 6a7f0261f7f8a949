package iorder

import (
	"context"

	"github.com/corray333/digital-store/internal/service/models/order"
)

// IOrderRepository is an interface for the order repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id string) (order.Order, error)
	FindByToken(ctx context.Context, token string) (order.Order, error)
}
