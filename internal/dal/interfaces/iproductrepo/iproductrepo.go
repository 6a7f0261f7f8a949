package iproduct

import (
	"context"

	"github.com/corray333/digital-store/internal/service/models/product"
)

// IProductRepository is an interface for the product repository.
type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
}
