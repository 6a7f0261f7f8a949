package catalogsvc

import (
	"context"
	"fmt"

	iproduct "github.com/corray333/digital-store/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/product"
)

// CatalogService manages the product catalog.
type CatalogService struct {
	productRepo iproduct.IProductRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithProductRepository sets the product repository for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproduct.IProductRepository) option {
	return func(s *CatalogService) {
		s.productRepo = repo
	}
}

// CreateProduct persists a new catalog product and returns it with its
// assigned id.
func (s *CatalogService) CreateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	if p.Title == "" {
		return product.Product{}, fmt.Errorf("title must not be empty: %w", errs.ErrInvalidInput)
	}
	if p.Price < 0 {
		return product.Product{}, fmt.Errorf("price must not be negative: %w", errs.ErrInvalidInput)
	}

	created, err := s.productRepo.Insert(ctx, p)
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return created, nil
}

// ListProducts returns all catalog products.
func (s *CatalogService) ListProducts(ctx context.Context) ([]product.Product, error) {
	return s.productRepo.List(ctx)
}

// GetProduct returns the product with the given id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (product.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}
