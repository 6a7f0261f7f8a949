package productrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/corray333/digital-store/internal/dal/docstore"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/product"
)

// ProductDal represents the product document layout in the store.
type ProductDal struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	FileURL      string  `json:"file_url,omitempty"`
}

// ToModel converts ProductDal to the service layer Product model.
func (d *ProductDal) ToModel(id string, createdAt time.Time) *product.Product {
	return &product.Product{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		ThumbnailURL: d.ThumbnailURL,
		FileURL:      d.FileURL,
		CreatedAt:    createdAt,
	}
}

// ProductDalFromModel converts the service layer Product model to ProductDal.
func ProductDalFromModel(p *product.Product) *ProductDal {
	return &ProductDal{
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		ThumbnailURL: p.ThumbnailURL,
		FileURL:      p.FileURL,
	}
}

// ProductRepository stores products as documents in the product collection.
type ProductRepository struct {
	store docstore.Store
}

// NewProductRepository creates a new product repository.
func NewProductRepository(store docstore.Store) *ProductRepository {
	return &ProductRepository{
		store: store,
	}
}

// Insert persists the product and returns it with its assigned id and
// persisted creation time.
func (r *ProductRepository) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	id, err := r.store.Create(ctx, docstore.CollectionProduct, ProductDalFromModel(&p))
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns the product with the given id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (product.Product, error) {
	doc, err := r.store.FindByID(ctx, docstore.CollectionProduct, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return product.Product{}, fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return fromDocument(doc)
}

// List returns all products. Order is unspecified.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	docs, err := r.store.Find(ctx, docstore.CollectionProduct, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]product.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

func fromDocument(doc docstore.Document) (product.Product, error) {
	var dal ProductDal
	if err := json.Unmarshal(doc.Data, &dal); err != nil {
		return product.Product{}, fmt.Errorf("failed to decode product document: %w", err)
	}

	return *dal.ToModel(doc.ID, doc.CreatedAt), nil
}
