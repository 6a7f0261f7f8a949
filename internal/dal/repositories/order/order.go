package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/corray333/digital-store/internal/dal/docstore"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/cartitem"
	"github.com/corray333/digital-store/internal/service/models/downloadlink"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/service/models/status"
)

// OrderDal represents the order document layout in the store.
type OrderDal struct {
	Status        string            `json:"status"`
	Amount        float64           `json:"amount"`
	Items         []ItemDal         `json:"items"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	DownloadLinks []DownloadLinkDal `json:"download_links"`
}

// ItemDal represents a single cart item inside an order document.
type ItemDal struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// DownloadLinkDal represents a per-item download grant inside an order document.
type DownloadLinkDal struct {
	ProductID string    `json:"product_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (d *OrderDal) ToModel(id string, createdAt time.Time) (*order.Order, error) {
	st, err := status.ParseStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order status: %w", err)
	}

	items := make([]cartitem.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, cartitem.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	links := make([]downloadlink.DownloadLink, 0, len(d.DownloadLinks))
	for _, l := range d.DownloadLinks {
		links = append(links, downloadlink.DownloadLink{
			ProductID: l.ProductID,
			Token:     l.Token,
			ExpiresAt: l.ExpiresAt,
		})
	}

	return &order.Order{
		ID:            id,
		Status:        st,
		Amount:        d.Amount,
		Items:         items,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		DownloadLinks: links,
		CreatedAt:     createdAt,
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	items := make([]ItemDal, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemDal{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	links := make([]DownloadLinkDal, 0, len(o.DownloadLinks))
	for _, l := range o.DownloadLinks {
		links = append(links, DownloadLinkDal{
			ProductID: l.ProductID,
			Token:     l.Token,
			ExpiresAt: l.ExpiresAt,
		})
	}

	return &OrderDal{
		Status:        o.Status.String(),
		Amount:        o.Amount,
		Items:         items,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		DownloadLinks: links,
	}
}

// OrderRepository stores orders as documents in the order collection.
type OrderRepository struct {
	store docstore.Store
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(store docstore.Store) *OrderRepository {
	return &OrderRepository{
		store: store,
	}
}

// Insert persists the order and returns it with its assigned id and
// persisted creation time.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	id, err := r.store.Create(ctx, docstore.CollectionOrder, OrderDalFromModel(&o))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns the order with the given id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (order.Order, error) {
	doc, err := r.store.FindByID(ctx, docstore.CollectionOrder, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return order.Order{}, fmt.Errorf("order %s: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return fromDocument(doc)
}

// FindByToken returns the order holding a download link with the given token.
func (r *OrderRepository) FindByToken(ctx context.Context, token string) (order.Order, error) {
	filter := docstore.Filter{
		"download_links": []any{
			map[string]any{"token": token},
		},
	}

	docs, err := r.store.Find(ctx, docstore.CollectionOrder, filter, 1)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to find order by token: %w", err)
	}
	if len(docs) == 0 {
		return order.Order{}, fmt.Errorf("download token: %w", errs.ErrNotFound)
	}

	return fromDocument(docs[0])
}

func fromDocument(doc docstore.Document) (order.Order, error) {
	var dal OrderDal
	if err := json.Unmarshal(doc.Data, &dal); err != nil {
		return order.Order{}, fmt.Errorf("failed to decode order document: %w", err)
	}

	o, err := dal.ToModel(doc.ID, doc.CreatedAt)
	if err != nil {
		return order.Order{}, err
	}

	return *o, nil
}
