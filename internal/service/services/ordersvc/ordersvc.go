package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/digital-store/internal/clock"
	iorder "github.com/corray333/digital-store/internal/dal/interfaces/iorderrepo"
	iproduct "github.com/corray333/digital-store/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/digital-store/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/cartitem"
	"github.com/corray333/digital-store/internal/service/models/downloadlink"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/service/models/outbox"
	"github.com/corray333/digital-store/internal/service/models/status"
)

// DefaultLinkTTL is how long download links stay valid after checkout.
const DefaultLinkTTL = 7 * 24 * time.Hour

// OrderService manages order placement and lookup.
type OrderService struct {
	productRepo iproduct.IProductRepository
	orderRepo   iorder.IOrderRepository
	outboxRepo  ioutboxrepo.IOutboxRepository
	clock       clock.Clock
	linkTTL     time.Duration
	log         *slog.Logger
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		clock:   clock.NewSystem(),
		linkTTL: DefaultLinkTTL,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithProductRepository sets the product repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproduct.IProductRepository) option {
	return func(s *OrderService) {
		s.productRepo = repo
	}
}

// WithOrderRepository sets the order repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorder.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithOutboxRepository sets the outbox repository for the OrderService.
// Without one, order placed events are not published.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *OrderService) {
		s.outboxRepo = repo
	}
}

// WithClock sets the clock used for link expiry.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(c clock.Clock) option {
	return func(s *OrderService) {
		s.clock = c
	}
}

// WithLinkTTL sets how long download links stay valid.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLinkTTL(ttl time.Duration) option {
	return func(s *OrderService) {
		s.linkTTL = ttl
	}
}

// WithLogger sets the logger for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *OrderService) {
		s.log = log
	}
}

// PlaceOrder validates the cart, charges the customer through the simulated
// payment step and persists the order with one download link per cart item.
// Every referenced product must exist or nothing is persisted.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	customerName string,
	customerEmail string,
	items []cartitem.CartItem,
) (order.Order, error) {
	if customerName == "" {
		return order.Order{}, fmt.Errorf("customer name must not be empty: %w", errs.ErrInvalidInput)
	}
	if customerEmail == "" {
		return order.Order{}, fmt.Errorf("customer email must not be empty: %w", errs.ErrInvalidInput)
	}
	if len(items) == 0 {
		return order.Order{}, fmt.Errorf("order must contain at least one item: %w", errs.ErrInvalidInput)
	}
	for _, item := range items {
		if item.ProductID == "" {
			return order.Order{}, fmt.Errorf("item product id must not be empty: %w", errs.ErrInvalidInput)
		}
		if item.Quantity < cartitem.MinQuantity || item.Quantity > cartitem.MaxQuantity {
			return order.Order{}, fmt.Errorf(
				"item quantity must be between %d and %d: %w",
				cartitem.MinQuantity, cartitem.MaxQuantity, errs.ErrInvalidInput,
			)
		}
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.linkTTL)

	var amount float64
	links := make([]downloadlink.DownloadLink, 0, len(items))
	for _, item := range items {
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if errors.Is(err, errs.ErrNotFound) {
			return order.Order{}, &errs.ProductNotFoundError{ProductID: item.ProductID}
		}
		if err != nil {
			return order.Order{}, fmt.Errorf("failed to resolve order item: %w", err)
		}

		amount += p.Price * float64(item.Quantity)
		links = append(links, downloadlink.New(item.ProductID, expiresAt))
	}

	// Payment is simulated: every order is charged successfully and
	// recorded as paid right away.
	created, err := s.orderRepo.Insert(ctx, order.Order{
		Status:        status.StatusPaid,
		Amount:        round2(amount),
		Items:         items,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		DownloadLinks: links,
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to place order: %w", err)
	}

	s.enqueueOrderPlaced(ctx, created)

	return created, nil
}

// GetOrder returns the order with the given id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (order.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// enqueueOrderPlaced appends an order placed event to the outbox. Delivery is
// best effort: the order is already persisted, so failures are only logged.
func (s *OrderService) enqueueOrderPlaced(ctx context.Context, o order.Order) {
	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(o)
	if err != nil {
		s.log.Warn("Failed to marshal order placed event", "error", err, "order_id", o.ID)

		return
	}

	msg := outbox.NewMessage(outbox.QueueOrderPlaced, payload, s.clock.Now())
	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		s.log.Warn("Failed to enqueue order placed event", "error", err, "order_id", o.ID)
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
