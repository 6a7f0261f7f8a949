package downloadsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/digital-store/internal/clock"
	iorder "github.com/corray333/digital-store/internal/dal/interfaces/iorderrepo"
	iproduct "github.com/corray333/digital-store/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/product"
)

// Resolution is the outcome of a successful token resolution.
type Resolution struct {
	Product product.Product
	FileURL string
}

// DownloadService resolves download tokens to deliverable files.
type DownloadService struct {
	orderRepo   iorder.IOrderRepository
	productRepo iproduct.IProductRepository
	clock       clock.Clock
}

// option is a function that configures the DownloadService.
type option func(*DownloadService)

// MustNewDownloadService creates a new DownloadService.
func MustNewDownloadService(opts ...option) *DownloadService {
	s := &DownloadService{
		clock: clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the DownloadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorder.IOrderRepository) option {
	return func(s *DownloadService) {
		s.orderRepo = repo
	}
}

// WithProductRepository sets the product repository for the DownloadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproduct.IProductRepository) option {
	return func(s *DownloadService) {
		s.productRepo = repo
	}
}

// WithClock sets the clock used for expiry checks.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(c clock.Clock) option {
	return func(s *DownloadService) {
		s.clock = c
	}
}

// Resolve maps the token to its product and file URL. It returns
// errs.ErrNotFound for unknown tokens, errs.ErrLinkExpired past the validity
// window, errs.ProductNotFoundError when the product was removed after
// purchase and errs.ErrFileUnavailable when the product has no file. Resolve
// never mutates the order, so a valid token keeps working until it expires.
func (s *DownloadService) Resolve(ctx context.Context, token string) (Resolution, error) {
	o, err := s.orderRepo.FindByToken(ctx, token)
	if err != nil {
		return Resolution{}, err
	}

	link, ok := o.LinkByToken(token)
	if !ok {
		return Resolution{}, fmt.Errorf("download token: %w", errs.ErrNotFound)
	}

	if link.Expired(s.clock.Now()) {
		return Resolution{}, fmt.Errorf("token expired at %s: %w", link.ExpiresAt, errs.ErrLinkExpired)
	}

	p, err := s.productRepo.GetByID(ctx, link.ProductID)
	if errors.Is(err, errs.ErrNotFound) {
		return Resolution{}, &errs.ProductNotFoundError{ProductID: link.ProductID}
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to resolve product: %w", err)
	}

	if !p.Downloadable() {
		return Resolution{}, fmt.Errorf("product %s: %w", p.ID, errs.ErrFileUnavailable)
	}

	return Resolution{
		Product: p,
		FileURL: p.FileURL,
	}, nil
}
