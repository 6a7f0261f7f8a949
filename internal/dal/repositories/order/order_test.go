package orderrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/digital-store/internal/clock"
	"github.com/corray333/digital-store/internal/dal/docstore/memory"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/cartitem"
	"github.com/corray333/digital-store/internal/service/models/downloadlink"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/service/models/status"
)

func testOrder(token string) order.Order {
	expiresAt := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)

	return order.Order{
		Status:        status.StatusPaid,
		Amount:        19.98,
		Items:         []cartitem.CartItem{{ProductID: "p-1", Quantity: 2}},
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		DownloadLinks: []downloadlink.DownloadLink{
			{ProductID: "p-1", Token: token, ExpiresAt: expiresAt},
		},
	}
}

func TestOrderRepository_Insert(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewOrderRepository(memory.NewStore(memory.WithClock(clock.NewFixed(now))))

	created, err := repo.Insert(context.Background(), testOrder("tok-1"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, created.CreatedAt)
	}
	if created.Status != status.StatusPaid {
		t.Fatalf("expected status paid, got %s", created.Status)
	}
	if created.Amount != 19.98 {
		t.Fatalf("expected amount 19.98, got %v", created.Amount)
	}
	if len(created.Items) != 1 || created.Items[0].Quantity != 2 {
		t.Fatalf("items not stored verbatim: %+v", created.Items)
	}
	if len(created.DownloadLinks) != 1 || created.DownloadLinks[0].Token != "tok-1" {
		t.Fatalf("links not stored verbatim: %+v", created.DownloadLinks)
	}

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.ID != created.ID || got.CustomerEmail != "ada@example.com" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestOrderRepository_Insert_UnknownStatus(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepository(memory.NewStore())

	o := testOrder("tok-1")
	o.Status = "shipped"

	if _, err := repo.Insert(context.Background(), o); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestOrderRepository_GetByID_Missing(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepository(memory.NewStore())

	if _, err := repo.GetByID(context.Background(), "11111111-2222-3333-4444-555555555555"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderRepository_FindByToken(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepository(memory.NewStore())
	ctx := context.Background()

	if _, err := repo.Insert(ctx, testOrder("tok-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	want, err := repo.Insert(ctx, testOrder("tok-2"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.FindByToken(ctx, "tok-2")
	if err != nil {
		t.Fatalf("find by token: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("expected order %s, got %s", want.ID, got.ID)
	}
	if _, ok := got.LinkByToken("tok-2"); !ok {
		t.Fatalf("expected returned order to carry the token")
	}

	if _, err := repo.FindByToken(ctx, "tok-9"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
