package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corray333/digital-store/internal/clock"
	"github.com/corray333/digital-store/internal/dal/docstore/memory"
	leadrepo "github.com/corray333/digital-store/internal/dal/repositories/lead"
	orderrepo "github.com/corray333/digital-store/internal/dal/repositories/order"
	productrepo "github.com/corray333/digital-store/internal/dal/repositories/product"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/service/models/product"
	"github.com/corray333/digital-store/internal/service/models/status"
	"github.com/corray333/digital-store/internal/service/services/catalogsvc"
	"github.com/corray333/digital-store/internal/service/services/downloadsvc"
	"github.com/corray333/digital-store/internal/service/services/leadsvc"
	"github.com/corray333/digital-store/internal/service/services/ordersvc"
)

// newStorefront wires the full stack over the in-memory store. The returned
// router behaves like the deployed service minus Postgres and RabbitMQ; the
// second return builds an identical router whose download clock reads a
// different instant, for exercising link expiry.
func newStorefront(now time.Time) (http.Handler, func(resolveAt time.Time) http.Handler) {
	store := memory.NewStore(memory.WithClock(clock.NewFixed(now)))
	productRepo := productrepo.NewProductRepository(store)
	orderRepo := orderrepo.NewOrderRepository(store)
	leadRepo := leadrepo.NewLeadRepository(store)

	catalog := catalogsvc.MustNewCatalogService(
		catalogsvc.WithProductRepository(productRepo),
	)
	orders := ordersvc.MustNewOrderService(
		ordersvc.WithProductRepository(productRepo),
		ordersvc.WithOrderRepository(orderRepo),
		ordersvc.WithClock(clock.NewFixed(now)),
	)
	leads := leadsvc.MustNewLeadService(
		leadsvc.WithLeadRepository(leadRepo),
		leadsvc.WithClock(clock.NewFixed(now)),
	)

	makeRouter := func(resolveAt time.Time) http.Handler {
		downloads := downloadsvc.MustNewDownloadService(
			downloadsvc.WithOrderRepository(orderRepo),
			downloadsvc.WithProductRepository(productRepo),
			downloadsvc.WithClock(clock.NewFixed(resolveAt)),
		)

		transport := NewHTTPTransport(catalog, orders, downloads, leads, store)
		transport.RegisterRoutes()

		return transport.Router()
	}

	return makeRouter(now), makeRouter
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestStorefrontFlow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	router, routerAt := newStorefront(now)

	var ebook, brochure product.Product
	var placed order.Order

	createProduct := func(body string) product.Product {
		rec := serve(t, router, "POST", "/api/products", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("create product: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var p product.Product
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode product: %v", err)
		}

		return p
	}

	ebook = createProduct(`{"title":"Go Course","description":"Everything about Go","price":9.99,"file_url":"https://cdn.example.com/go.zip"}`)
	brochure = createProduct(`{"title":"CV Template","price":49.5}`)

	t.Run("catalog lists both products", func(t *testing.T) {
		rec := serve(t, router, "GET", "/api/products", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var products []product.Product
		if err := json.NewDecoder(rec.Body).Decode(&products); err != nil {
			t.Fatalf("decode products: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
	})

	t.Run("checkout charges the cart and grants links", func(t *testing.T) {
		rec := serve(t, router, "POST", "/api/orders",
			`{"customer_name":"Ada","customer_email":"ada@example.com","items":[`+
				`{"product_id":"`+ebook.ID+`","quantity":2},`+
				`{"product_id":"`+brochure.ID+`"}]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		if err := json.NewDecoder(rec.Body).Decode(&placed); err != nil {
			t.Fatalf("decode order: %v", err)
		}
		if placed.Status != status.StatusPaid {
			t.Fatalf("expected paid order, got %s", placed.Status)
		}
		if placed.Amount != 69.48 {
			t.Fatalf("expected amount 69.48, got %v", placed.Amount)
		}
		if len(placed.Items) != 2 || placed.Items[1].Quantity != 1 {
			t.Fatalf("expected defaulted quantity, got %+v", placed.Items)
		}
		if len(placed.DownloadLinks) != 2 {
			t.Fatalf("expected one link per item, got %d", len(placed.DownloadLinks))
		}
		if placed.DownloadLinks[0].Token == placed.DownloadLinks[1].Token {
			t.Fatalf("expected distinct tokens")
		}
	})

	t.Run("order is retrievable by id", func(t *testing.T) {
		rec := serve(t, router, "GET", "/api/orders/"+placed.ID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var got order.Order
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode order: %v", err)
		}
		if got.ID != placed.ID || got.Amount != placed.Amount {
			t.Fatalf("round trip mismatch: %+v", got)
		}
	})

	t.Run("a link with a file resolves", func(t *testing.T) {
		link, ok := placed.LinkByToken(placed.DownloadLinks[0].Token)
		if !ok || link.ProductID != ebook.ID {
			t.Fatalf("expected first link bound to the ebook, got %+v", placed.DownloadLinks)
		}

		rec := serve(t, router, "GET", "/api/download/"+link.Token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Product product.Product `json:"product"`
			FileURL string          `json:"file_url"`
			Message string          `json:"message"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Product.ID != ebook.ID {
			t.Fatalf("expected the ebook, got %+v", body.Product)
		}
		if body.FileURL != "https://cdn.example.com/go.zip" {
			t.Fatalf("unexpected file URL: %q", body.FileURL)
		}
		if body.Message == "" {
			t.Fatalf("expected delivery message")
		}
	})

	t.Run("a link without a file does not resolve", func(t *testing.T) {
		rec := serve(t, router, "GET", "/api/download/"+placed.DownloadLinks[1].Token, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("garbage tokens are invalid", func(t *testing.T) {
		rec := serve(t, router, "GET", "/api/download/garbage", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("links expire after the validity window", func(t *testing.T) {
		stale := routerAt(now.Add(ordersvc.DefaultLinkTTL + time.Hour))

		rec := serve(t, stale, "GET", "/api/download/"+placed.DownloadLinks[0].Token, "")
		if rec.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("orders referencing unknown products are rejected whole", func(t *testing.T) {
		rec := serve(t, router, "POST", "/api/orders",
			`{"customer_name":"Ada","customer_email":"ada@example.com","items":[`+
				`{"product_id":"`+ebook.ID+`"},{"product_id":"11111111-2222-3333-4444-555555555555"}]}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("leads are captured", func(t *testing.T) {
		rec := serve(t, router, "POST", "/api/demo-lead", `{"name":"Ada","email":"ada@example.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("diagnostics report the live collections", func(t *testing.T) {
		rec := serve(t, router, "GET", "/test", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body struct {
			Database    string   `json:"database"`
			Collections []string `json:"collections"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Database != "✅ Connected & Working" {
			t.Fatalf("unexpected database status: %q", body.Database)
		}
		if len(body.Collections) != 3 {
			t.Fatalf("expected lead, order and product collections, got %v", body.Collections)
		}
	})
}
