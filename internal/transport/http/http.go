package httptransport

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/corray333/digital-store/internal/service/models/cartitem"
	"github.com/corray333/digital-store/internal/service/models/lead"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/service/models/product"
	"github.com/corray333/digital-store/internal/service/services/downloadsvc"
	createorder "github.com/corray333/digital-store/internal/transport/http/create_order"
	createproduct "github.com/corray333/digital-store/internal/transport/http/create_product"
	getorder "github.com/corray333/digital-store/internal/transport/http/get_order"
	listproducts "github.com/corray333/digital-store/internal/transport/http/list_products"
	resolvedownload "github.com/corray333/digital-store/internal/transport/http/resolve_download"
	"github.com/corray333/digital-store/internal/transport/http/respond"
	storecheck "github.com/corray333/digital-store/internal/transport/http/store_check"
	submitlead "github.com/corray333/digital-store/internal/transport/http/submit_lead"
	"github.com/corray333/digital-store/pkg/http/middleware/trace"
	"github.com/corray333/digital-store/pkg/logger"
)

// bannerMessage greets clients hitting the service root.
const bannerMessage = "Digital Products Store Backend running"

//go:embed openapi.json
var openapiDoc []byte

type catalogService interface {
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
}

type orderService interface {
	PlaceOrder(
		ctx context.Context,
		customerName string,
		customerEmail string,
		items []cartitem.CartItem,
	) (order.Order, error)
	GetOrder(ctx context.Context, id string) (order.Order, error)
}

type downloadService interface {
	Resolve(ctx context.Context, token string) (downloadsvc.Resolution, error)
}

type leadService interface {
	SubmitLead(ctx context.Context, l lead.Lead) (lead.Lead, error)
}

type store interface {
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	catalog   catalogService
	orders    orderService
	downloads downloadService
	leads     leadService
	store     store
}

func NewHTTPTransport(
	catalog catalogService,
	orders orderService,
	downloads downloadService,
	leads leadService,
	store store,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		catalog:   catalog,
		orders:    orders,
		downloads: downloads,
		leads:     leads,
		store:     store,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Router returns the underlying router, fully wired.
func (h *HTTPTransport) Router() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/", h.root)
	h.router.Get("/test", h.storeCheck)
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Post("/products", h.createProduct)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{orderID}", h.getOrder)
		r.Get("/download/{token}", h.resolveDownload)
		r.Post("/demo-lead", h.submitLead)
	})
	h.router.Get("/swagger/doc.json", h.swaggerDoc)
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (h *HTTPTransport) root(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"message": bannerMessage})
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	createproduct.CreateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.catalog)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) resolveDownload(w http.ResponseWriter, r *http.Request) {
	resolvedownload.ResolveDownload(w, r, h.downloads)
}

func (h *HTTPTransport) submitLead(w http.ResponseWriter, r *http.Request) {
	submitlead.SubmitLead(w, r, h.leads)
}

func (h *HTTPTransport) storeCheck(w http.ResponseWriter, r *http.Request) {
	storecheck.StoreCheck(w, r, h.store)
}

func (h *HTTPTransport) swaggerDoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(openapiDoc); err != nil {
		slog.Error("Error writing OpenAPI document", "error", err)
	}
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	if viper.GetBool("tracing.enabled") {
		router.Use(trace.NewTraceMiddleware)
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
