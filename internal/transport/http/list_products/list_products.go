package listproducts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/digital-store/internal/service/models/product"
	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
}

// ListProducts handles the list products request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	products, err := service.ListProducts(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		slog.Error("Error listing products", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, products)
}
