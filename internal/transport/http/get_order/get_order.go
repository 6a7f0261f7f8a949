package getorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id string) (order.Order, error)
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "orderID")

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Order not found")

			return
		}
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		slog.Error("Error getting order", "error", err, "order_id", id)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
