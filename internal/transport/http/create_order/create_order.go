package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/cartitem"
	"github.com/corray333/digital-store/internal/service/models/order"
	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(
		ctx context.Context,
		customerName string,
		customerEmail string,
		items []cartitem.CartItem,
	) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity"   validate:"omitempty,gte=1,lte=50"`
}

// toModel converts itemInCreateOrderRequest to cartitem.CartItem. A missing
// quantity defaults to one.
func (r *itemInCreateOrderRequest) toModel() cartitem.CartItem {
	quantity := cartitem.MinQuantity
	if r.Quantity != nil {
		quantity = *r.Quantity
	}

	return cartitem.CartItem{
		ProductID: r.ProductID,
		Quantity:  quantity,
	}
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	CustomerName  string                     `json:"customer_name"  validate:"required"`
	CustomerEmail string                     `json:"customer_email" validate:"required"`
	Items         []itemInCreateOrderRequest `json:"items"          validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	items := make([]cartitem.CartItem, len(req.Items))
	for i := range req.Items {
		items[i] = req.Items[i].toModel()
	}

	created, err := service.PlaceOrder(r.Context(), req.CustomerName, req.CustomerEmail, items)
	if err != nil {
		var pnf *errs.ProductNotFoundError
		switch {
		case errors.As(err, &pnf):
			respond.Error(w, http.StatusNotFound, fmt.Sprintf("Product not found: %s", pnf.ProductID))
		case errors.Is(err, errs.ErrInvalidInput):
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
			slog.Error("Error placing order", "error", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, created)
}
