package createproduct

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/product"
	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
}

// createProductRequest represents a create product request.
type createProductRequest struct {
	Title        string   `json:"title"         validate:"required"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price"         validate:"required,gte=0"`
	ThumbnailURL string   `json:"thumbnail_url"`
	FileURL      string   `json:"file_url"`
}

// toModel converts createProductRequest to product.Product.
func (r *createProductRequest) toModel() *product.Product {
	return &product.Product{
		Title:        r.Title,
		Description:  r.Description,
		Price:        *r.Price,
		ThumbnailURL: r.ThumbnailURL,
		FileURL:      r.FileURL,
	}
}

// Validate validates the create product request.
func (r *createProductRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateProduct handles the create product request.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	req := createProductRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for create product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
		slog.Error("Error validating request body for create product", "error", err)

		return
	}

	created, err := service.CreateProduct(r.Context(), *req.toModel())
	if err != nil {
		if errors.Is(err, errs.ErrInvalidInput) {
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())

			return
		}
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		slog.Error("Error creating product", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, created)
}
