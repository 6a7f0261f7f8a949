package resolvedownload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/product"
	"github.com/corray333/digital-store/internal/service/services/downloadsvc"
	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// downloadMessage tells the client what to do with the resolved URL.
const downloadMessage = "Direct your client to this URL to download the file. " +
	"In production, stream the file from secure storage."

// service is an interface for the service layer.
type service interface {
	Resolve(ctx context.Context, token string) (downloadsvc.Resolution, error)
}

// resolveDownloadResponse represents a resolved download.
type resolveDownloadResponse struct {
	Product product.Product `json:"product"`
	FileURL string          `json:"file_url"`
	Message string          `json:"message"`
}

// ResolveDownload handles the download token resolution request.
func ResolveDownload(w http.ResponseWriter, r *http.Request, service service) {
	token := chi.URLParam(r, "token")

	res, err := service.Resolve(r.Context(), token)
	if err != nil {
		var pnf *errs.ProductNotFoundError
		switch {
		case errors.Is(err, errs.ErrLinkExpired):
			respond.Error(w, http.StatusGone, "Link expired")
		case errors.Is(err, errs.ErrFileUnavailable):
			respond.Error(w, http.StatusNotFound, "File not available for this product")
		case errors.As(err, &pnf):
			respond.Error(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, errs.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Invalid token")
		default:
			respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
			slog.Error("Error resolving download token", "error", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, resolveDownloadResponse{
		Product: res.Product,
		FileURL: res.FileURL,
		Message: downloadMessage,
	})
}
