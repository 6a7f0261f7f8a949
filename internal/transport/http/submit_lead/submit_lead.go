package submitlead

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/lead"
	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// ackMessage is the fixed acknowledgment returned for every captured lead.
const ackMessage = "We will contact you in 15 minutes."

// service is an interface for the service layer.
type service interface {
	SubmitLead(ctx context.Context, l lead.Lead) (lead.Lead, error)
}

// submitLeadRequest represents a submit lead request.
type submitLeadRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// toModel converts submitLeadRequest to lead.Lead.
func (r *submitLeadRequest) toModel() *lead.Lead {
	return &lead.Lead{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Message: r.Message,
	}
}

// Validate validates the submit lead request.
func (r *submitLeadRequest) Validate() error {
	return validator.New().Struct(r)
}

// submitLeadResponse represents the fixed lead acknowledgment.
type submitLeadResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmitLead handles the submit lead request.
func SubmitLead(w http.ResponseWriter, r *http.Request, service service) {
	req := submitLeadRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for submit lead", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
		slog.Error("Error validating request body for submit lead", "error", err)

		return
	}

	if _, err := service.SubmitLead(r.Context(), *req.toModel()); err != nil {
		if errors.Is(err, errs.ErrInvalidInput) {
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())

			return
		}
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		slog.Error("Error submitting lead", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, submitLeadResponse{
		Status:  "ok",
		Message: ackMessage,
	})
}
