package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse carries the error body shape of the API.
type errorResponse struct {
	Detail string `json:"detail"`
}

// JSON writes v as an application/json response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// Error writes an error body {"detail": ...} with the given status.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, errorResponse{Detail: detail})
}
