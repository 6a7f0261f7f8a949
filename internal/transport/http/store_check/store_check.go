package storecheck

import (
	"context"
	"net/http"
	"os"

	"github.com/corray333/digital-store/internal/transport/http/respond"
)

// store is the health surface of the document store.
type store interface {
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
}

// maxCollections caps how many collection names the check reports.
const maxCollections = 10

// storeCheckResponse represents the store diagnostics report.
type storeCheckResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// StoreCheck handles the store diagnostics request. Store failures are folded
// into the report, the endpoint itself always answers 200.
func StoreCheck(w http.ResponseWriter, r *http.Request, store store) {
	resp := storeCheckResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if err := store.Ping(r.Context()); err != nil {
		resp.Database = "❌ Error: " + truncate(err.Error(), 50)
	} else {
		resp.ConnectionStatus = "Connected"

		collections, err := store.Collections(r.Context())
		if err != nil {
			resp.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		} else {
			if len(collections) > maxCollections {
				collections = collections[:maxCollections]
			}
			if collections != nil {
				resp.Collections = collections
			}
			resp.Database = "✅ Connected & Working"
		}
	}

	resp.DatabaseURL = envStatus("STORE_PG_HOST")
	resp.DatabaseName = envStatus("STORE_PG_DB")

	respond.JSON(w, http.StatusOK, resp)
}

func envStatus(key string) string {
	if os.Getenv(key) == "" {
		return "❌ Not Set"
	}

	return "✅ Set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
