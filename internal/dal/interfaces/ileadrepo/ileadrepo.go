package ilead

import (
	"context"

	"github.com/corray333/digital-store/internal/service/models/lead"
)

// ILeadRepository is an interface for the lead repository.
type ILeadRepository interface {
	Insert(ctx context.Context, l lead.Lead) (lead.Lead, error)
}
