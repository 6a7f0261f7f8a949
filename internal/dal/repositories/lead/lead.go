package leadrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/digital-store/internal/dal/docstore"
	"github.com/corray333/digital-store/internal/service/models/lead"
)

// LeadDal represents the lead document layout in the store.
type LeadDal struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToModel converts LeadDal to the service layer Lead model.
func (d *LeadDal) ToModel(id string, createdAt time.Time) *lead.Lead {
	return &lead.Lead{
		ID:        id,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		CreatedAt: createdAt,
	}
}

// LeadDalFromModel converts the service layer Lead model to LeadDal.
func LeadDalFromModel(l *lead.Lead) *LeadDal {
	return &LeadDal{
		Name:    l.Name,
		Email:   l.Email,
		Phone:   l.Phone,
		Message: l.Message,
	}
}

// LeadRepository stores captured leads as documents in the lead collection.
type LeadRepository struct {
	store docstore.Store
}

// NewLeadRepository creates a new lead repository.
func NewLeadRepository(store docstore.Store) *LeadRepository {
	return &LeadRepository{
		store: store,
	}
}

// Insert persists the lead and returns it with its assigned id and
// persisted creation time.
func (r *LeadRepository) Insert(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	id, err := r.store.Create(ctx, docstore.CollectionLead, LeadDalFromModel(&l))
	if err != nil {
		return lead.Lead{}, fmt.Errorf("failed to insert lead: %w", err)
	}

	doc, err := r.store.FindByID(ctx, docstore.CollectionLead, id)
	if err != nil {
		return lead.Lead{}, fmt.Errorf("failed to find lead: %w", err)
	}

	var dal LeadDal
	if err := json.Unmarshal(doc.Data, &dal); err != nil {
		return lead.Lead{}, fmt.Errorf("failed to decode lead document: %w", err)
	}

	return *dal.ToModel(doc.ID, doc.CreatedAt), nil
}
