package leadsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/corray333/digital-store/internal/clock"
	ilead "github.com/corray333/digital-store/internal/dal/interfaces/ileadrepo"
	"github.com/corray333/digital-store/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/digital-store/internal/service/errs"
	"github.com/corray333/digital-store/internal/service/models/lead"
	"github.com/corray333/digital-store/internal/service/models/outbox"
)

// LeadService captures marketing leads from the storefront contact form.
type LeadService struct {
	leadRepo   ilead.ILeadRepository
	outboxRepo ioutboxrepo.IOutboxRepository
	clock      clock.Clock
	log        *slog.Logger
}

// option is a function that configures the LeadService.
type option func(*LeadService)

// MustNewLeadService creates a new LeadService.
func MustNewLeadService(opts ...option) *LeadService {
	s := &LeadService{
		clock: clock.NewSystem(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithLeadRepository sets the lead repository for the LeadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLeadRepository(repo ilead.ILeadRepository) option {
	return func(s *LeadService) {
		s.leadRepo = repo
	}
}

// WithOutboxRepository sets the outbox repository for the LeadService.
// Without one, lead captured events are not published.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *LeadService) {
		s.outboxRepo = repo
	}
}

// WithClock sets the clock for the LeadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(c clock.Clock) option {
	return func(s *LeadService) {
		s.clock = c
	}
}

// WithLogger sets the logger for the LeadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *LeadService) {
		s.log = log
	}
}

// SubmitLead persists the lead exactly as submitted and returns it with its
// assigned id.
func (s *LeadService) SubmitLead(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	if l.Name == "" {
		return lead.Lead{}, fmt.Errorf("lead name must not be empty: %w", errs.ErrInvalidInput)
	}
	if l.Email == "" {
		return lead.Lead{}, fmt.Errorf("lead email must not be empty: %w", errs.ErrInvalidInput)
	}

	created, err := s.leadRepo.Insert(ctx, l)
	if err != nil {
		return lead.Lead{}, fmt.Errorf("failed to submit lead: %w", err)
	}

	s.enqueueLeadCaptured(ctx, created)

	return created, nil
}

// enqueueLeadCaptured appends a lead captured event to the outbox. Delivery
// is best effort: the lead is already persisted, so failures are only logged.
func (s *LeadService) enqueueLeadCaptured(ctx context.Context, l lead.Lead) {
	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(l)
	if err != nil {
		s.log.Warn("Failed to marshal lead captured event", "error", err, "lead_id", l.ID)

		return
	}

	msg := outbox.NewMessage(outbox.QueueLeadCaptured, payload, s.clock.Now())
	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		s.log.Warn("Failed to enqueue lead captured event", "error", err, "lead_id", l.ID)
	}
}
