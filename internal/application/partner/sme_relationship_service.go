package partner

import (
	"context"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// SMERelationshipService manages the commercial relationships held with a partner
type SMERelationshipService struct {
	smeRepo     partner.SMERelationshipRepository
	partnerRepo partner.PartnerRepository
}

// NewSMERelationshipService creates a new SMERelationshipService
func NewSMERelationshipService(smeRepo partner.SMERelationshipRepository, partnerRepo partner.PartnerRepository) *SMERelationshipService {
	return &SMERelationshipService{smeRepo: smeRepo, partnerRepo: partnerRepo}
}

// ListByPartner returns the partner's SME relationships, highest priority first
func (s *SMERelationshipService) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]SMERelationshipResponse, error) {
	list, err := s.smeRepo.FindByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]SMERelationshipResponse, len(list))
	for i, r := range list {
		out[i] = ToSMERelationshipResponse(r)
	}
	return out, nil
}

// GetByID returns one SME relationship of the partner
func (s *SMERelationshipService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*SMERelationshipResponse, error) {
	r, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSMERelationshipResponse(r)
	return &resp, nil
}

// Create adds an SME relationship to a partner
func (s *SMERelationshipService) Create(ctx context.Context, partnerID uuid.UUID, req SMERelationshipRequest) (*SMERelationshipResponse, error) {
	if err := requirePartner(ctx, s.partnerRepo, partnerID); err != nil {
		return nil, err
	}
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	r, err := partner.NewSMERelationship(partnerID, fields)
	if err != nil {
		return nil, err
	}
	if err := s.smeRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToSMERelationshipResponse(r)
	return &resp, nil
}

// Update replaces an SME relationship of the partner
func (s *SMERelationshipService) Update(ctx context.Context, partnerID, id uuid.UUID, req SMERelationshipRequest) (*SMERelationshipResponse, error) {
	r, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	if err := r.Update(fields); err != nil {
		return nil, err
	}
	if err := s.smeRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToSMERelationshipResponse(r)
	return &resp, nil
}

// Delete removes an SME relationship of the partner
func (s *SMERelationshipService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, partnerID, id); err != nil {
		return err
	}
	return s.smeRepo.Delete(ctx, id)
}

func (s *SMERelationshipService) findOwned(ctx context.Context, partnerID, id uuid.UUID) (*partner.SMERelationship, error) {
	r, err := s.smeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.PartnerID != partnerID {
		return nil, shared.NotFoundf("SME relationship not found for partner")
	}
	return r, nil
}
