package partner

import (
	"context"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactDetailService manages the ways of reaching a partner
type ContactDetailService struct {
	contactRepo partner.ContactDetailRepository
	partnerRepo partner.PartnerRepository
}

// NewContactDetailService creates a new ContactDetailService
func NewContactDetailService(contactRepo partner.ContactDetailRepository, partnerRepo partner.PartnerRepository) *ContactDetailService {
	return &ContactDetailService{
		contactRepo: contactRepo,
		partnerRepo: partnerRepo,
	}
}

// ListByPartner returns contacts primary first, then by type
func (s *ContactDetailService) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]ContactDetailResponse, error) {
	contacts, err := s.contactRepo.FindByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return ToContactDetailResponses(contacts), nil
}

// ListByPartnerAndType returns the partner's contacts of one type
func (s *ContactDetailService) ListByPartnerAndType(ctx context.Context, partnerID uuid.UUID, contactType string) ([]ContactDetailResponse, error) {
	ct, err := partner.ParseContactType(contactType)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.FindByPartnerAndType(ctx, partnerID, ct)
	if err != nil {
		return nil, err
	}
	return ToContactDetailResponses(contacts), nil
}

// GetByID returns a contact of the partner
func (s *ContactDetailService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*ContactDetailResponse, error) {
	c, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToContactDetailResponse(c)
	return &resp, nil
}

// PrimaryFor returns the primary contact of a type
func (s *ContactDetailService) PrimaryFor(ctx context.Context, partnerID uuid.UUID, contactType string) (*ContactDetailResponse, error) {
	ct, err := partner.ParseContactType(contactType)
	if err != nil {
		return nil, err
	}
	c, err := s.contactRepo.FindPrimary(ctx, partnerID, ct)
	if err != nil {
		return nil, err
	}
	resp := ToContactDetailResponse(c)
	return &resp, nil
}

// Create adds a contact to a partner
func (s *ContactDetailService) Create(ctx context.Context, partnerID uuid.UUID, req ContactDetailRequest) (*ContactDetailResponse, error) {
	if err := requirePartner(ctx, s.partnerRepo, partnerID); err != nil {
		return nil, err
	}
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	c, err := partner.NewContactDetail(partnerID, fields)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToContactDetailResponse(c)
	return &resp, nil
}

// Update replaces a contact of the partner
func (s *ContactDetailService) Update(ctx context.Context, partnerID, id uuid.UUID, req ContactDetailRequest) (*ContactDetailResponse, error) {
	c, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	if err := c.Update(fields); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToContactDetailResponse(c)
	return &resp, nil
}

// Search matches contact values and labels across all partners.
// An empty term yields an empty list.
func (s *ContactDetailService) Search(ctx context.Context, term string) ([]ContactDetailResponse, error) {
	if strings.TrimSpace(term) == "" {
		return []ContactDetailResponse{}, nil
	}
	contacts, err := s.contactRepo.Search(ctx, shared.NewSearchFilter(term))
	if err != nil {
		return nil, err
	}
	return ToContactDetailResponses(contacts), nil
}

// Delete removes a contact of the partner
func (s *ContactDetailService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, partnerID, id); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, id)
}

func (s *ContactDetailService) findOwned(ctx context.Context, partnerID, id uuid.UUID) (*partner.ContactDetail, error) {
	c, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.PartnerID != partnerID {
		return nil, shared.NotFoundf("Contact detail not found for partner")
	}
	return c, nil
}
