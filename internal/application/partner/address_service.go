package partner

import (
	"context"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddressService manages the shared address book
type AddressService struct {
	addressRepo partner.AddressRepository
	logger      *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo partner.AddressRepository, logger *zap.Logger) *AddressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{addressRepo: addressRepo, logger: logger}
}

// List returns addresses ordered by city and street
func (s *AddressService) List(ctx context.Context, search string) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindAll(ctx, shared.NewSearchFilter(search))
	if err != nil {
		return nil, err
	}
	out := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = ToAddressResponse(a)
	}
	return out, nil
}

// GetByID returns an address by ID
func (s *AddressService) GetByID(ctx context.Context, id uuid.UUID) (*AddressResponse, error) {
	a, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAddressResponse(a)
	return &resp, nil
}

// Create creates a new address
func (s *AddressService) Create(ctx context.Context, req AddressRequest) (*AddressResponse, error) {
	a, err := partner.NewAddress(req.fields())
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAddressResponse(a)
	return &resp, nil
}

// Update replaces an address
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	a, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(req.fields()); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAddressResponse(a)
	return &resp, nil
}

// Delete removes an address that no partner refers to
func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.addressRepo.FindByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.addressRepo.CountPartnersUsing(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return shared.InvalidStatef("Cannot delete address: it is currently in use by %d partner(s)", inUse)
	}
	if err := s.addressRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.For(ctx, s.logger).Info("Address deleted", zap.String("address_id", id.String()))
	return nil
}

// Countries returns the selectable countries
func (s *AddressService) Countries() []CountryResponse {
	return Countries()
}

// AddressDetailService links partners to addresses
type AddressDetailService struct {
	detailRepo  partner.AddressDetailRepository
	partnerRepo partner.PartnerRepository
	addressRepo partner.AddressRepository
}

// NewAddressDetailService creates a new AddressDetailService
func NewAddressDetailService(
	detailRepo partner.AddressDetailRepository,
	partnerRepo partner.PartnerRepository,
	addressRepo partner.AddressRepository,
) *AddressDetailService {
	return &AddressDetailService{
		detailRepo:  detailRepo,
		partnerRepo: partnerRepo,
		addressRepo: addressRepo,
	}
}

// ListByPartner returns the partner's addresses, primary first
func (s *AddressDetailService) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]AddressDetailResponse, error) {
	details, err := s.detailRepo.FindByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]AddressDetailResponse, len(details))
	for i, d := range details {
		out[i] = ToAddressDetailResponse(d)
	}
	return out, nil
}

// Create links an existing address to a partner
func (s *AddressDetailService) Create(ctx context.Context, partnerID, addressID uuid.UUID, req AddressDetailRequest) (*AddressDetailResponse, error) {
	if err := requirePartner(ctx, s.partnerRepo, partnerID); err != nil {
		return nil, err
	}
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NotFoundf("Address not found with id: %s", addressID)
		}
		return nil, err
	}

	d, err := partner.NewAddressDetail(partnerID, addressID, partner.AddressType(req.AddressType), req.Primary)
	if err != nil {
		return nil, err
	}
	if err := s.detailRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	d.Address = address

	resp := ToAddressDetailResponse(d)
	return &resp, nil
}

// Update changes the role of a partner address
func (s *AddressDetailService) Update(ctx context.Context, partnerID, id uuid.UUID, req AddressDetailRequest) (*AddressDetailResponse, error) {
	d, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	if err := d.Update(partner.AddressType(req.AddressType), req.Primary); err != nil {
		return nil, err
	}
	if err := s.detailRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToAddressDetailResponse(d)
	return &resp, nil
}

// Delete unlinks an address from a partner; the address itself is kept
func (s *AddressDetailService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, partnerID, id); err != nil {
		return err
	}
	return s.detailRepo.Delete(ctx, id)
}

func (s *AddressDetailService) findOwned(ctx context.Context, partnerID, id uuid.UUID) (*partner.AddressDetail, error) {
	d, err := s.detailRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.PartnerID != partnerID {
		return nil, shared.NotFoundf("Address detail not found for partner")
	}
	return d, nil
}
