package partner

import (
	"context"
	"io"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPartnerRepository is a mock implementation of PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Partner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Create(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPartnerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAddressRepository is a mock implementation of AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Address), args.Error(1)
}

func (m *MockAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Address, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, a *partner.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddressRepository) CountPartnersUsing(ctx context.Context, addressID uuid.UUID) (int64, error) {
	args := m.Called(ctx, addressID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAddressDetailRepository is a mock implementation of AddressDetailRepository
type MockAddressDetailRepository struct {
	mock.Mock
}

func (m *MockAddressDetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.AddressDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.AddressDetail), args.Error(1)
}

func (m *MockAddressDetailRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.AddressDetail, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.AddressDetail), args.Error(1)
}

func (m *MockAddressDetailRepository) FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*partner.AddressDetail, error) {
	args := m.Called(ctx, partnerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*partner.AddressDetail), args.Error(1)
}

func (m *MockAddressDetailRepository) Save(ctx context.Context, d *partner.AddressDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockAddressDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContactDetailRepository is a mock implementation of ContactDetailRepository
type MockContactDetailRepository struct {
	mock.Mock
}

func (m *MockContactDetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ContactDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ContactDetail), args.Error(1)
}

func (m *MockContactDetailRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.ContactDetail, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.ContactDetail), args.Error(1)
}

func (m *MockContactDetailRepository) FindByPartnerAndType(ctx context.Context, partnerID uuid.UUID, contactType partner.ContactType) ([]*partner.ContactDetail, error) {
	args := m.Called(ctx, partnerID, contactType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.ContactDetail), args.Error(1)
}

func (m *MockContactDetailRepository) FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*partner.ContactDetail, error) {
	args := m.Called(ctx, partnerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*partner.ContactDetail), args.Error(1)
}

func (m *MockContactDetailRepository) FindPrimary(ctx context.Context, partnerID uuid.UUID, contactType partner.ContactType) (*partner.ContactDetail, error) {
	args := m.Called(ctx, partnerID, contactType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ContactDetail), args.Error(1)
}

func (m *MockContactDetailRepository) Search(ctx context.Context, filter shared.Filter) ([]*partner.ContactDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.ContactDetail), args.Error(1)
}

func (m *MockContactDetailRepository) Save(ctx context.Context, c *partner.ContactDetail) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByName(ctx context.Context, name string) (*partner.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Tag, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, t *partner.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTagRepository) CountAssignments(ctx context.Context, tagID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPartnerTagRepository is a mock implementation of PartnerTagRepository
type MockPartnerTagRepository struct {
	mock.Mock
}

func (m *MockPartnerTagRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.PartnerTag, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.PartnerTag), args.Error(1)
}

func (m *MockPartnerTagRepository) FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*partner.PartnerTag, error) {
	args := m.Called(ctx, partnerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*partner.PartnerTag), args.Error(1)
}

func (m *MockPartnerTagRepository) Exists(ctx context.Context, partnerID, tagID uuid.UUID) (bool, error) {
	args := m.Called(ctx, partnerID, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerTagRepository) Save(ctx context.Context, pt *partner.PartnerTag) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *MockPartnerTagRepository) Delete(ctx context.Context, partnerID, tagID uuid.UUID) error {
	args := m.Called(ctx, partnerID, tagID)
	return args.Error(0)
}

// MockRelationshipTypeRepository is a mock implementation of RelationshipTypeRepository
type MockRelationshipTypeRepository struct {
	mock.Mock
}

func (m *MockRelationshipTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.RelationshipType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.RelationshipType), args.Error(1)
}

func (m *MockRelationshipTypeRepository) FindByName(ctx context.Context, name string) (*partner.RelationshipType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.RelationshipType), args.Error(1)
}

func (m *MockRelationshipTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.RelationshipType, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.RelationshipType), args.Error(1)
}

func (m *MockRelationshipTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipTypeRepository) Save(ctx context.Context, rt *partner.RelationshipType) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRelationshipTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRelationshipTypeRepository) CountUsages(ctx context.Context, typeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, typeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRelationshipRepository is a mock implementation of RelationshipRepository
type MockRelationshipRepository struct {
	mock.Mock
}

func (m *MockRelationshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Relationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Relationship), args.Error(1)
}

func (m *MockRelationshipRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.Relationship, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Relationship), args.Error(1)
}

func (m *MockRelationshipRepository) Save(ctx context.Context, r *partner.Relationship) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRelationshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSMERelationshipRepository is a mock implementation of SMERelationshipRepository
type MockSMERelationshipRepository struct {
	mock.Mock
}

func (m *MockSMERelationshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.SMERelationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.SMERelationship), args.Error(1)
}

func (m *MockSMERelationshipRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.SMERelationship, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.SMERelationship), args.Error(1)
}

func (m *MockSMERelationshipRepository) Save(ctx context.Context, s *partner.SMERelationship) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSMERelationshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPartnerTypeRepository is a mock implementation of PartnerTypeRepository
type MockPartnerTypeRepository struct {
	mock.Mock
}

func (m *MockPartnerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.PartnerType), args.Error(1)
}

func (m *MockPartnerTypeRepository) FindAll(ctx context.Context) ([]*partner.PartnerType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.PartnerType), args.Error(1)
}

func (m *MockPartnerTypeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerTypeRepository) Save(ctx context.Context, pt *partner.PartnerType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

// =============================================================================
// Mock Ports
// =============================================================================

// MockListCache is a mock implementation of ListCache
type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) GetOrLoad(ctx context.Context, key string, dest any, load func(ctx context.Context) (any, error)) error {
	args := m.Called(ctx, key, dest, load)
	return args.Error(0)
}

func (m *MockListCache) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// MockExportSink records what was written
type MockExportSink struct {
	mock.Mock
	written string
}

func (m *MockExportSink) Write(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.written = string(data)
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
