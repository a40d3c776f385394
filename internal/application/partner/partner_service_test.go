package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type partnerServiceMocks struct {
	partners  *MockPartnerRepository
	types     *MockPartnerTypeRepository
	addresses *MockAddressDetailRepository
	contacts  *MockContactDetailRepository
	tags      *MockPartnerTagRepository
}

func newPartnerServiceForTest() (*PartnerService, *partnerServiceMocks) {
	m := &partnerServiceMocks{
		partners:  new(MockPartnerRepository),
		types:     new(MockPartnerTypeRepository),
		addresses: new(MockAddressDetailRepository),
		contacts:  new(MockContactDetailRepository),
		tags:      new(MockPartnerTagRepository),
	}
	svc := NewPartnerService(m.partners, m.types, m.addresses, m.contacts, m.tags, zap.NewNop())
	return svc, m
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func testPerson(t *testing.T, seq int64) *partner.Partner {
	t.Helper()
	p, err := partner.NewNaturalPerson(partner.NaturalPerson{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}, "")
	require.NoError(t, err)
	p.NumberSeq = seq
	return p
}

func testCompany(t *testing.T, seq int64, legalName string) *partner.Partner {
	t.Helper()
	p, err := partner.NewLegalEntity(partner.LegalEntity{LegalName: legalName}, "")
	require.NoError(t, err)
	p.NumberSeq = seq
	return p
}

func TestPartnerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("natural person gets the next number", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		m.partners.On("Create", mock.Anything, mock.AnythingOfType("*partner.Partner")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*partner.Partner).NumberSeq = 7
			}).
			Return(nil)

		first := gofakeit.FirstName()
		resp, err := svc.Create(ctx, PartnerRequest{
			FirstName:   first,
			LastName:    "Lovelace",
			DateOfBirth: strPtr("1815-12-10"),
			Active:      boolPtr(false),
		})

		require.NoError(t, err)
		assert.Equal(t, "P00000007", resp.PartnerNumber)
		assert.Equal(t, string(partner.KindNaturalPerson), resp.Kind)
		assert.Equal(t, first+" Lovelace", resp.DisplayName)
		assert.True(t, resp.Active)
		require.NotNil(t, resp.DateOfBirth)
		assert.Equal(t, "1815-12-10", *resp.DateOfBirth)
		m.partners.AssertExpectations(t)
	})

	t.Run("legal name only makes a legal entity", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		m.partners.On("Create", mock.Anything, mock.AnythingOfType("*partner.Partner")).Return(nil)

		resp, err := svc.Create(ctx, PartnerRequest{LegalName: "Acme AG", TradingName: "Acme", Jurisdiction: "CH"})

		require.NoError(t, err)
		assert.Equal(t, string(partner.KindLegalEntity), resp.Kind)
		assert.Equal(t, "Acme", resp.DisplayName)
		assert.Equal(t, "CH", resp.Jurisdiction)
	})

	t.Run("no names is rejected", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()

		_, err := svc.Create(ctx, PartnerRequest{Notes: "nobody"})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "Cannot determine partner type")
		m.partners.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		svc, _ := newPartnerServiceForTest()

		_, err := svc.Create(ctx, PartnerRequest{LegalName: "Acme", IncorporationDate: strPtr("31/12/2020")})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("partner type is assigned", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		pt, err := partner.NewPartnerType("supplier", "")
		require.NoError(t, err)
		m.types.On("FindByID", mock.Anything, pt.ID).Return(pt, nil)
		m.partners.On("Create", mock.Anything, mock.AnythingOfType("*partner.Partner")).Return(nil)

		resp, err := svc.Create(ctx, PartnerRequest{LegalName: "Acme", PartnerTypeID: &pt.ID})

		require.NoError(t, err)
		require.NotNil(t, resp.PartnerType)
		assert.Equal(t, "SUPPLIER", resp.PartnerType.Code)
	})

	t.Run("unknown partner type", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		id := uuid.New()
		m.types.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, PartnerRequest{LegalName: "Acme", PartnerTypeID: &id})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Partner type not found")
	})

	t.Run("repository failure is returned", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		m.partners.On("Create", mock.Anything, mock.AnythingOfType("*partner.Partner")).Return(errors.New("db down"))

		_, err := svc.Create(ctx, PartnerRequest{LastName: "Smith"})

		assert.EqualError(t, err, "db down")
	})
}

func TestPartnerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("switching kind keeps the number", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		existing := testPerson(t, 12)
		created := existing.CreatedAt
		m.partners.On("FindByID", ctx, existing.ID).Return(existing, nil)
		m.partners.On("Save", ctx, existing).Return(nil)

		resp, err := svc.Update(ctx, existing.ID, PartnerRequest{LegalName: "Smith Holdings", Active: boolPtr(false)})

		require.NoError(t, err)
		assert.Equal(t, "P00000012", resp.PartnerNumber)
		assert.Equal(t, string(partner.KindLegalEntity), resp.Kind)
		assert.Empty(t, resp.FirstName)
		assert.False(t, resp.Active)
		assert.Equal(t, created, resp.CreatedAt)
		assert.Nil(t, existing.Person)
	})

	t.Run("active left untouched when omitted", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		existing := testCompany(t, 3, "Acme")
		m.partners.On("FindByID", ctx, existing.ID).Return(existing, nil)
		m.partners.On("Save", ctx, existing).Return(nil)

		resp, err := svc.Update(ctx, existing.ID, PartnerRequest{LegalName: "Acme Ltd", Notes: "renamed"})

		require.NoError(t, err)
		assert.True(t, resp.Active)
		assert.Equal(t, "renamed", resp.Notes)
	})

	t.Run("unknown partner", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		id := uuid.New()
		m.partners.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, id, PartnerRequest{LegalName: "Acme"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.partners.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPartnerService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("enriches rows with preferred address, contacts and tags", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		person := testPerson(t, 1)
		company := testCompany(t, 2, "Acme AG")
		ids := []uuid.UUID{person.ID, company.ID}

		shipping, err := partner.NewAddress(partner.AddressFields{StreetLine1: "1 Dock Rd", City: "Basel"})
		require.NoError(t, err)
		billing, err := partner.NewAddress(partner.AddressFields{StreetLine1: "5 Main St", PostalCode: "8000", City: "Zurich", CountryCode: "ch"})
		require.NoError(t, err)
		shipDetail, err := partner.NewAddressDetail(company.ID, shipping.ID, partner.AddressTypeShipping, false)
		require.NoError(t, err)
		shipDetail.Address = shipping
		billDetail, err := partner.NewAddressDetail(company.ID, billing.ID, partner.AddressTypeBilling, false)
		require.NoError(t, err)
		billDetail.Address = billing

		email := gofakeit.Email()
		secondary, err := partner.NewContactDetail(company.ID, partner.ContactFields{ContactType: partner.ContactTypeEmail, Value: "a@example.com"})
		require.NoError(t, err)
		primary, err := partner.NewContactDetail(company.ID, partner.ContactFields{ContactType: partner.ContactTypeEmail, Value: email, Primary: true})
		require.NoError(t, err)

		vip, err := partner.NewTag("VIP", "", "")
		require.NoError(t, err)

		m.partners.On("FindAll", ctx, shared.NewSearchFilter("a")).Return([]*partner.Partner{person, company}, nil)
		m.addresses.On("FindByPartners", ctx, ids).Return(map[uuid.UUID][]*partner.AddressDetail{
			company.ID: {shipDetail, billDetail},
		}, nil)
		m.contacts.On("FindByPartners", ctx, ids).Return(map[uuid.UUID][]*partner.ContactDetail{
			company.ID: {secondary, primary},
		}, nil)
		m.tags.On("FindByPartners", ctx, ids).Return(map[uuid.UUID][]*partner.PartnerTag{
			company.ID: {partner.NewPartnerTag(company.ID, vip, "")},
		}, nil)

		results, err := svc.Search(ctx, "a")

		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, person.Person.FirstName, results[0].FirstName)
		assert.Empty(t, results[0].AddressLine)
		assert.NotNil(t, results[0].Tags)
		assert.Empty(t, results[0].Tags)

		row := results[1]
		assert.Equal(t, "P00000002", row.PartnerNumber)
		assert.Equal(t, string(partner.KindLegalEntity), row.PartnerType)
		assert.Equal(t, "Acme AG", row.LegalName)
		assert.Equal(t, "5 Main St, 8000 Zurich, CH", row.AddressLine)
		assert.Equal(t, email, row.Email)
		assert.Empty(t, row.Phone)
		require.Len(t, row.Tags, 1)
		assert.Equal(t, "VIP", row.Tags[0].Name)
	})

	t.Run("no partners skips detail lookups", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		m.partners.On("FindAll", ctx, shared.Filter{}).Return([]*partner.Partner{}, nil)

		results, err := svc.Search(ctx, "  ")

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
		m.addresses.AssertNotCalled(t, "FindByPartners", mock.Anything, mock.Anything)
	})

	t.Run("detail lookup failure", func(t *testing.T) {
		svc, m := newPartnerServiceForTest()
		p := testPerson(t, 1)
		m.partners.On("FindAll", ctx, shared.Filter{}).Return([]*partner.Partner{p}, nil)
		m.addresses.On("FindByPartners", ctx, []uuid.UUID{p.ID}).Return(nil, errors.New("boom"))

		_, err := svc.Search(ctx, "")

		assert.EqualError(t, err, "boom")
	})
}

func TestPartnerService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	svc, m := newPartnerServiceForTest()
	p := testCompany(t, 9, "Globex")

	m.partners.On("FindByID", ctx, p.ID).Return(p, nil)
	m.partners.On("FindAll", ctx, shared.NewSearchFilter("glob")).Return([]*partner.Partner{p}, nil)
	m.partners.On("Delete", ctx, p.ID).Return(nil)
	missing := uuid.New()
	m.partners.On("Delete", ctx, missing).Return(shared.ErrNotFound)

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.DisplayName)

	list, err := svc.List(ctx, "glob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P00000009", list[0].PartnerNumber)

	assert.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, missing), shared.ErrNotFound)
}
