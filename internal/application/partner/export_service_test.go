package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPartnerExportService_Export(t *testing.T) {
	ctx := context.Background()

	person, err := partner.NewNaturalPerson(partner.NaturalPerson{Title: "Dr.", FirstName: "Jane", LastName: "Doe"}, "")
	require.NoError(t, err)
	person.NumberSeq = 1
	company, err := partner.NewLegalEntity(partner.LegalEntity{LegalName: "Acme AG", TradingName: "Acme"}, "")
	require.NoError(t, err)
	company.NumberSeq = 2

	t.Run("writes one line per partner", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		sink := new(MockExportSink)
		svc := NewPartnerExportService(repo, sink, nil)
		repo.On("FindAll", mock.Anything, shared.Filter{}).Return([]*partner.Partner{person, company}, nil)
		sink.On("Write", mock.Anything).Return("/tmp/partners.txt", nil)

		resp, err := svc.Export(ctx)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/partners.txt", resp.Location)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "P00000001 Dr. Jane Doe\nP00000002 Acme\n", sink.written)
	})

	t.Run("empty export", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		sink := new(MockExportSink)
		svc := NewPartnerExportService(repo, sink, nil)
		repo.On("FindAll", mock.Anything, shared.Filter{}).Return([]*partner.Partner{}, nil)
		sink.On("Write", mock.Anything).Return("s3://exports/partners.txt", nil)

		resp, err := svc.Export(ctx)

		require.NoError(t, err)
		assert.Zero(t, resp.Count)
		assert.Empty(t, sink.written)
	})

	t.Run("sink failure", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		sink := new(MockExportSink)
		svc := NewPartnerExportService(repo, sink, nil)
		repo.On("FindAll", mock.Anything, shared.Filter{}).Return([]*partner.Partner{person}, nil)
		sink.On("Write", mock.Anything).Return("", errors.New("disk full"))

		_, err := svc.Export(ctx)

		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("repository failure skips the sink", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		sink := new(MockExportSink)
		svc := NewPartnerExportService(repo, sink, nil)
		repo.On("FindAll", mock.Anything, shared.Filter{}).Return(nil, errors.New("db down"))

		_, err := svc.Export(ctx)

		assert.Error(t, err)
		sink.AssertNotCalled(t, "Write", mock.Anything)
	})
}

func TestPartnerTypeService(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockPartnerTypeRepository)
		svc := NewPartnerTypeService(repo, nil, nil)
		repo.On("ExistsByCode", ctx, "supplier").Return(true, nil)

		_, err := svc.Create(ctx, PartnerTypeRequest{Code: "supplier"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Contains(t, err.Error(), "SUPPLIER")
	})

	t.Run("create and list", func(t *testing.T) {
		repo := new(MockPartnerTypeRepository)
		cache := new(MockListCache)
		svc := NewPartnerTypeService(repo, cache, nil)
		repo.On("ExistsByCode", ctx, "customer").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.PartnerType")).Return(nil)
		cache.On("Invalidate", ctx, []string{cacheKeyPartnerTypes}).Return(nil)

		resp, err := svc.Create(ctx, PartnerTypeRequest{Code: "customer", Description: "buys from us"})
		require.NoError(t, err)
		assert.Equal(t, "CUSTOMER", resp.Code)

		pt, err := partner.NewPartnerType("customer", "")
		require.NoError(t, err)
		repo.On("FindAll", ctx).Return([]*partner.PartnerType{pt}, nil)

		list, err := NewPartnerTypeService(repo, nil, nil).List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, pt.ID, list[0].ID)
	})
}
