package partner

import (
	"context"
	"testing"
	"time"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRelationshipTypeService(t *testing.T) {
	ctx := context.Background()

	t.Run("create inactive type", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		cache := new(MockListCache)
		svc := NewRelationshipTypeService(repo, cache, nil)
		repo.On("ExistsByName", ctx, "Supplier of").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.RelationshipType")).Return(nil)
		cache.On("Invalidate", ctx, []string{cacheKeyRelationshipTypes, cacheKeyActiveRelTypes}).Return(nil)

		resp, err := svc.Create(ctx, RelationshipTypeRequest{Name: "Supplier of", Active: boolPtr(false)})

		require.NoError(t, err)
		assert.False(t, resp.Active)
		cache.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		svc := NewRelationshipTypeService(repo, nil, nil)
		repo.On("ExistsByName", ctx, "Parent").Return(true, nil)

		_, err := svc.Create(ctx, RelationshipTypeRequest{Name: "Parent"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("update keeps active unless given", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		svc := NewRelationshipTypeService(repo, nil, nil)
		rt, err := partner.NewRelationshipType("Parent", "", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, rt.ID).Return(rt, nil)
		repo.On("ExistsByName", ctx, "Parent company").Return(false, nil)
		repo.On("Save", ctx, rt).Return(nil)

		resp, err := svc.Update(ctx, rt.ID, RelationshipTypeRequest{Name: "Parent company", ColorHex: "#123456"})

		require.NoError(t, err)
		assert.True(t, resp.Active)
		assert.Equal(t, "Parent company", resp.Name)
	})

	t.Run("active only list uses its own cache key", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		cache := new(MockListCache)
		svc := NewRelationshipTypeService(repo, cache, nil)
		cache.On("GetOrLoad", ctx, cacheKeyActiveRelTypes, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.List(ctx, "", true)

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("search without cache", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		svc := NewRelationshipTypeService(repo, nil, nil)
		rt, err := partner.NewRelationshipType("Parent", "", "")
		require.NoError(t, err)
		repo.On("FindAll", ctx, shared.Filter{Search: "par", ActiveOnly: true}).Return([]*partner.RelationshipType{rt}, nil)

		list, err := svc.List(ctx, "par", true)

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Parent", list[0].Name)
	})

	t.Run("delete rejected while used", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		svc := NewRelationshipTypeService(repo, nil, nil)
		rt, err := partner.NewRelationshipType("Parent", "", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, rt.ID).Return(rt, nil)
		repo.On("CountUsages", ctx, rt.ID).Return(int64(1), nil)

		err = svc.Delete(ctx, rt.ID)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("get by name", func(t *testing.T) {
		repo := new(MockRelationshipTypeRepository)
		svc := NewRelationshipTypeService(repo, nil, nil)
		repo.On("FindByName", ctx, "nobody").Return(nil, shared.ErrNotFound)

		_, err := svc.GetByName(ctx, "nobody")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPartnerRelationshipService(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	setup := func() (*PartnerRelationshipService, *MockRelationshipRepository, *MockRelationshipTypeRepository, *MockPartnerRepository) {
		rels := new(MockRelationshipRepository)
		types := new(MockRelationshipTypeRepository)
		partners := new(MockPartnerRepository)
		svc := NewPartnerRelationshipService(rels, types, partners)
		svc.now = func() time.Time { return today }
		return svc, rels, types, partners
	}

	t.Run("create", func(t *testing.T) {
		svc, rels, types, partners := setup()
		from, to := uuid.New(), uuid.New()
		rt, err := partner.NewRelationshipType("Employer", "", "")
		require.NoError(t, err)
		partners.On("ExistsByID", ctx, from).Return(true, nil)
		partners.On("ExistsByID", ctx, to).Return(true, nil)
		types.On("FindByID", ctx, rt.ID).Return(rt, nil)
		rels.On("Save", ctx, mock.AnythingOfType("*partner.Relationship")).Return(nil)

		resp, err := svc.Create(ctx, from, to, RelationshipRequest{
			RelationshipTypeID: rt.ID,
			EffectiveFrom:      strPtr("2020-01-01"),
			EffectiveTo:        strPtr("2023-12-31"),
		})

		require.NoError(t, err)
		assert.Equal(t, from, resp.FromPartnerID)
		require.NotNil(t, resp.RelationshipType)
		assert.Equal(t, "Employer", resp.RelationshipType.Name)
		assert.Equal(t, "2023-12-31", *resp.EffectiveTo)
		assert.False(t, resp.Current)
	})

	t.Run("self relation rejected", func(t *testing.T) {
		svc, rels, types, partners := setup()
		id := uuid.New()
		rt, err := partner.NewRelationshipType("Employer", "", "")
		require.NoError(t, err)
		partners.On("ExistsByID", ctx, id).Return(true, nil)
		types.On("FindByID", ctx, rt.ID).Return(rt, nil)

		_, err = svc.Create(ctx, id, id, RelationshipRequest{RelationshipTypeID: rt.ID})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		rels.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		svc, _, types, partners := setup()
		from, to := uuid.New(), uuid.New()
		rt, err := partner.NewRelationshipType("Employer", "", "")
		require.NoError(t, err)
		partners.On("ExistsByID", ctx, mock.Anything).Return(true, nil)
		types.On("FindByID", ctx, rt.ID).Return(rt, nil)

		_, err = svc.Create(ctx, from, to, RelationshipRequest{
			RelationshipTypeID: rt.ID,
			EffectiveFrom:      strPtr("2020-01-01"),
			EffectiveTo:        strPtr("2019-01-01"),
		})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("missing related partner", func(t *testing.T) {
		svc, _, _, partners := setup()
		from, to := uuid.New(), uuid.New()
		partners.On("ExistsByID", ctx, from).Return(true, nil)
		partners.On("ExistsByID", ctx, to).Return(false, nil)

		_, err := svc.Create(ctx, from, to, RelationshipRequest{RelationshipTypeID: uuid.New()})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing type", func(t *testing.T) {
		svc, _, types, partners := setup()
		typeID := uuid.New()
		partners.On("ExistsByID", ctx, mock.Anything).Return(true, nil)
		types.On("FindByID", ctx, typeID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, uuid.New(), uuid.New(), RelationshipRequest{RelationshipTypeID: typeID})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Relationship type not found")
	})

	t.Run("list marks current edges", func(t *testing.T) {
		svc, rels, _, _ := setup()
		partnerID := uuid.New()
		start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
		r, err := partner.NewRelationship(partnerID, uuid.New(), partner.RelationshipFields{TypeID: uuid.New(), EffectiveFrom: &start})
		require.NoError(t, err)
		rels.On("FindByPartner", ctx, partnerID).Return([]*partner.Relationship{r}, nil)

		list, err := svc.ListByPartner(ctx, partnerID)

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].Current)
	})

	t.Run("delete requires involvement", func(t *testing.T) {
		svc, rels, _, _ := setup()
		r, err := partner.NewRelationship(uuid.New(), uuid.New(), partner.RelationshipFields{TypeID: uuid.New()})
		require.NoError(t, err)
		rels.On("FindByID", ctx, r.ID).Return(r, nil)
		rels.On("Delete", ctx, r.ID).Return(nil)

		assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), r.ID), shared.ErrNotFound)
		assert.NoError(t, svc.Delete(ctx, r.ToPartnerID, r.ID))
		rels.AssertNumberOfCalls(t, "Delete", 1)
	})
}
