package partner

import (
	"context"
	"strings"
	"time"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RelationshipTypeService manages the kinds of partner relationships
type RelationshipTypeService struct {
	typeRepo partner.RelationshipTypeRepository
	cache    ListCache
	logger   *zap.Logger
}

// NewRelationshipTypeService creates a new RelationshipTypeService. cache may be nil.
func NewRelationshipTypeService(typeRepo partner.RelationshipTypeRepository, cache ListCache, logger *zap.Logger) *RelationshipTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelationshipTypeService{typeRepo: typeRepo, cache: cache, logger: logger}
}

// List returns relationship types ordered by name
func (s *RelationshipTypeService) List(ctx context.Context, search string, activeOnly bool) ([]RelationshipTypeResponse, error) {
	filter := shared.NewSearchFilter(search)
	filter.ActiveOnly = activeOnly
	load := func(ctx context.Context) ([]RelationshipTypeResponse, error) {
		types, err := s.typeRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]RelationshipTypeResponse, len(types))
		for i, rt := range types {
			out[i] = ToRelationshipTypeResponse(rt)
		}
		return out, nil
	}
	if filter.HasSearch() {
		return load(ctx)
	}
	key := cacheKeyRelationshipTypes
	if activeOnly {
		key = cacheKeyActiveRelTypes
	}
	return loadCached(ctx, s.cache, key, load)
}

// GetByID returns a relationship type by ID
func (s *RelationshipTypeService) GetByID(ctx context.Context, id uuid.UUID) (*RelationshipTypeResponse, error) {
	rt, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRelationshipTypeResponse(rt)
	return &resp, nil
}

// GetByName returns a relationship type by name, ignoring case
func (s *RelationshipTypeService) GetByName(ctx context.Context, name string) (*RelationshipTypeResponse, error) {
	rt, err := s.typeRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToRelationshipTypeResponse(rt)
	return &resp, nil
}

// Create creates a relationship type with a unique name
func (s *RelationshipTypeService) Create(ctx context.Context, req RelationshipTypeRequest) (*RelationshipTypeResponse, error) {
	if err := s.checkNameFree(ctx, req.Name); err != nil {
		return nil, err
	}
	rt, err := partner.NewRelationshipType(req.Name, req.Description, req.ColorHex)
	if err != nil {
		return nil, err
	}
	if req.Active != nil && !*req.Active {
		if err := rt.Update(req.Name, req.Description, req.ColorHex, false); err != nil {
			return nil, err
		}
	}
	if err := s.typeRepo.Save(ctx, rt); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToRelationshipTypeResponse(rt)
	return &resp, nil
}

// Update replaces a relationship type
func (s *RelationshipTypeService) Update(ctx context.Context, id uuid.UUID, req RelationshipTypeRequest) (*RelationshipTypeResponse, error) {
	rt, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(req.Name), rt.Name) {
		if err := s.checkNameFree(ctx, req.Name); err != nil {
			return nil, err
		}
	}
	active := rt.Active
	if req.Active != nil {
		active = *req.Active
	}
	if err := rt.Update(req.Name, req.Description, req.ColorHex, active); err != nil {
		return nil, err
	}
	if err := s.typeRepo.Save(ctx, rt); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToRelationshipTypeResponse(rt)
	return &resp, nil
}

// Delete removes a relationship type that no relationship uses
func (s *RelationshipTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	rt, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	used, err := s.typeRepo.CountUsages(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return shared.InvalidStatef("Cannot delete relationship type '%s': it is used by %d relationship(s)", rt.Name, used)
	}
	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	logger.For(ctx, s.logger).Info("Relationship type deleted", zap.String("relationship_type_id", id.String()))
	return nil
}

func (s *RelationshipTypeService) checkNameFree(ctx context.Context, name string) error {
	exists, err := s.typeRepo.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return shared.AlreadyExistsf("Relationship type with name '%s' already exists", strings.TrimSpace(name))
	}
	return nil
}

func (s *RelationshipTypeService) invalidate(ctx context.Context) {
	invalidate(ctx, s.cache, s.logger, cacheKeyRelationshipTypes, cacheKeyActiveRelTypes)
}

// PartnerRelationshipService manages typed edges between partners
type PartnerRelationshipService struct {
	relRepo     partner.RelationshipRepository
	typeRepo    partner.RelationshipTypeRepository
	partnerRepo partner.PartnerRepository
	now         func() time.Time
}

// NewPartnerRelationshipService creates a new PartnerRelationshipService
func NewPartnerRelationshipService(
	relRepo partner.RelationshipRepository,
	typeRepo partner.RelationshipTypeRepository,
	partnerRepo partner.PartnerRepository,
) *PartnerRelationshipService {
	return &PartnerRelationshipService{
		relRepo:     relRepo,
		typeRepo:    typeRepo,
		partnerRepo: partnerRepo,
		now:         time.Now,
	}
}

// ListByPartner returns relationships from or to the partner, newest first
func (s *PartnerRelationshipService) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]RelationshipResponse, error) {
	rels, err := s.relRepo.FindByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]RelationshipResponse, len(rels))
	for i, r := range rels {
		out[i] = ToRelationshipResponse(r, now)
	}
	return out, nil
}

// Create relates partnerID to relatedPartnerID
func (s *PartnerRelationshipService) Create(ctx context.Context, partnerID, relatedPartnerID uuid.UUID, req RelationshipRequest) (*RelationshipResponse, error) {
	if err := requirePartner(ctx, s.partnerRepo, partnerID); err != nil {
		return nil, err
	}
	if err := requirePartner(ctx, s.partnerRepo, relatedPartnerID); err != nil {
		return nil, err
	}
	rt, err := s.typeRepo.FindByID(ctx, req.RelationshipTypeID)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NotFoundf("Relationship type not found with id: %s", req.RelationshipTypeID)
		}
		return nil, err
	}

	from, err := parseDate("effectiveFrom", req.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("effectiveTo", req.EffectiveTo)
	if err != nil {
		return nil, err
	}
	r, err := partner.NewRelationship(partnerID, relatedPartnerID, partner.RelationshipFields{
		TypeID:        rt.ID,
		EffectiveFrom: from,
		EffectiveTo:   to,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.relRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	r.Type = rt

	resp := ToRelationshipResponse(r, s.now())
	return &resp, nil
}

// Delete removes a relationship the partner takes part in
func (s *PartnerRelationshipService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	r, err := s.relRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !r.Involves(partnerID) {
		return shared.NotFoundf("Relationship not found for partner")
	}
	return s.relRepo.Delete(ctx, id)
}
