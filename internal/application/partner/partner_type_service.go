package partner

import (
	"context"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"go.uber.org/zap"
)

// PartnerTypeService manages partner type reference data
type PartnerTypeService struct {
	typeRepo partner.PartnerTypeRepository
	cache    ListCache
	logger   *zap.Logger
}

// NewPartnerTypeService creates a new PartnerTypeService. cache may be nil.
func NewPartnerTypeService(typeRepo partner.PartnerTypeRepository, cache ListCache, logger *zap.Logger) *PartnerTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerTypeService{typeRepo: typeRepo, cache: cache, logger: logger}
}

// List returns all partner types ordered by code
func (s *PartnerTypeService) List(ctx context.Context) ([]PartnerTypeResponse, error) {
	return loadCached(ctx, s.cache, cacheKeyPartnerTypes, func(ctx context.Context) ([]PartnerTypeResponse, error) {
		types, err := s.typeRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]PartnerTypeResponse, len(types))
		for i, pt := range types {
			out[i] = ToPartnerTypeResponse(pt)
		}
		return out, nil
	})
}

// Create adds a partner type with a unique code
func (s *PartnerTypeService) Create(ctx context.Context, req PartnerTypeRequest) (*PartnerTypeResponse, error) {
	exists, err := s.typeRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.AlreadyExistsf("Partner type '%s' already exists", strings.ToUpper(strings.TrimSpace(req.Code)))
	}
	pt, err := partner.NewPartnerType(req.Code, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.typeRepo.Save(ctx, pt); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.logger, cacheKeyPartnerTypes)

	resp := ToPartnerTypeResponse(pt)
	return &resp, nil
}
