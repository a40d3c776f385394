package partner

import (
	"context"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TagService manages tags
type TagService struct {
	tagRepo partner.TagRepository
	cache   ListCache
	logger  *zap.Logger
}

// NewTagService creates a new TagService. cache may be nil.
func NewTagService(tagRepo partner.TagRepository, cache ListCache, logger *zap.Logger) *TagService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagService{tagRepo: tagRepo, cache: cache, logger: logger}
}

// List returns tags ordered by name. The unfiltered list is cached.
func (s *TagService) List(ctx context.Context, search string) ([]TagResponse, error) {
	load := func(ctx context.Context) ([]TagResponse, error) {
		tags, err := s.tagRepo.FindAll(ctx, shared.NewSearchFilter(search))
		if err != nil {
			return nil, err
		}
		return ToTagResponses(tags), nil
	}
	if strings.TrimSpace(search) != "" {
		return load(ctx)
	}
	return loadCached(ctx, s.cache, cacheKeyTags, load)
}

// GetByID returns a tag by ID
func (s *TagService) GetByID(ctx context.Context, id uuid.UUID) (*TagResponse, error) {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTagResponse(t)
	return &resp, nil
}

// GetByName returns a tag by name, ignoring case
func (s *TagService) GetByName(ctx context.Context, name string) (*TagResponse, error) {
	t, err := s.tagRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToTagResponse(t)
	return &resp, nil
}

// Create creates a tag with a unique name
func (s *TagService) Create(ctx context.Context, req TagRequest) (*TagResponse, error) {
	if err := s.checkNameFree(ctx, req.Name); err != nil {
		return nil, err
	}
	t, err := partner.NewTag(req.Name, req.ColorHex, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.logger, cacheKeyTags)

	resp := ToTagResponse(t)
	return &resp, nil
}

// Update replaces a tag; a new name must not belong to another tag
func (s *TagService) Update(ctx context.Context, id uuid.UUID, req TagRequest) (*TagResponse, error) {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(req.Name), t.Name) {
		if err := s.checkNameFree(ctx, req.Name); err != nil {
			return nil, err
		}
	}
	if err := t.Update(req.Name, req.ColorHex, req.Description); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.logger, cacheKeyTags)

	resp := ToTagResponse(t)
	return &resp, nil
}

// Delete removes a tag that is not assigned to any partner
func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	assigned, err := s.tagRepo.CountAssignments(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return shared.InvalidStatef("Cannot delete tag '%s': it is assigned to %d partner(s)", t.Name, assigned)
	}
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.logger, cacheKeyTags)
	logger.For(ctx, s.logger).Info("Tag deleted", zap.String("tag_id", id.String()), zap.String("tag_name", t.Name))
	return nil
}

func (s *TagService) checkNameFree(ctx context.Context, name string) error {
	exists, err := s.tagRepo.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return shared.AlreadyExistsf("Tag with name '%s' already exists", strings.TrimSpace(name))
	}
	return nil
}

// PartnerTagService attaches tags to partners
type PartnerTagService struct {
	assignmentRepo partner.PartnerTagRepository
	partnerRepo    partner.PartnerRepository
	tagRepo        partner.TagRepository
}

// NewPartnerTagService creates a new PartnerTagService
func NewPartnerTagService(
	assignmentRepo partner.PartnerTagRepository,
	partnerRepo partner.PartnerRepository,
	tagRepo partner.TagRepository,
) *PartnerTagService {
	return &PartnerTagService{
		assignmentRepo: assignmentRepo,
		partnerRepo:    partnerRepo,
		tagRepo:        tagRepo,
	}
}

// TagsForPartner returns the partner's tags ordered by name
func (s *PartnerTagService) TagsForPartner(ctx context.Context, partnerID uuid.UUID) ([]PartnerTagResponse, error) {
	assignments, err := s.assignmentRepo.FindByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]PartnerTagResponse, len(assignments))
	for i, pt := range assignments {
		out[i] = ToPartnerTagResponse(pt)
	}
	return out, nil
}

// Assign attaches a tag to a partner
func (s *PartnerTagService) Assign(ctx context.Context, partnerID, tagID uuid.UUID, taggedBy string) (*PartnerTagResponse, error) {
	if err := requirePartner(ctx, s.partnerRepo, partnerID); err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NotFoundf("Tag not found with id: %s", tagID)
		}
		return nil, err
	}
	exists, err := s.assignmentRepo.Exists(ctx, partnerID, tagID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.AlreadyExistsf("Tag '%s' is already assigned to this partner", tag.Name)
	}

	pt := partner.NewPartnerTag(partnerID, tag, strings.TrimSpace(taggedBy))
	if err := s.assignmentRepo.Save(ctx, pt); err != nil {
		return nil, err
	}
	resp := ToPartnerTagResponse(pt)
	return &resp, nil
}

// Unassign detaches a tag from a partner
func (s *PartnerTagService) Unassign(ctx context.Context, partnerID, tagID uuid.UUID) error {
	if err := s.assignmentRepo.Delete(ctx, partnerID, tagID); err != nil {
		if isNotFound(err) {
			return shared.NotFoundf("Tag assignment not found for partner")
		}
		return err
	}
	return nil
}
