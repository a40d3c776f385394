package persistence

import (
	"context"
	"sort"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find tag", err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a tag by name, ignoring case
func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*partner.Tag, error) {
	var model models.TagModel
	err := r.db.WithContext(ctx).
		Where("LOWER(tag_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error
	if err != nil {
		return nil, translateError("find tag", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns tags ordered by name
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Tag, error) {
	query := r.db.WithContext(ctx).Model(&models.TagModel{})
	if filter.HasSearch() {
		where, args := likeAny(filter.SearchPattern(), "tag_name", "description")
		query = query.Where(where, args...)
	}
	var rows []models.TagModel
	if err := query.Order("tag_name ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list tags", err)
	}
	result := make([]*partner.Tag, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// ExistsByName checks whether a tag with the name exists, ignoring case
func (r *GormTagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TagModel{}).
		Where("LOWER(tag_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	if err != nil {
		return false, translateError("check tag", err)
	}
	return count > 0, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, t *partner.Tag) error {
	model := &models.TagModel{}
	model.FromDomain(t)
	return translateError("save tag", r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a tag
func (r *GormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.TagModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete tag", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountAssignments counts partners the tag is attached to
func (r *GormTagRepository) CountAssignments(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PartnerTagModel{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
		return 0, translateError("count tag assignments", err)
	}
	return count, nil
}

// GormPartnerTagRepository implements PartnerTagRepository using GORM
type GormPartnerTagRepository struct {
	db *gorm.DB
}

// NewGormPartnerTagRepository creates a new GormPartnerTagRepository
func NewGormPartnerTagRepository(db *gorm.DB) *GormPartnerTagRepository {
	return &GormPartnerTagRepository{db: db}
}

// FindByPartner returns assignments with tags loaded, ordered by tag name
func (r *GormPartnerTagRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.PartnerTag, error) {
	byPartner, err := r.FindByPartners(ctx, []uuid.UUID{partnerID})
	if err != nil {
		return nil, err
	}
	if tags := byPartner[partnerID]; tags != nil {
		return tags, nil
	}
	return []*partner.PartnerTag{}, nil
}

// FindByPartners returns the tags of several partners keyed by partner ID
func (r *GormPartnerTagRepository) FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*partner.PartnerTag, error) {
	result := make(map[uuid.UUID][]*partner.PartnerTag, len(partnerIDs))
	if len(partnerIDs) == 0 {
		return result, nil
	}
	var rows []models.PartnerTagModel
	err := r.db.WithContext(ctx).
		Preload("Tag").
		Where("partner_id IN ?", partnerIDs).
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list partner tags", err)
	}
	for i := range rows {
		pt := rows[i].ToDomain()
		result[pt.PartnerID] = append(result[pt.PartnerID], pt)
	}
	for _, tags := range result {
		sort.SliceStable(tags, func(i, j int) bool {
			return strings.ToLower(tagName(tags[i])) < strings.ToLower(tagName(tags[j]))
		})
	}
	return result, nil
}

// Exists checks whether the tag is assigned to the partner
func (r *GormPartnerTagRepository) Exists(ctx context.Context, partnerID, tagID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PartnerTagModel{}).
		Where("partner_id = ? AND tag_id = ?", partnerID, tagID).
		Count(&count).Error
	if err != nil {
		return false, translateError("check partner tag", err)
	}
	return count > 0, nil
}

// Save inserts an assignment
func (r *GormPartnerTagRepository) Save(ctx context.Context, pt *partner.PartnerTag) error {
	model := &models.PartnerTagModel{}
	model.FromDomain(pt)
	return translateError("save partner tag", r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error)
}

// Delete removes an assignment
func (r *GormPartnerTagRepository) Delete(ctx context.Context, partnerID, tagID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("partner_id = ? AND tag_id = ?", partnerID, tagID).
		Delete(&models.PartnerTagModel{})
	if res.Error != nil {
		return translateError("delete partner tag", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func tagName(pt *partner.PartnerTag) string {
	if pt.Tag == nil {
		return ""
	}
	return pt.Tag.Name
}

var (
	_ partner.TagRepository        = (*GormTagRepository)(nil)
	_ partner.PartnerTagRepository = (*GormPartnerTagRepository)(nil)
)
