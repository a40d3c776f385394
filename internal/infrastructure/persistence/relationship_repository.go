package persistence

import (
	"context"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRelationshipTypeRepository implements RelationshipTypeRepository using GORM
type GormRelationshipTypeRepository struct {
	db *gorm.DB
}

// NewGormRelationshipTypeRepository creates a new GormRelationshipTypeRepository
func NewGormRelationshipTypeRepository(db *gorm.DB) *GormRelationshipTypeRepository {
	return &GormRelationshipTypeRepository{db: db}
}

// FindByID finds a relationship type by its ID
func (r *GormRelationshipTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.RelationshipType, error) {
	var model models.RelationshipTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find relationship type", err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a relationship type by name, ignoring case
func (r *GormRelationshipTypeRepository) FindByName(ctx context.Context, name string) (*partner.RelationshipType, error) {
	var model models.RelationshipTypeModel
	err := r.db.WithContext(ctx).
		Where("LOWER(type_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error
	if err != nil {
		return nil, translateError("find relationship type", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns relationship types ordered by name
func (r *GormRelationshipTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.RelationshipType, error) {
	query := r.db.WithContext(ctx).Model(&models.RelationshipTypeModel{})
	if filter.HasSearch() {
		where, args := likeAny(filter.SearchPattern(), "type_name", "description")
		query = query.Where(where, args...)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.RelationshipTypeModel
	if err := query.Order("type_name ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list relationship types", err)
	}
	result := make([]*partner.RelationshipType, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// ExistsByName checks whether a type with the name exists, ignoring case
func (r *GormRelationshipTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RelationshipTypeModel{}).
		Where("LOWER(type_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	if err != nil {
		return false, translateError("check relationship type", err)
	}
	return count > 0, nil
}

// Save creates or updates a relationship type
func (r *GormRelationshipTypeRepository) Save(ctx context.Context, rt *partner.RelationshipType) error {
	model := &models.RelationshipTypeModel{}
	model.FromDomain(rt)
	return translateError("save relationship type", r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a relationship type
func (r *GormRelationshipTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.RelationshipTypeModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete relationship type", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountUsages counts relationships of the type
func (r *GormRelationshipTypeRepository) CountUsages(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PartnerRelationshipModel{}).
		Where("relationship_type_id = ?", typeID).
		Count(&count).Error
	if err != nil {
		return 0, translateError("count relationship type usage", err)
	}
	return count, nil
}

// GormRelationshipRepository implements RelationshipRepository using GORM
type GormRelationshipRepository struct {
	db *gorm.DB
}

// NewGormRelationshipRepository creates a new GormRelationshipRepository
func NewGormRelationshipRepository(db *gorm.DB) *GormRelationshipRepository {
	return &GormRelationshipRepository{db: db}
}

// FindByID loads a relationship with its type
func (r *GormRelationshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Relationship, error) {
	var model models.PartnerRelationshipModel
	if err := r.db.WithContext(ctx).Preload("RelationshipType").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find relationship", err)
	}
	return model.ToDomain(), nil
}

// FindByPartner returns edges from or to the partner, newest effective date first
func (r *GormRelationshipRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.Relationship, error) {
	var rows []models.PartnerRelationshipModel
	err := r.db.WithContext(ctx).Preload("RelationshipType").
		Where("from_partner_id = ? OR to_partner_id = ?", partnerID, partnerID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "effective_from"}, Desc: true}).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list relationships", err)
	}
	result := make([]*partner.Relationship, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a relationship
func (r *GormRelationshipRepository) Save(ctx context.Context, rel *partner.Relationship) error {
	model := &models.PartnerRelationshipModel{}
	model.FromDomain(rel)
	return translateError("save relationship", r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// Delete removes a relationship
func (r *GormRelationshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PartnerRelationshipModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete relationship", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormSMERelationshipRepository implements SMERelationshipRepository using GORM
type GormSMERelationshipRepository struct {
	db *gorm.DB
}

// NewGormSMERelationshipRepository creates a new GormSMERelationshipRepository
func NewGormSMERelationshipRepository(db *gorm.DB) *GormSMERelationshipRepository {
	return &GormSMERelationshipRepository{db: db}
}

// FindByID finds an SME relationship by its ID
func (r *GormSMERelationshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.SMERelationship, error) {
	var model models.SMERelationshipModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find sme relationship", err)
	}
	return model.ToDomain(), nil
}

// FindByPartner returns the partner's SME relationships, highest priority first
func (r *GormSMERelationshipRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.SMERelationship, error) {
	var rows []models.SMERelationshipModel
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("priority_level DESC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list sme relationships", err)
	}
	result := make([]*partner.SMERelationship, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates an SME relationship
func (r *GormSMERelationshipRepository) Save(ctx context.Context, s *partner.SMERelationship) error {
	model := &models.SMERelationshipModel{}
	model.FromDomain(s)
	return translateError("save sme relationship", r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes an SME relationship
func (r *GormSMERelationshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.SMERelationshipModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete sme relationship", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ partner.RelationshipTypeRepository = (*GormRelationshipTypeRepository)(nil)
	_ partner.RelationshipRepository     = (*GormRelationshipRepository)(nil)
	_ partner.SMERelationshipRepository  = (*GormSMERelationshipRepository)(nil)
)
