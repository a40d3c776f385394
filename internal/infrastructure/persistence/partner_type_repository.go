package persistence

import (
	"context"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerTypeRepository implements PartnerTypeRepository using GORM
type GormPartnerTypeRepository struct {
	db *gorm.DB
}

// NewGormPartnerTypeRepository creates a new GormPartnerTypeRepository
func NewGormPartnerTypeRepository(db *gorm.DB) *GormPartnerTypeRepository {
	return &GormPartnerTypeRepository{db: db}
}

// FindByID finds a partner type by its ID
func (r *GormPartnerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerType, error) {
	var model models.PartnerTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find partner type", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns partner types ordered by code
func (r *GormPartnerTypeRepository) FindAll(ctx context.Context) ([]*partner.PartnerType, error) {
	var rows []models.PartnerTypeModel
	if err := r.db.WithContext(ctx).Order("type_code ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list partner types", err)
	}
	result := make([]*partner.PartnerType, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// ExistsByCode checks whether a partner type with the code exists
func (r *GormPartnerTypeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PartnerTypeModel{}).
		Where("type_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	if err != nil {
		return false, translateError("check partner type", err)
	}
	return count > 0, nil
}

// Save creates or updates a partner type
func (r *GormPartnerTypeRepository) Save(ctx context.Context, pt *partner.PartnerType) error {
	model := &models.PartnerTypeModel{}
	model.FromDomain(pt)
	return translateError("save partner type", r.db.WithContext(ctx).Save(model).Error)
}

var _ partner.PartnerTypeRepository = (*GormPartnerTypeRepository)(nil)
