package persistence

import (
	"context"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find address", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns addresses ordered by city and first street line
func (r *GormAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Address, error) {
	query := r.db.WithContext(ctx).Model(&models.AddressModel{})
	if filter.HasSearch() {
		where, args := likeAny(filter.SearchPattern(),
			"street_line1", "street_line2", "city", "state_province", "postal_code", "country_code")
		query = query.Where(where, args...)
	}

	var rows []models.AddressModel
	if err := query.Order("city ASC, street_line1 ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list addresses", err)
	}
	result := make([]*partner.Address, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, a *partner.Address) error {
	model := &models.AddressModel{}
	model.FromDomain(a)
	return translateError("save address", r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete address", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountPartnersUsing counts the distinct partners linked to the address
func (r *GormAddressRepository) CountPartnersUsing(ctx context.Context, addressID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AddressDetailModel{}).
		Where("address_id = ?", addressID).
		Distinct("partner_id").
		Count(&count).Error
	if err != nil {
		return 0, translateError("count address usage", err)
	}
	return count, nil
}

// GormAddressDetailRepository implements AddressDetailRepository using GORM
type GormAddressDetailRepository struct {
	db *gorm.DB
}

// NewGormAddressDetailRepository creates a new GormAddressDetailRepository
func NewGormAddressDetailRepository(db *gorm.DB) *GormAddressDetailRepository {
	return &GormAddressDetailRepository{db: db}
}

// FindByID loads a detail with its address
func (r *GormAddressDetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.AddressDetail, error) {
	var model models.AddressDetailModel
	if err := r.db.WithContext(ctx).Preload("Address").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find address detail", err)
	}
	return model.ToDomain(), nil
}

// FindByPartner returns the partner's details, primary first
func (r *GormAddressDetailRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.AddressDetail, error) {
	var rows []models.AddressDetailModel
	err := r.db.WithContext(ctx).Preload("Address").
		Where("partner_id = ?", partnerID).
		Order("is_primary DESC, address_type ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list address details", err)
	}
	result := make([]*partner.AddressDetail, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// FindByPartners returns the details of several partners keyed by partner ID
func (r *GormAddressDetailRepository) FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*partner.AddressDetail, error) {
	result := make(map[uuid.UUID][]*partner.AddressDetail, len(partnerIDs))
	if len(partnerIDs) == 0 {
		return result, nil
	}
	var rows []models.AddressDetailModel
	err := r.db.WithContext(ctx).Preload("Address").
		Where("partner_id IN ?", partnerIDs).
		Order("is_primary DESC, address_type ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list address details", err)
	}
	for i := range rows {
		d := rows[i].ToDomain()
		result[d.PartnerID] = append(result[d.PartnerID], d)
	}
	return result, nil
}

// Save stores the detail. A primary detail demotes the partner's other details.
func (r *GormAddressDetailRepository) Save(ctx context.Context, d *partner.AddressDetail) error {
	model := &models.AddressDetailModel{}
	model.FromDomain(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.Primary {
			err := tx.Model(&models.AddressDetailModel{}).
				Where("partner_id = ? AND id <> ? AND is_primary = ?", d.PartnerID, d.ID, true).
				Update("is_primary", false).Error
			if err != nil {
				return translateError("demote address details", err)
			}
		}
		return translatePrimaryError("save address detail", tx.Omit(clause.Associations).Save(model).Error)
	})
}

// Delete removes a detail; the address itself is kept
func (r *GormAddressDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.AddressDetailModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete address detail", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ partner.AddressRepository       = (*GormAddressRepository)(nil)
	_ partner.AddressDetailRepository = (*GormAddressDetailRepository)(nil)
)
