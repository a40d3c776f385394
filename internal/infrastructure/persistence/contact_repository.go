package persistence

import (
	"context"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const contactOrder = "is_primary DESC, contact_type ASC, created_at ASC"

// GormContactDetailRepository implements ContactDetailRepository using GORM
type GormContactDetailRepository struct {
	db *gorm.DB
}

// NewGormContactDetailRepository creates a new GormContactDetailRepository
func NewGormContactDetailRepository(db *gorm.DB) *GormContactDetailRepository {
	return &GormContactDetailRepository{db: db}
}

// FindByID finds a contact detail by its ID
func (r *GormContactDetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ContactDetail, error) {
	var model models.ContactDetailModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find contact", err)
	}
	return model.ToDomain(), nil
}

// FindByPartner returns contacts ordered primary first, then by type
func (r *GormContactDetailRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*partner.ContactDetail, error) {
	return r.find(r.db.WithContext(ctx).Where("partner_id = ?", partnerID))
}

// FindByPartnerAndType returns the partner's contacts of one type
func (r *GormContactDetailRepository) FindByPartnerAndType(ctx context.Context, partnerID uuid.UUID, contactType partner.ContactType) ([]*partner.ContactDetail, error) {
	return r.find(r.db.WithContext(ctx).Where("partner_id = ? AND contact_type = ?", partnerID, string(contactType)))
}

// FindByPartners returns the contacts of several partners keyed by partner ID
func (r *GormContactDetailRepository) FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*partner.ContactDetail, error) {
	result := make(map[uuid.UUID][]*partner.ContactDetail, len(partnerIDs))
	if len(partnerIDs) == 0 {
		return result, nil
	}
	contacts, err := r.find(r.db.WithContext(ctx).Where("partner_id IN ?", partnerIDs))
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		result[c.PartnerID] = append(result[c.PartnerID], c)
	}
	return result, nil
}

// FindPrimary returns the primary contact of a type
func (r *GormContactDetailRepository) FindPrimary(ctx context.Context, partnerID uuid.UUID, contactType partner.ContactType) (*partner.ContactDetail, error) {
	var model models.ContactDetailModel
	err := r.db.WithContext(ctx).
		Where("partner_id = ? AND contact_type = ? AND is_primary = ?", partnerID, string(contactType), true).
		First(&model).Error
	if err != nil {
		return nil, translateError("find primary contact", err)
	}
	return model.ToDomain(), nil
}

// Search matches value and label case-insensitively
func (r *GormContactDetailRepository) Search(ctx context.Context, filter shared.Filter) ([]*partner.ContactDetail, error) {
	query := r.db.WithContext(ctx)
	if filter.HasSearch() {
		where, args := likeAny(filter.SearchPattern(), "contact_value", "label")
		query = query.Where(where, args...)
	}
	return r.find(query)
}

func (r *GormContactDetailRepository) find(query *gorm.DB) ([]*partner.ContactDetail, error) {
	var rows []models.ContactDetailModel
	if err := query.Order(contactOrder).Find(&rows).Error; err != nil {
		return nil, translateError("list contacts", err)
	}
	result := make([]*partner.ContactDetail, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Save stores the contact. A primary contact clears the other primaries of
// the same partner and type.
func (r *GormContactDetailRepository) Save(ctx context.Context, c *partner.ContactDetail) error {
	model := &models.ContactDetailModel{}
	model.FromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.Primary {
			err := tx.Model(&models.ContactDetailModel{}).
				Where("partner_id = ? AND contact_type = ? AND id <> ? AND is_primary = ?",
					c.PartnerID, string(c.ContactType), c.ID, true).
				Update("is_primary", false).Error
			if err != nil {
				return translateError("demote contacts", err)
			}
		}
		return translatePrimaryError("save contact", tx.Save(model).Error)
	})
}

// Delete removes a contact detail
func (r *GormContactDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.ContactDetailModel{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.ContactDetailRepository = (*GormContactDetailRepository)(nil)
