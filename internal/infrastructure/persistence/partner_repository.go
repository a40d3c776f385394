package persistence

import (
	"context"
	"strconv"
	"strings"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).Preload("PartnerType").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find partner", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns partners matching the filter ordered by partner number.
// The search term is a substring of the formatted partner number, notes or the
// name columns of both kinds. A term naming one number ("p42") also matches it exactly.
func (r *GormPartnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Partner, error) {
	query := r.db.WithContext(ctx).Model(&models.PartnerModel{}).Preload("PartnerType")
	if filter.HasSearch() {
		where, args := likeAny(filter.SearchPattern(),
			partnerNumberExpr(r.db), "notes", "first_name", "last_name", "legal_name", "trading_name", "registration_number")
		if seq, ok := parsePartnerNumber(filter.Search); ok {
			where += " OR partner_number_seq = ?"
			args = append(args, seq)
		}
		query = query.Where(where, args...)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.PartnerModel
	if err := query.Order("partner_number_seq ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list partners", err)
	}
	result := make([]*partner.Partner, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Create assigns the next partner number and inserts the partner in one transaction
func (r *GormPartnerRepository) Create(ctx context.Context, p *partner.Partner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextPartnerNumber(tx)
		if err != nil {
			return err
		}
		p.NumberSeq = seq
		model := models.PartnerModelFromDomain(p)
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return translateError("create partner", err)
		}
		return nil
	})
}

// nextPartnerNumber increments the partner sequence row and returns the new value.
// The row lock taken by the UPDATE serialises concurrent creates.
func nextPartnerNumber(tx *gorm.DB) (int64, error) {
	var next int64
	res := tx.Raw(
		"UPDATE partner_sequences SET last_value = last_value + 1 WHERE name = ? RETURNING last_value",
		models.PartnerSequenceName,
	).Scan(&next)
	if res.Error != nil {
		return 0, translateError("allocate partner number", res.Error)
	}
	if res.RowsAffected > 0 {
		return next, nil
	}

	// sequence row missing: start at 1
	if err := tx.Create(&models.PartnerSequenceModel{Name: models.PartnerSequenceName, LastValue: 1}).Error; err != nil {
		return 0, translateError("seed partner sequence", err)
	}
	return 1, nil
}

// Save updates an existing partner. Partner number and creation time are never rewritten.
func (r *GormPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	model := models.PartnerModelFromDomain(p)
	res := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("id = ?", p.ID).
		Select("*").
		Omit("id", "partner_number_seq", "created_at", clause.Associations).
		Updates(model)
	if res.Error != nil {
		return translateError("update partner", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the partner and every row it owns
func (r *GormPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&models.AddressDetailModel{},
			&models.ContactDetailModel{},
			&models.PartnerTagModel{},
			&models.SMERelationshipModel{},
		}
		for _, m := range owned {
			if err := tx.Where("partner_id = ?", id).Delete(m).Error; err != nil {
				return translateError("delete partner children", err)
			}
		}
		if err := tx.Where("from_partner_id = ? OR to_partner_id = ?", id, id).
			Delete(&models.PartnerRelationshipModel{}).Error; err != nil {
			return translateError("delete partner relationships", err)
		}

		res := tx.Delete(&models.PartnerModel{}, "id = ?", id)
		if res.Error != nil {
			return translateError("delete partner", res.Error)
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByID checks whether a partner exists
func (r *GormPartnerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PartnerModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError("check partner", err)
	}
	return count > 0, nil
}

// partnerNumberExpr renders partner_number_seq as the formatted partner
// number (P00000042) in the dialect of db.
func partnerNumberExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "printf('" + partner.NumberPrefix + "%08d', partner_number_seq)"
	}
	return "'" + partner.NumberPrefix + "' || LPAD(CAST(partner_number_seq AS TEXT), 8, '0')"
}

// parsePartnerNumber accepts "P00000042", "p42" or "42"
func parsePartnerNumber(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, partner.NumberPrefix), strings.ToLower(partner.NumberPrefix))
	if s == "" {
		return 0, false
	}
	seq, err := strconv.ParseInt(s, 10, 64)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}

var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)
