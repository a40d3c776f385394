package models

import (
	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/google/uuid"
)

// ContactDetailModel is the persistence model for contact details
type ContactDetailModel struct {
	BaseModel
	PartnerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_contact_partner_type,priority:1;uniqueIndex:idx_contact_details_primary,priority:1,where:is_primary"`
	ContactType  string    `gorm:"type:varchar(20);not null;index:idx_contact_partner_type,priority:2;uniqueIndex:idx_contact_details_primary,priority:2,where:is_primary"`
	ContactValue string    `gorm:"type:varchar(255);not null"`
	Label        string    `gorm:"type:varchar(100)"`
	IsPrimary    bool      `gorm:"not null"`
	IsVerified   bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContactDetailModel) TableName() string {
	return "contact_details"
}

// ToDomain converts the persistence model to a domain ContactDetail
func (m *ContactDetailModel) ToDomain() *partner.ContactDetail {
	return &partner.ContactDetail{
		BaseEntity:  m.BaseModel.ToDomain(),
		PartnerID:   m.PartnerID,
		ContactType: partner.ContactType(m.ContactType),
		Value:       m.ContactValue,
		Label:       m.Label,
		Primary:     m.IsPrimary,
		Verified:    m.IsVerified,
	}
}

// FromDomain populates the persistence model from a domain ContactDetail
func (m *ContactDetailModel) FromDomain(c *partner.ContactDetail) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.PartnerID = c.PartnerID
	m.ContactType = string(c.ContactType)
	m.ContactValue = c.Value
	m.Label = c.Label
	m.IsPrimary = c.Primary
	m.IsVerified = c.Verified
}
