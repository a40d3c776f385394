package models

import (
	"time"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/google/uuid"
)

// TagModel is the persistence model for tags
type TagModel struct {
	BaseModel
	TagName     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	ColorHex    string `gorm:"type:varchar(7)"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the persistence model to a domain Tag
func (m *TagModel) ToDomain() *partner.Tag {
	return &partner.Tag{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.TagName,
		ColorHex:    m.ColorHex,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Tag
func (m *TagModel) FromDomain(t *partner.Tag) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.TagName = t.Name
	m.ColorHex = t.ColorHex
	m.Description = t.Description
}

// PartnerTagModel assigns a tag to a partner
type PartnerTagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PartnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_tag,priority:1"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_tag,priority:2;index"`
	Tag       *TagModel `gorm:"foreignKey:TagID"`
	TaggedAt  time.Time `gorm:"not null"`
	TaggedBy  string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PartnerTagModel) TableName() string {
	return "partner_tags"
}

// ToDomain converts the persistence model to a domain PartnerTag
func (m *PartnerTagModel) ToDomain() *partner.PartnerTag {
	pt := &partner.PartnerTag{
		ID:        m.ID,
		PartnerID: m.PartnerID,
		TagID:     m.TagID,
		TaggedAt:  m.TaggedAt,
		TaggedBy:  m.TaggedBy,
	}
	if m.Tag != nil {
		pt.Tag = m.Tag.ToDomain()
	}
	return pt
}

// FromDomain populates the persistence model from a domain PartnerTag
func (m *PartnerTagModel) FromDomain(pt *partner.PartnerTag) {
	m.ID = pt.ID
	m.PartnerID = pt.PartnerID
	m.TagID = pt.TagID
	m.TaggedAt = pt.TaggedAt
	m.TaggedBy = pt.TaggedBy
}
