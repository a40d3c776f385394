package models

import (
	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RelationshipTypeModel is the persistence model for relationship types
type RelationshipTypeModel struct {
	BaseModel
	TypeName    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
	ColorHex    string `gorm:"type:varchar(7)"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RelationshipTypeModel) TableName() string {
	return "relationship_types"
}

// ToDomain converts the persistence model to a domain RelationshipType
func (m *RelationshipTypeModel) ToDomain() *partner.RelationshipType {
	return &partner.RelationshipType{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.TypeName,
		Description: m.Description,
		ColorHex:    m.ColorHex,
		Active:      m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain RelationshipType
func (m *RelationshipTypeModel) FromDomain(rt *partner.RelationshipType) {
	m.FromDomainBaseEntity(rt.BaseEntity)
	m.TypeName = rt.Name
	m.Description = rt.Description
	m.ColorHex = rt.ColorHex
	m.IsActive = rt.Active
}

// PartnerRelationshipModel is a typed edge between two partners
type PartnerRelationshipModel struct {
	BaseModel
	FromPartnerID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	ToPartnerID        uuid.UUID              `gorm:"type:uuid;not null;index"`
	RelationshipTypeID uuid.UUID              `gorm:"type:uuid;not null;index"`
	RelationshipType   *RelationshipTypeModel `gorm:"foreignKey:RelationshipTypeID"`
	EffectiveFrom      *datatypes.Date        `gorm:"type:date"`
	EffectiveTo        *datatypes.Date        `gorm:"type:date"`
	Notes              string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartnerRelationshipModel) TableName() string {
	return "partner_relationships"
}

// ToDomain converts the persistence model to a domain Relationship
func (m *PartnerRelationshipModel) ToDomain() *partner.Relationship {
	r := &partner.Relationship{
		BaseEntity:    m.BaseModel.ToDomain(),
		FromPartnerID: m.FromPartnerID,
		ToPartnerID:   m.ToPartnerID,
		TypeID:        m.RelationshipTypeID,
		EffectiveFrom: dateToTime(m.EffectiveFrom),
		EffectiveTo:   dateToTime(m.EffectiveTo),
		Notes:         m.Notes,
	}
	if m.RelationshipType != nil {
		r.Type = m.RelationshipType.ToDomain()
	}
	return r
}

// FromDomain populates the persistence model from a domain Relationship
func (m *PartnerRelationshipModel) FromDomain(r *partner.Relationship) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.FromPartnerID = r.FromPartnerID
	m.ToPartnerID = r.ToPartnerID
	m.RelationshipTypeID = r.TypeID
	m.EffectiveFrom = timeToDate(r.EffectiveFrom)
	m.EffectiveTo = timeToDate(r.EffectiveTo)
	m.Notes = r.Notes
}

// SMERelationshipModel is the persistence model for SME relationships
type SMERelationshipModel struct {
	BaseModel
	PartnerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RelationshipType  string          `gorm:"type:varchar(50);not null"`
	Status            string          `gorm:"type:varchar(50)"`
	RelationshipStart *datatypes.Date `gorm:"type:date"`
	RelationshipEnd   *datatypes.Date `gorm:"type:date"`
	PaymentTerms      string          `gorm:"type:varchar(100)"`
	CreditLimit       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PriorityLevel     int             `gorm:"not null"`
	AccountManager    string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (SMERelationshipModel) TableName() string {
	return "sme_relationships"
}

// ToDomain converts the persistence model to a domain SMERelationship
func (m *SMERelationshipModel) ToDomain() *partner.SMERelationship {
	return &partner.SMERelationship{
		BaseEntity:       m.BaseModel.ToDomain(),
		PartnerID:        m.PartnerID,
		RelationshipType: m.RelationshipType,
		Status:           m.Status,
		Start:            dateToTime(m.RelationshipStart),
		End:              dateToTime(m.RelationshipEnd),
		PaymentTerms:     m.PaymentTerms,
		CreditLimit:      m.CreditLimit,
		PriorityLevel:    m.PriorityLevel,
		AccountManager:   m.AccountManager,
	}
}

// FromDomain populates the persistence model from a domain SMERelationship
func (m *SMERelationshipModel) FromDomain(s *partner.SMERelationship) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.PartnerID = s.PartnerID
	m.RelationshipType = s.RelationshipType
	m.Status = s.Status
	m.RelationshipStart = timeToDate(s.Start)
	m.RelationshipEnd = timeToDate(s.End)
	m.PaymentTerms = s.PaymentTerms
	m.CreditLimit = s.CreditLimit
	m.PriorityLevel = s.PriorityLevel
	m.AccountManager = s.AccountManager
}
