package models

import (
	"time"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PartnerSequenceName is the row of partner_sequences that numbers partners
const PartnerSequenceName = "partner"

// PartnerSequenceModel holds the last value handed out by a named sequence.
// A table is used instead of a native sequence so that sqlite works too.
type PartnerSequenceModel struct {
	Name      string `gorm:"type:varchar(50);primaryKey"`
	LastValue int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PartnerSequenceModel) TableName() string {
	return "partner_sequences"
}

// PartnerTypeModel is the persistence model for partner types
type PartnerTypeModel struct {
	BaseModel
	TypeCode    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (PartnerTypeModel) TableName() string {
	return "partner_types"
}

// ToDomain converts the persistence model to a domain PartnerType
func (m *PartnerTypeModel) ToDomain() *partner.PartnerType {
	return &partner.PartnerType{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.TypeCode,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain PartnerType
func (m *PartnerTypeModel) FromDomain(pt *partner.PartnerType) {
	m.FromDomainBaseEntity(pt.BaseEntity)
	m.TypeCode = pt.Code
	m.Description = pt.Description
}

// PartnerModel is the single-table persistence model for both partner kinds.
// Columns of the kind not in use are left NULL/empty.
type PartnerModel struct {
	BaseModel
	PartnerNumberSeq int64             `gorm:"not null;uniqueIndex"`
	PartnerKind      string            `gorm:"type:varchar(20);not null;index"`
	PartnerTypeID    *uuid.UUID        `gorm:"type:uuid;index"`
	PartnerType      *PartnerTypeModel `gorm:"foreignKey:PartnerTypeID"`
	Active           bool              `gorm:"not null"`
	Notes            string            `gorm:"type:text"`

	// natural person
	FirstName         string          `gorm:"type:varchar(100);index"`
	LastName          string          `gorm:"type:varchar(100);index"`
	MiddleName        string          `gorm:"type:varchar(100)"`
	Title             string          `gorm:"type:varchar(50)"`
	DateOfBirth       *datatypes.Date `gorm:"type:date"`
	NPTaxID           string          `gorm:"column:np_tax_id;type:varchar(50)"`
	PreferredLanguage string          `gorm:"type:varchar(10)"`

	// legal entity
	LegalName          string          `gorm:"type:varchar(255);index"`
	TradingName        string          `gorm:"type:varchar(255)"`
	RegistrationNumber string          `gorm:"type:varchar(100)"`
	LETaxID            string          `gorm:"column:le_tax_id;type:varchar(50)"`
	LegalForm          string          `gorm:"type:varchar(100)"`
	IncorporationDate  *datatypes.Date `gorm:"type:date"`
	Jurisdiction       string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner
func (m *PartnerModel) ToDomain() *partner.Partner {
	p := &partner.Partner{
		BaseEntity:    m.BaseModel.ToDomain(),
		NumberSeq:     m.PartnerNumberSeq,
		Kind:          partner.Kind(m.PartnerKind),
		PartnerTypeID: m.PartnerTypeID,
		Active:        m.Active,
		Notes:         m.Notes,
	}
	if m.PartnerType != nil {
		p.PartnerType = m.PartnerType.ToDomain()
	}
	switch p.Kind {
	case partner.KindNaturalPerson:
		p.Person = &partner.NaturalPerson{
			FirstName:         m.FirstName,
			LastName:          m.LastName,
			MiddleName:        m.MiddleName,
			Title:             m.Title,
			DateOfBirth:       dateToTime(m.DateOfBirth),
			TaxID:             m.NPTaxID,
			PreferredLanguage: m.PreferredLanguage,
		}
	case partner.KindLegalEntity:
		p.Entity = &partner.LegalEntity{
			LegalName:          m.LegalName,
			TradingName:        m.TradingName,
			RegistrationNumber: m.RegistrationNumber,
			TaxID:              m.LETaxID,
			LegalForm:          m.LegalForm,
			IncorporationDate:  dateToTime(m.IncorporationDate),
			Jurisdiction:       m.Jurisdiction,
		}
	}
	return p
}

// FromDomain populates the persistence model from a domain Partner.
// All kind-specific columns are rewritten so that a kind change clears the old ones.
func (m *PartnerModel) FromDomain(p *partner.Partner) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.PartnerNumberSeq = p.NumberSeq
	m.PartnerKind = string(p.Kind)
	m.PartnerTypeID = p.PartnerTypeID
	m.Active = p.Active
	m.Notes = p.Notes

	var person partner.NaturalPerson
	if p.Person != nil {
		person = *p.Person
	}
	m.FirstName = person.FirstName
	m.LastName = person.LastName
	m.MiddleName = person.MiddleName
	m.Title = person.Title
	m.DateOfBirth = timeToDate(person.DateOfBirth)
	m.NPTaxID = person.TaxID
	m.PreferredLanguage = person.PreferredLanguage

	var entity partner.LegalEntity
	if p.Entity != nil {
		entity = *p.Entity
	}
	m.LegalName = entity.LegalName
	m.TradingName = entity.TradingName
	m.RegistrationNumber = entity.RegistrationNumber
	m.LETaxID = entity.TaxID
	m.LegalForm = entity.LegalForm
	m.IncorporationDate = timeToDate(entity.IncorporationDate)
	m.Jurisdiction = entity.Jurisdiction
}

// PartnerModelFromDomain creates a new persistence model from a domain Partner
func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}

func dateToTime(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

func timeToDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}
