package models

import (
	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/google/uuid"
)

// AddressModel is the persistence model for addresses
type AddressModel struct {
	BaseModel
	StreetLine1   string `gorm:"type:varchar(255)"`
	StreetLine2   string `gorm:"type:varchar(255)"`
	City          string `gorm:"type:varchar(100);index"`
	StateProvince string `gorm:"type:varchar(100)"`
	PostalCode    string `gorm:"type:varchar(20)"`
	CountryCode   string `gorm:"type:varchar(2)"`
	IsVerified    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		BaseEntity:    m.BaseModel.ToDomain(),
		StreetLine1:   m.StreetLine1,
		StreetLine2:   m.StreetLine2,
		City:          m.City,
		StateProvince: m.StateProvince,
		PostalCode:    m.PostalCode,
		CountryCode:   m.CountryCode,
		Verified:      m.IsVerified,
	}
}

// FromDomain populates the persistence model from a domain Address
func (m *AddressModel) FromDomain(a *partner.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.StreetLine1 = a.StreetLine1
	m.StreetLine2 = a.StreetLine2
	m.City = a.City
	m.StateProvince = a.StateProvince
	m.PostalCode = a.PostalCode
	m.CountryCode = a.CountryCode
	m.IsVerified = a.Verified
}

// AddressDetailModel links a partner to an address
type AddressDetailModel struct {
	BaseModel
	PartnerID   uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:idx_address_details_primary,where:is_primary"`
	AddressID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Address     *AddressModel `gorm:"foreignKey:AddressID"`
	AddressType string        `gorm:"type:varchar(20);not null"`
	IsPrimary   bool          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressDetailModel) TableName() string {
	return "address_details"
}

// ToDomain converts the persistence model to a domain AddressDetail
func (m *AddressDetailModel) ToDomain() *partner.AddressDetail {
	d := &partner.AddressDetail{
		BaseEntity:  m.BaseModel.ToDomain(),
		PartnerID:   m.PartnerID,
		AddressID:   m.AddressID,
		AddressType: partner.AddressType(m.AddressType),
		Primary:     m.IsPrimary,
	}
	if m.Address != nil {
		d.Address = m.Address.ToDomain()
	}
	return d
}

// FromDomain populates the persistence model from a domain AddressDetail
func (m *AddressDetailModel) FromDomain(d *partner.AddressDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.PartnerID = d.PartnerID
	m.AddressID = d.AddressID
	m.AddressType = string(d.AddressType)
	m.IsPrimary = d.Primary
}
