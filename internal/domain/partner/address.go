package partner

import (
	"strings"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressType is the role an address plays for a partner
type AddressType string

const (
	AddressTypeBilling  AddressType = "BILLING"
	AddressTypeShipping AddressType = "SHIPPING"
)

// IsValid reports whether t is a known address type
func (t AddressType) IsValid() bool {
	return t == AddressTypeBilling || t == AddressTypeShipping
}

// Address is a physical location that may be shared by several partners
type Address struct {
	shared.BaseEntity
	StreetLine1   string
	StreetLine2   string
	City          string
	StateProvince string
	PostalCode    string
	CountryCode   string
	Verified      bool
}

// AddressFields carries the mutable attributes of an address
type AddressFields struct {
	StreetLine1   string
	StreetLine2   string
	City          string
	StateProvince string
	PostalCode    string
	CountryCode   string
	Verified      bool
}

// NewAddress creates a new address
func NewAddress(fields AddressFields) (*Address, error) {
	a := &Address{BaseEntity: shared.NewBaseEntity()}
	if err := a.apply(fields); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the address attributes
func (a *Address) Update(fields AddressFields) error {
	if err := a.apply(fields); err != nil {
		return err
	}
	a.Touch()
	return nil
}

func (a *Address) apply(f AddressFields) error {
	country := strings.ToUpper(strings.TrimSpace(f.CountryCode))
	if country != "" && len(country) != 2 {
		return shared.InvalidInputf("Country code must be a two-letter ISO 3166-1 code")
	}
	if strings.TrimSpace(f.StreetLine1) == "" && strings.TrimSpace(f.City) == "" {
		return shared.InvalidInputf("Address requires at least a street line or a city")
	}
	for _, check := range []struct {
		field string
		value string
		limit int
	}{
		{"street line 1", f.StreetLine1, 255},
		{"street line 2", f.StreetLine2, 255},
		{"city", f.City, 100},
		{"state or province", f.StateProvince, 100},
		{"postal code", f.PostalCode, 20},
	} {
		if err := maxLen(check.field, check.value, check.limit); err != nil {
			return err
		}
	}

	a.StreetLine1 = f.StreetLine1
	a.StreetLine2 = f.StreetLine2
	a.City = f.City
	a.StateProvince = f.StateProvince
	a.PostalCode = f.PostalCode
	a.CountryCode = country
	a.Verified = f.Verified
	return nil
}

// Line renders the address on one line, e.g.
// "1 Main St, Suite 4, 8000 Zurich, ZH, CH"
func (a *Address) Line() string {
	if a == nil {
		return ""
	}
	return joinNonEmpty(", ",
		a.StreetLine1,
		a.StreetLine2,
		joinNonEmpty(" ", a.PostalCode, a.City),
		a.StateProvince,
		a.CountryCode,
	)
}

// AddressDetail links a partner to an address with a role
type AddressDetail struct {
	shared.BaseEntity
	PartnerID   uuid.UUID
	AddressID   uuid.UUID
	Address     *Address
	AddressType AddressType
	Primary     bool
}

// NewAddressDetail creates a partner-address link
func NewAddressDetail(partnerID, addressID uuid.UUID, addressType AddressType, primary bool) (*AddressDetail, error) {
	if partnerID == uuid.Nil || addressID == uuid.Nil {
		return nil, shared.InvalidInputf("Partner and address are required")
	}
	if !addressType.IsValid() {
		return nil, shared.InvalidInputf("Address type must be BILLING or SHIPPING")
	}
	return &AddressDetail{
		BaseEntity:  shared.NewBaseEntity(),
		PartnerID:   partnerID,
		AddressID:   addressID,
		AddressType: addressType,
		Primary:     primary,
	}, nil
}

// Update changes the role of the link
func (d *AddressDetail) Update(addressType AddressType, primary bool) error {
	if !addressType.IsValid() {
		return shared.InvalidInputf("Address type must be BILLING or SHIPPING")
	}
	d.AddressType = addressType
	d.Primary = primary
	d.Touch()
	return nil
}
