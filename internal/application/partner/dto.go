package partner

import (
	"strings"
	"time"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// =============================================================================
// Partner DTOs
// =============================================================================

// PartnerRequest creates or updates a partner. The kind is detected from the
// names present: firstName/lastName for a natural person, legalName for a
// legal entity.
type PartnerRequest struct {
	FirstName          string     `json:"firstName" binding:"max=100"`
	LastName           string     `json:"lastName" binding:"max=100"`
	MiddleName         string     `json:"middleName" binding:"max=100"`
	Title              string     `json:"title" binding:"max=50"`
	DateOfBirth        *string    `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	PreferredLanguage  string     `json:"preferredLanguage" binding:"max=10"`
	LegalName          string     `json:"legalName" binding:"max=255"`
	TradingName        string     `json:"tradingName" binding:"max=255"`
	RegistrationNumber string     `json:"registrationNumber" binding:"max=100"`
	LegalForm          string     `json:"legalForm" binding:"max=100"`
	IncorporationDate  *string    `json:"incorporationDate" binding:"omitempty,datetime=2006-01-02"`
	Jurisdiction       string     `json:"jurisdiction" binding:"max=100"`
	TaxID              string     `json:"taxId" binding:"max=50"`
	PartnerTypeID      *uuid.UUID `json:"partnerTypeId"`
	Notes              string     `json:"notes"`
	Active             *bool      `json:"active"` // ignored on create
}

// PartnerResponse is the full representation of a partner
type PartnerResponse struct {
	ID                 uuid.UUID            `json:"id"`
	PartnerNumber      string               `json:"partnerNumber"`
	Kind               string               `json:"kind"`
	DisplayName        string               `json:"displayName"`
	PartnerType        *PartnerTypeResponse `json:"partnerType,omitempty"`
	Active             bool                 `json:"active"`
	Notes              string               `json:"notes"`
	FirstName          string               `json:"firstName,omitempty"`
	LastName           string               `json:"lastName,omitempty"`
	MiddleName         string               `json:"middleName,omitempty"`
	Title              string               `json:"title,omitempty"`
	DateOfBirth        *string              `json:"dateOfBirth,omitempty"`
	PreferredLanguage  string               `json:"preferredLanguage,omitempty"`
	LegalName          string               `json:"legalName,omitempty"`
	TradingName        string               `json:"tradingName,omitempty"`
	RegistrationNumber string               `json:"registrationNumber,omitempty"`
	LegalForm          string               `json:"legalForm,omitempty"`
	IncorporationDate  *string              `json:"incorporationDate,omitempty"`
	Jurisdiction       string               `json:"jurisdiction,omitempty"`
	TaxID              string               `json:"taxId,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// PartnerSearchResult is one row of the partner search listing
type PartnerSearchResult struct {
	ID                 uuid.UUID     `json:"id"`
	PartnerNumber      string        `json:"partnerNumber"`
	PartnerType        string        `json:"partnerType"`
	Active             bool          `json:"active"`
	Notes              string        `json:"notes"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
	FirstName          string        `json:"firstName,omitempty"`
	LastName           string        `json:"lastName,omitempty"`
	DateOfBirth        *string       `json:"dateOfBirth,omitempty"`
	LegalName          string        `json:"legalName,omitempty"`
	Jurisdiction       string        `json:"jurisdiction,omitempty"`
	RegistrationNumber string        `json:"registrationNumber,omitempty"`
	IncorporationDate  *string       `json:"incorporationDate,omitempty"`
	AddressLine        string        `json:"addressLine,omitempty"`
	Email              string        `json:"email,omitempty"`
	Phone              string        `json:"phone,omitempty"`
	Website            string        `json:"website,omitempty"`
	Tags               []TagResponse `json:"tags"`
}

// ToPartnerResponse converts a domain partner to its response
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	resp := PartnerResponse{
		ID:            p.ID,
		PartnerNumber: p.Number(),
		Kind:          string(p.Kind),
		DisplayName:   p.DisplayName(),
		Active:        p.Active,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.PartnerType != nil {
		pt := ToPartnerTypeResponse(p.PartnerType)
		resp.PartnerType = &pt
	}
	if np := p.Person; np != nil {
		resp.FirstName = np.FirstName
		resp.LastName = np.LastName
		resp.MiddleName = np.MiddleName
		resp.Title = np.Title
		resp.DateOfBirth = formatDate(np.DateOfBirth)
		resp.PreferredLanguage = np.PreferredLanguage
		resp.TaxID = np.TaxID
	}
	if le := p.Entity; le != nil {
		resp.LegalName = le.LegalName
		resp.TradingName = le.TradingName
		resp.RegistrationNumber = le.RegistrationNumber
		resp.LegalForm = le.LegalForm
		resp.IncorporationDate = formatDate(le.IncorporationDate)
		resp.Jurisdiction = le.Jurisdiction
		resp.TaxID = le.TaxID
	}
	return resp
}

// ToPartnerResponses converts a list of partners
func ToPartnerResponses(partners []*partner.Partner) []PartnerResponse {
	out := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		out[i] = ToPartnerResponse(p)
	}
	return out
}

// =============================================================================
// Address DTOs
// =============================================================================

// AddressRequest creates or updates an address
type AddressRequest struct {
	StreetLine1   string `json:"streetLine1" binding:"max=255"`
	StreetLine2   string `json:"streetLine2" binding:"max=255"`
	City          string `json:"city" binding:"max=100"`
	StateProvince string `json:"stateProvince" binding:"max=100"`
	PostalCode    string `json:"postalCode" binding:"max=20"`
	CountryCode   string `json:"countryCode" binding:"omitempty,iso_country"`
	Verified      bool   `json:"verified"`
}

func (r AddressRequest) fields() partner.AddressFields {
	return partner.AddressFields{
		StreetLine1:   r.StreetLine1,
		StreetLine2:   r.StreetLine2,
		City:          r.City,
		StateProvince: r.StateProvince,
		PostalCode:    r.PostalCode,
		CountryCode:   r.CountryCode,
		Verified:      r.Verified,
	}
}

// AddressResponse represents an address
type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	StreetLine1   string    `json:"streetLine1"`
	StreetLine2   string    `json:"streetLine2"`
	City          string    `json:"city"`
	StateProvince string    `json:"stateProvince"`
	PostalCode    string    `json:"postalCode"`
	CountryCode   string    `json:"countryCode"`
	Verified      bool      `json:"verified"`
	Line          string    `json:"line"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToAddressResponse converts a domain address
func ToAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		StreetLine1:   a.StreetLine1,
		StreetLine2:   a.StreetLine2,
		City:          a.City,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
		Verified:      a.Verified,
		Line:          a.Line(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// CountryResponse is one ISO 3166-1 country
type CountryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AddressDetailRequest sets the role of a partner address
type AddressDetailRequest struct {
	AddressType string `json:"addressType" binding:"required,oneof=BILLING SHIPPING"`
	Primary     bool   `json:"primary"`
}

// AddressDetailResponse represents a partner-address link
type AddressDetailResponse struct {
	ID          uuid.UUID        `json:"id"`
	PartnerID   uuid.UUID        `json:"partnerId"`
	AddressID   uuid.UUID        `json:"addressId"`
	AddressType string           `json:"addressType"`
	Primary     bool             `json:"primary"`
	Address     *AddressResponse `json:"address,omitempty"`
}

// ToAddressDetailResponse converts a domain address detail
func ToAddressDetailResponse(d *partner.AddressDetail) AddressDetailResponse {
	resp := AddressDetailResponse{
		ID:          d.ID,
		PartnerID:   d.PartnerID,
		AddressID:   d.AddressID,
		AddressType: string(d.AddressType),
		Primary:     d.Primary,
	}
	if d.Address != nil {
		a := ToAddressResponse(d.Address)
		resp.Address = &a
	}
	return resp
}

// =============================================================================
// Contact DTOs
// =============================================================================

// ContactDetailRequest creates or updates a contact detail
type ContactDetailRequest struct {
	ContactType string `json:"contactType" binding:"required"`
	Value       string `json:"contactValue" binding:"required,max=255"`
	Label       string `json:"label" binding:"max=100"`
	Primary     bool   `json:"primary"`
	Verified    bool   `json:"verified"`
}

func (r ContactDetailRequest) fields() (partner.ContactFields, error) {
	ct, err := partner.ParseContactType(r.ContactType)
	if err != nil {
		return partner.ContactFields{}, err
	}
	return partner.ContactFields{
		ContactType: ct,
		Value:       r.Value,
		Label:       r.Label,
		Primary:     r.Primary,
		Verified:    r.Verified,
	}, nil
}

// ContactDetailResponse represents a contact detail
type ContactDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	PartnerID   uuid.UUID `json:"partnerId"`
	ContactType string    `json:"contactType"`
	Value       string    `json:"contactValue"`
	Label       string    `json:"label"`
	Primary     bool      `json:"primary"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToContactDetailResponse converts a domain contact detail
func ToContactDetailResponse(c *partner.ContactDetail) ContactDetailResponse {
	return ContactDetailResponse{
		ID:          c.ID,
		PartnerID:   c.PartnerID,
		ContactType: string(c.ContactType),
		Value:       c.Value,
		Label:       c.Label,
		Primary:     c.Primary,
		Verified:    c.Verified,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToContactDetailResponses converts a list of contact details
func ToContactDetailResponses(contacts []*partner.ContactDetail) []ContactDetailResponse {
	out := make([]ContactDetailResponse, len(contacts))
	for i, c := range contacts {
		out[i] = ToContactDetailResponse(c)
	}
	return out
}

// =============================================================================
// Tag DTOs
// =============================================================================

// TagRequest creates or updates a tag
type TagRequest struct {
	Name        string `json:"tagName" binding:"required,max=100"`
	ColorHex    string `json:"colorHex" binding:"omitempty,hexcolor"`
	Description string `json:"description" binding:"max=500"`
}

// TagResponse represents a tag
type TagResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"tagName"`
	ColorHex    string    `json:"colorHex,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToTagResponse converts a domain tag
func ToTagResponse(t *partner.Tag) TagResponse {
	return TagResponse{
		ID:          t.ID,
		Name:        t.Name,
		ColorHex:    t.ColorHex,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTagResponses converts a list of tags
func ToTagResponses(tags []*partner.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = ToTagResponse(t)
	}
	return out
}

// AssignTagRequest carries the optional author of a tag assignment
type AssignTagRequest struct {
	TaggedBy string `json:"taggedBy" binding:"max=100"`
}

// PartnerTagResponse represents a tag assigned to a partner
type PartnerTagResponse struct {
	PartnerID uuid.UUID   `json:"partnerId"`
	Tag       TagResponse `json:"tag"`
	TaggedAt  time.Time   `json:"taggedAt"`
	TaggedBy  string      `json:"taggedBy,omitempty"`
}

// ToPartnerTagResponse converts a domain tag assignment
func ToPartnerTagResponse(pt *partner.PartnerTag) PartnerTagResponse {
	resp := PartnerTagResponse{
		PartnerID: pt.PartnerID,
		TaggedAt:  pt.TaggedAt,
		TaggedBy:  pt.TaggedBy,
	}
	if pt.Tag != nil {
		resp.Tag = ToTagResponse(pt.Tag)
	} else {
		resp.Tag = TagResponse{ID: pt.TagID}
	}
	return resp
}

// =============================================================================
// Relationship DTOs
// =============================================================================

// RelationshipTypeRequest creates or updates a relationship type
type RelationshipTypeRequest struct {
	Name        string `json:"typeName" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	ColorHex    string `json:"colorHex" binding:"omitempty,hexcolor"`
	Active      *bool  `json:"active"`
}

// RelationshipTypeResponse represents a relationship type
type RelationshipTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"typeName"`
	Description string    `json:"description,omitempty"`
	ColorHex    string    `json:"colorHex,omitempty"`
	Active      bool      `json:"active"`
}

// ToRelationshipTypeResponse converts a domain relationship type
func ToRelationshipTypeResponse(rt *partner.RelationshipType) RelationshipTypeResponse {
	return RelationshipTypeResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		Description: rt.Description,
		ColorHex:    rt.ColorHex,
		Active:      rt.Active,
	}
}

// RelationshipRequest creates a relationship between two partners
type RelationshipRequest struct {
	RelationshipTypeID uuid.UUID `json:"relationshipTypeId" binding:"required"`
	EffectiveFrom      *string   `json:"effectiveFrom" binding:"omitempty,datetime=2006-01-02"`
	EffectiveTo        *string   `json:"effectiveTo" binding:"omitempty,datetime=2006-01-02"`
	Notes              string    `json:"notes"`
}

// RelationshipResponse represents a relationship
type RelationshipResponse struct {
	ID               uuid.UUID                 `json:"id"`
	FromPartnerID    uuid.UUID                 `json:"fromPartnerId"`
	ToPartnerID      uuid.UUID                 `json:"toPartnerId"`
	RelationshipType *RelationshipTypeResponse `json:"relationshipType,omitempty"`
	EffectiveFrom    *string                   `json:"effectiveFrom,omitempty"`
	EffectiveTo      *string                   `json:"effectiveTo,omitempty"`
	Notes            string                    `json:"notes,omitempty"`
	Current          bool                      `json:"current"`
}

// ToRelationshipResponse converts a domain relationship
func ToRelationshipResponse(r *partner.Relationship, now time.Time) RelationshipResponse {
	resp := RelationshipResponse{
		ID:            r.ID,
		FromPartnerID: r.FromPartnerID,
		ToPartnerID:   r.ToPartnerID,
		EffectiveFrom: formatDate(r.EffectiveFrom),
		EffectiveTo:   formatDate(r.EffectiveTo),
		Notes:         r.Notes,
		Current:       r.ActiveAt(now),
	}
	if r.Type != nil {
		rt := ToRelationshipTypeResponse(r.Type)
		resp.RelationshipType = &rt
	}
	return resp
}

// SMERelationshipRequest creates or updates an SME relationship
type SMERelationshipRequest struct {
	RelationshipType  string           `json:"relationshipType" binding:"required,max=50"`
	Status            string           `json:"status" binding:"max=50"`
	RelationshipStart *string          `json:"relationshipStart" binding:"omitempty,datetime=2006-01-02"`
	RelationshipEnd   *string          `json:"relationshipEnd" binding:"omitempty,datetime=2006-01-02"`
	PaymentTerms      string           `json:"paymentTerms" binding:"max=100"`
	CreditLimit       *decimal.Decimal `json:"creditLimit"`
	PriorityLevel     int              `json:"priorityLevel" binding:"min=0"`
	AccountManager    string           `json:"accountManager" binding:"max=100"`
}

func (r SMERelationshipRequest) fields() (partner.SMEFields, error) {
	start, err := parseDate("relationshipStart", r.RelationshipStart)
	if err != nil {
		return partner.SMEFields{}, err
	}
	end, err := parseDate("relationshipEnd", r.RelationshipEnd)
	if err != nil {
		return partner.SMEFields{}, err
	}
	limit := decimal.Zero
	if r.CreditLimit != nil {
		limit = *r.CreditLimit
	}
	return partner.SMEFields{
		RelationshipType: r.RelationshipType,
		Status:           r.Status,
		Start:            start,
		End:              end,
		PaymentTerms:     r.PaymentTerms,
		CreditLimit:      limit,
		PriorityLevel:    r.PriorityLevel,
		AccountManager:   r.AccountManager,
	}, nil
}

// SMERelationshipResponse represents an SME relationship
type SMERelationshipResponse struct {
	ID                uuid.UUID       `json:"id"`
	PartnerID         uuid.UUID       `json:"partnerId"`
	RelationshipType  string          `json:"relationshipType"`
	Status            string          `json:"status,omitempty"`
	RelationshipStart *string         `json:"relationshipStart,omitempty"`
	RelationshipEnd   *string         `json:"relationshipEnd,omitempty"`
	PaymentTerms      string          `json:"paymentTerms,omitempty"`
	CreditLimit       decimal.Decimal `json:"creditLimit"`
	PriorityLevel     int             `json:"priorityLevel"`
	AccountManager    string          `json:"accountManager,omitempty"`
}

// ToSMERelationshipResponse converts a domain SME relationship
func ToSMERelationshipResponse(s *partner.SMERelationship) SMERelationshipResponse {
	return SMERelationshipResponse{
		ID:                s.ID,
		PartnerID:         s.PartnerID,
		RelationshipType:  s.RelationshipType,
		Status:            s.Status,
		RelationshipStart: formatDate(s.Start),
		RelationshipEnd:   formatDate(s.End),
		PaymentTerms:      s.PaymentTerms,
		CreditLimit:       s.CreditLimit,
		PriorityLevel:     s.PriorityLevel,
		AccountManager:    s.AccountManager,
	}
}

// =============================================================================
// Partner type and export DTOs
// =============================================================================

// PartnerTypeRequest creates a partner type
type PartnerTypeRequest struct {
	Code        string `json:"typeCode" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
}

// PartnerTypeResponse represents a partner type
type PartnerTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"typeCode"`
	Description string    `json:"description,omitempty"`
}

// ToPartnerTypeResponse converts a domain partner type
func ToPartnerTypeResponse(pt *partner.PartnerType) PartnerTypeResponse {
	return PartnerTypeResponse{
		ID:          pt.ID,
		Code:        pt.Code,
		Description: pt.Description,
	}
}

// ExportResponse reports the outcome of a partner export
type ExportResponse struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// =============================================================================
// Helpers
// =============================================================================

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// parseDate parses an optional yyyy-mm-dd value
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, shared.InvalidInputf("%s must be a date in the form YYYY-MM-DD", field)
	}
	return &t, nil
}
