package partner

import (
	"fmt"
	"strings"
	"time"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind discriminates the two partner shapes
type Kind string

const (
	KindNaturalPerson Kind = "NATURAL_PERSON"
	KindLegalEntity   Kind = "LEGAL_ENTITY"
)

// IsValid reports whether k is a known partner kind
func (k Kind) IsValid() bool {
	return k == KindNaturalPerson || k == KindLegalEntity
}

// NumberPrefix is prepended to the zero-padded sequence to form a partner number
const NumberPrefix = "P"

// Display names used when a partner has no usable name
const (
	UnnamedNaturalPerson = "Unnamed Natural Person"
	UnnamedLegalEntity   = "Unnamed Legal Entity"
	UnknownPartnerType   = "Unknown Partner Type"
)

// NaturalPerson holds the attributes of a partner that is a human being
type NaturalPerson struct {
	FirstName         string
	LastName          string
	MiddleName        string
	Title             string
	DateOfBirth       *time.Time
	TaxID             string
	PreferredLanguage string
}

// LegalEntity holds the attributes of a partner that is an organization
type LegalEntity struct {
	LegalName          string
	TradingName        string
	RegistrationNumber string
	TaxID              string
	LegalForm          string
	IncorporationDate  *time.Time
	Jurisdiction       string
}

// Partner is the aggregate root of the partner context.
// Exactly one of Person and Entity is set, matching Kind.
type Partner struct {
	shared.BaseEntity
	NumberSeq     int64
	Kind          Kind
	PartnerTypeID *uuid.UUID
	PartnerType   *PartnerType
	Active        bool
	Notes         string
	Person        *NaturalPerson
	Entity        *LegalEntity
}

// NewNaturalPerson creates an active natural-person partner.
// The sequence number is assigned by the repository on insert.
func NewNaturalPerson(person NaturalPerson, notes string) (*Partner, error) {
	if err := validateNaturalPerson(&person); err != nil {
		return nil, err
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       KindNaturalPerson,
		Active:     true,
		Notes:      notes,
		Person:     &person,
	}, nil
}

// NewLegalEntity creates an active legal-entity partner
func NewLegalEntity(entity LegalEntity, notes string) (*Partner, error) {
	if err := validateLegalEntity(&entity); err != nil {
		return nil, err
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       KindLegalEntity,
		Active:     true,
		Notes:      notes,
		Entity:     &entity,
	}, nil
}

// DetectKind decides the partner kind from the names present in a request:
// a first or last name means a natural person, otherwise a legal name means
// a legal entity.
func DetectKind(firstName, lastName, legalName string) (Kind, error) {
	switch {
	case strings.TrimSpace(firstName) != "" || strings.TrimSpace(lastName) != "":
		return KindNaturalPerson, nil
	case strings.TrimSpace(legalName) != "":
		return KindLegalEntity, nil
	default:
		return "", shared.InvalidInputf("Cannot determine partner type from request. " +
			"Provide either firstName/lastName for Natural Person or legalName for Legal Entity.")
	}
}

// Number returns the human-readable partner number, e.g. P00000042
func (p *Partner) Number() string {
	return FormatNumber(p.NumberSeq)
}

// FormatNumber formats a sequence value as a partner number
func FormatNumber(seq int64) string {
	if seq <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%08d", NumberPrefix, seq)
}

// IsNaturalPerson reports whether the partner is a natural person
func (p *Partner) IsNaturalPerson() bool {
	return p.Kind == KindNaturalPerson && p.Person != nil
}

// IsLegalEntity reports whether the partner is a legal entity
func (p *Partner) IsLegalEntity() bool {
	return p.Kind == KindLegalEntity && p.Entity != nil
}

// BecomeNaturalPerson replaces the partner's profile with natural-person data.
// Identity, number and creation time are kept.
func (p *Partner) BecomeNaturalPerson(person NaturalPerson) error {
	if err := validateNaturalPerson(&person); err != nil {
		return err
	}
	p.Kind = KindNaturalPerson
	p.Person = &person
	p.Entity = nil
	p.Touch()
	return nil
}

// BecomeLegalEntity replaces the partner's profile with legal-entity data
func (p *Partner) BecomeLegalEntity(entity LegalEntity) error {
	if err := validateLegalEntity(&entity); err != nil {
		return err
	}
	p.Kind = KindLegalEntity
	p.Entity = &entity
	p.Person = nil
	p.Touch()
	return nil
}

// SetNotes updates the free-text notes
func (p *Partner) SetNotes(notes string) {
	p.Notes = notes
	p.Touch()
}

// SetActive toggles the active flag
func (p *Partner) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// AssignType links the partner to a partner type, or clears it when pt is nil
func (p *Partner) AssignType(pt *PartnerType) {
	if pt == nil {
		p.PartnerTypeID = nil
		p.PartnerType = nil
	} else {
		id := pt.ID
		p.PartnerTypeID = &id
		p.PartnerType = pt
	}
	p.Touch()
}

// DisplayName returns the name used in exports and listings
func (p *Partner) DisplayName() string {
	switch p.Kind {
	case KindNaturalPerson:
		if p.Person == nil {
			return UnnamedNaturalPerson
		}
		name := joinNonEmpty(" ", p.Person.Title, p.Person.FirstName, p.Person.MiddleName, p.Person.LastName)
		if name == "" {
			return UnnamedNaturalPerson
		}
		return name
	case KindLegalEntity:
		if p.Entity == nil {
			return UnnamedLegalEntity
		}
		if name := strings.TrimSpace(p.Entity.TradingName); name != "" {
			return name
		}
		if name := strings.TrimSpace(p.Entity.LegalName); name != "" {
			return name
		}
		return UnnamedLegalEntity
	default:
		return UnknownPartnerType
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}

// Validation functions

func validateNaturalPerson(person *NaturalPerson) error {
	if strings.TrimSpace(person.FirstName) == "" && strings.TrimSpace(person.LastName) == "" {
		return shared.InvalidInputf("Natural person requires a first name or a last name")
	}
	if err := maxLen("first name", person.FirstName, 100); err != nil {
		return err
	}
	if err := maxLen("last name", person.LastName, 100); err != nil {
		return err
	}
	if err := maxLen("middle name", person.MiddleName, 100); err != nil {
		return err
	}
	if err := maxLen("title", person.Title, 50); err != nil {
		return err
	}
	if err := maxLen("tax id", person.TaxID, 50); err != nil {
		return err
	}
	if err := maxLen("preferred language", person.PreferredLanguage, 10); err != nil {
		return err
	}
	if person.DateOfBirth != nil && person.DateOfBirth.After(time.Now()) {
		return shared.InvalidInputf("Date of birth cannot be in the future")
	}
	return nil
}

func validateLegalEntity(entity *LegalEntity) error {
	if strings.TrimSpace(entity.LegalName) == "" {
		return shared.InvalidInputf("Legal entity requires a legal name")
	}
	if err := maxLen("legal name", entity.LegalName, 255); err != nil {
		return err
	}
	if err := maxLen("trading name", entity.TradingName, 255); err != nil {
		return err
	}
	if err := maxLen("registration number", entity.RegistrationNumber, 100); err != nil {
		return err
	}
	if err := maxLen("tax id", entity.TaxID, 50); err != nil {
		return err
	}
	if err := maxLen("legal form", entity.LegalForm, 100); err != nil {
		return err
	}
	if err := maxLen("jurisdiction", entity.Jurisdiction, 100); err != nil {
		return err
	}
	return nil
}

func maxLen(field, value string, limit int) error {
	if len([]rune(value)) > limit {
		return shared.InvalidInputf("%s cannot exceed %d characters", capitalize(field), limit)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
