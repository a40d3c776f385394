package partner

import (
	"strings"
	"time"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SMERelationship describes the commercial relationship a small or
// medium enterprise maintains with a partner (customer, supplier...).
type SMERelationship struct {
	shared.BaseEntity
	PartnerID        uuid.UUID
	RelationshipType string
	Status           string
	Start            *time.Time
	End              *time.Time
	PaymentTerms     string
	CreditLimit      decimal.Decimal
	PriorityLevel    int
	AccountManager   string
}

// SMEFields carries the mutable attributes of an SME relationship
type SMEFields struct {
	RelationshipType string
	Status           string
	Start            *time.Time
	End              *time.Time
	PaymentTerms     string
	CreditLimit      decimal.Decimal
	PriorityLevel    int
	AccountManager   string
}

// NewSMERelationship creates an SME relationship for partnerID
func NewSMERelationship(partnerID uuid.UUID, fields SMEFields) (*SMERelationship, error) {
	if partnerID == uuid.Nil {
		return nil, shared.InvalidInputf("Partner is required")
	}
	s := &SMERelationship{BaseEntity: shared.NewBaseEntity(), PartnerID: partnerID}
	if err := s.apply(fields); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the relationship attributes
func (s *SMERelationship) Update(fields SMEFields) error {
	if err := s.apply(fields); err != nil {
		return err
	}
	s.Touch()
	return nil
}

func (s *SMERelationship) apply(f SMEFields) error {
	relType := strings.ToUpper(strings.TrimSpace(f.RelationshipType))
	if relType == "" {
		return shared.InvalidInputf("Relationship type cannot be empty")
	}
	if f.CreditLimit.IsNegative() {
		return shared.InvalidInputf("Credit limit cannot be negative")
	}
	if f.PriorityLevel < 0 {
		return shared.InvalidInputf("Priority level cannot be negative")
	}
	if err := validatePeriod(f.Start, f.End, "Relationship end"); err != nil {
		return err
	}
	s.RelationshipType = relType
	s.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	s.Start = f.Start
	s.End = f.End
	s.PaymentTerms = f.PaymentTerms
	s.CreditLimit = f.CreditLimit
	s.PriorityLevel = f.PriorityLevel
	s.AccountManager = f.AccountManager
	return nil
}
