package partner

import (
	"strings"
	"time"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// RelationshipType names a kind of edge between two partners, e.g. "Employer"
type RelationshipType struct {
	shared.BaseEntity
	Name        string
	Description string
	ColorHex    string
	Active      bool
}

// NewRelationshipType creates an active relationship type
func NewRelationshipType(name, description, colorHex string) (*RelationshipType, error) {
	rt := &RelationshipType{BaseEntity: shared.NewBaseEntity(), Active: true}
	if err := rt.apply(name, description, colorHex); err != nil {
		return nil, err
	}
	return rt, nil
}

// Update replaces the relationship type attributes
func (rt *RelationshipType) Update(name, description, colorHex string, active bool) error {
	if err := rt.apply(name, description, colorHex); err != nil {
		return err
	}
	rt.Active = active
	rt.Touch()
	return nil
}

func (rt *RelationshipType) apply(name, description, colorHex string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.InvalidInputf("Relationship type name cannot be empty")
	}
	if err := maxLen("relationship type name", name, 100); err != nil {
		return err
	}
	if err := validateColorHex(colorHex); err != nil {
		return err
	}
	rt.Name = name
	rt.Description = description
	rt.ColorHex = strings.ToLower(colorHex)
	return nil
}

// Relationship is a typed, dated edge from one partner to another
type Relationship struct {
	shared.BaseEntity
	FromPartnerID uuid.UUID
	ToPartnerID   uuid.UUID
	TypeID        uuid.UUID
	Type          *RelationshipType
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	Notes         string
}

// RelationshipFields carries the user-supplied part of a relationship
type RelationshipFields struct {
	TypeID        uuid.UUID
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	Notes         string
}

// NewRelationship creates an edge between two distinct partners
func NewRelationship(fromID, toID uuid.UUID, fields RelationshipFields) (*Relationship, error) {
	if fromID == uuid.Nil || toID == uuid.Nil {
		return nil, shared.InvalidInputf("Both partners are required")
	}
	if fromID == toID {
		return nil, shared.InvalidInputf("A partner cannot be related to itself")
	}
	if fields.TypeID == uuid.Nil {
		return nil, shared.InvalidInputf("Relationship type is required")
	}
	if err := validatePeriod(fields.EffectiveFrom, fields.EffectiveTo, "Effective to"); err != nil {
		return nil, err
	}
	return &Relationship{
		BaseEntity:    shared.NewBaseEntity(),
		FromPartnerID: fromID,
		ToPartnerID:   toID,
		TypeID:        fields.TypeID,
		EffectiveFrom: fields.EffectiveFrom,
		EffectiveTo:   fields.EffectiveTo,
		Notes:         fields.Notes,
	}, nil
}

// Involves reports whether partnerID is at either end of the edge
func (r *Relationship) Involves(partnerID uuid.UUID) bool {
	return r.FromPartnerID == partnerID || r.ToPartnerID == partnerID
}

// ActiveAt reports whether the relationship is in effect at t
func (r *Relationship) ActiveAt(t time.Time) bool {
	if r.EffectiveFrom != nil && t.Before(*r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && t.After(*r.EffectiveTo) {
		return false
	}
	return true
}

func validatePeriod(from, to *time.Time, toLabel string) error {
	if from != nil && to != nil && to.Before(*from) {
		return shared.InvalidInputf("%s date cannot be before the start date", toLabel)
	}
	return nil
}
