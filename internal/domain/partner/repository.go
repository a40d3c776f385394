package partner

import (
	"context"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	// FindByID finds a partner by its ID, with its partner type loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)

	// FindAll returns partners matching the filter ordered by partner number
	FindAll(ctx context.Context, filter shared.Filter) ([]*Partner, error)

	// Create assigns the next partner number and inserts the partner atomically
	Create(ctx context.Context, p *Partner) error

	// Save updates an existing partner; number and creation time are not touched
	Save(ctx context.Context, p *Partner) error

	// Delete removes the partner together with its address details, contacts,
	// tag assignments, relationships and SME relationships
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks whether a partner exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindAll returns addresses ordered by city and first street line
	FindAll(ctx context.Context, filter shared.Filter) ([]*Address, error)

	Save(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountPartnersUsing counts the distinct partners linked to the address
	CountPartnersUsing(ctx context.Context, addressID uuid.UUID) (int64, error)
}

// AddressDetailRepository defines the interface for partner-address links
type AddressDetailRepository interface {
	// FindByID loads the detail with its address
	FindByID(ctx context.Context, id uuid.UUID) (*AddressDetail, error)

	// FindByPartner returns the partner's details, primary first, with addresses loaded
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*AddressDetail, error)

	// FindByPartners returns the details of several partners keyed by partner ID
	FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*AddressDetail, error)

	// Save stores the detail; when it is primary every other detail of the
	// same partner is demoted in the same transaction
	Save(ctx context.Context, d *AddressDetail) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactDetailRepository defines the interface for contact persistence
type ContactDetailRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactDetail, error)

	// FindByPartner returns contacts ordered primary first, then by type
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*ContactDetail, error)

	FindByPartnerAndType(ctx context.Context, partnerID uuid.UUID, contactType ContactType) ([]*ContactDetail, error)

	// FindByPartners returns the contacts of several partners keyed by partner ID
	FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*ContactDetail, error)

	// FindPrimary returns the primary contact of a type or shared.ErrNotFound
	FindPrimary(ctx context.Context, partnerID uuid.UUID, contactType ContactType) (*ContactDetail, error)

	// Search matches value and label case-insensitively
	Search(ctx context.Context, filter shared.Filter) ([]*ContactDetail, error)

	// Save stores the contact; when it is primary the other primaries of the
	// same partner and type are cleared in the same transaction
	Save(ctx context.Context, c *ContactDetail) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)

	// FindAll returns tags ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]*Tag, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountAssignments counts partners the tag is attached to
	CountAssignments(ctx context.Context, tagID uuid.UUID) (int64, error)
}

// PartnerTagRepository defines the interface for tag assignments
type PartnerTagRepository interface {
	// FindByPartner returns assignments with tags loaded, ordered by tag name
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*PartnerTag, error)

	// FindByPartners returns the tags of several partners keyed by partner ID
	FindByPartners(ctx context.Context, partnerIDs []uuid.UUID) (map[uuid.UUID][]*PartnerTag, error)

	Exists(ctx context.Context, partnerID, tagID uuid.UUID) (bool, error)
	Save(ctx context.Context, pt *PartnerTag) error

	// Delete removes the assignment or returns shared.ErrNotFound
	Delete(ctx context.Context, partnerID, tagID uuid.UUID) error
}

// RelationshipTypeRepository defines the interface for relationship type persistence
type RelationshipTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RelationshipType, error)
	FindByName(ctx context.Context, name string) (*RelationshipType, error)

	// FindAll returns types ordered by name; filter.ActiveOnly hides inactive ones
	FindAll(ctx context.Context, filter shared.Filter) ([]*RelationshipType, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, rt *RelationshipType) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountUsages counts relationships of the type
	CountUsages(ctx context.Context, typeID uuid.UUID) (int64, error)
}

// RelationshipRepository defines the interface for partner relationships
type RelationshipRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Relationship, error)

	// FindByPartner returns edges from or to the partner, newest effectiveFrom first
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*Relationship, error)

	Save(ctx context.Context, r *Relationship) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SMERelationshipRepository defines the interface for SME relationships
type SMERelationshipRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SMERelationship, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]*SMERelationship, error)
	Save(ctx context.Context, s *SMERelationship) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartnerTypeRepository defines the interface for partner type reference data
type PartnerTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartnerType, error)

	// FindAll returns partner types ordered by code
	FindAll(ctx context.Context) ([]*PartnerType, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, pt *PartnerType) error
}
