package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxTagNameLength is the longest accepted tag name
const MaxTagNameLength = 100

var colorHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag is a label that can be attached to partners
type Tag struct {
	shared.BaseEntity
	Name        string
	ColorHex    string
	Description string
}

// NewTag creates a tag
func NewTag(name, colorHex, description string) (*Tag, error) {
	t := &Tag{BaseEntity: shared.NewBaseEntity()}
	if err := t.apply(name, colorHex, description); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the tag attributes
func (t *Tag) Update(name, colorHex, description string) error {
	if err := t.apply(name, colorHex, description); err != nil {
		return err
	}
	t.Touch()
	return nil
}

func (t *Tag) apply(name, colorHex, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.InvalidInputf("Tag name cannot be empty")
	}
	if err := maxLen("tag name", name, MaxTagNameLength); err != nil {
		return err
	}
	if err := validateColorHex(colorHex); err != nil {
		return err
	}
	if err := maxLen("description", description, 500); err != nil {
		return err
	}
	t.Name = name
	t.ColorHex = strings.ToLower(colorHex)
	t.Description = description
	return nil
}

func validateColorHex(colorHex string) error {
	if colorHex != "" && !colorHexPattern.MatchString(colorHex) {
		return shared.InvalidInputf("Color must be a hex value like #1a2b3c")
	}
	return nil
}

// PartnerTag records that a tag was attached to a partner
type PartnerTag struct {
	ID        uuid.UUID
	PartnerID uuid.UUID
	TagID     uuid.UUID
	Tag       *Tag
	TaggedAt  time.Time
	TaggedBy  string
}

// NewPartnerTag creates an assignment stamped with the current time
func NewPartnerTag(partnerID uuid.UUID, tag *Tag, taggedBy string) *PartnerTag {
	return &PartnerTag{
		ID:        uuid.New(),
		PartnerID: partnerID,
		TagID:     tag.ID,
		Tag:       tag,
		TaggedAt:  time.Now(),
		TaggedBy:  taggedBy,
	}
}
