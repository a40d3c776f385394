package partner

import (
	"regexp"
	"strings"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactType is the channel of a contact detail
type ContactType string

const (
	ContactTypeEmail   ContactType = "EMAIL"
	ContactTypePhone   ContactType = "PHONE"
	ContactTypeMobile  ContactType = "MOBILE"
	ContactTypeFax     ContactType = "FAX"
	ContactTypeWebsite ContactType = "WEBSITE"
	ContactTypeOther   ContactType = "OTHER"
)

// IsValid reports whether t is a known contact type
func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeEmail, ContactTypePhone, ContactTypeMobile, ContactTypeFax, ContactTypeWebsite, ContactTypeOther:
		return true
	default:
		return false
	}
}

// ParseContactType normalises user input into a ContactType
func ParseContactType(s string) (ContactType, error) {
	t := ContactType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.InvalidInputf("Unknown contact type '%s'", s)
	}
	return t, nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ContactDetail is a way of reaching a partner
type ContactDetail struct {
	shared.BaseEntity
	PartnerID   uuid.UUID
	ContactType ContactType
	Value       string
	Label       string
	Primary     bool
	Verified    bool
}

// ContactFields carries the mutable attributes of a contact detail
type ContactFields struct {
	ContactType ContactType
	Value       string
	Label       string
	Primary     bool
	Verified    bool
}

// NewContactDetail creates a contact detail owned by partnerID
func NewContactDetail(partnerID uuid.UUID, fields ContactFields) (*ContactDetail, error) {
	if partnerID == uuid.Nil {
		return nil, shared.InvalidInputf("Partner is required")
	}
	c := &ContactDetail{
		BaseEntity: shared.NewBaseEntity(),
		PartnerID:  partnerID,
	}
	if err := c.apply(fields); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces type, value, label and flags
func (c *ContactDetail) Update(fields ContactFields) error {
	if err := c.apply(fields); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *ContactDetail) apply(f ContactFields) error {
	if !f.ContactType.IsValid() {
		return shared.InvalidInputf("Unknown contact type '%s'", f.ContactType)
	}
	value := strings.TrimSpace(f.Value)
	if value == "" {
		return shared.InvalidInputf("Contact value cannot be empty")
	}
	if err := maxLen("contact value", value, 255); err != nil {
		return err
	}
	if err := maxLen("label", f.Label, 100); err != nil {
		return err
	}
	if f.ContactType == ContactTypeEmail && !emailPattern.MatchString(value) {
		return shared.InvalidInputf("Invalid email format")
	}

	c.ContactType = f.ContactType
	c.Value = value
	c.Label = f.Label
	c.Primary = f.Primary
	c.Verified = f.Verified
	return nil
}
