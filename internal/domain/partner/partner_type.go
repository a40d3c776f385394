package partner

import (
	"strings"

	"github.com/abstratium/partner/internal/domain/shared"
)

// PartnerType is reference data classifying partners (e.g. CUSTOMER, SUPPLIER)
type PartnerType struct {
	shared.BaseEntity
	Code        string
	Description string
}

// NewPartnerType creates a partner type; codes are stored upper case
func NewPartnerType(code, description string) (*PartnerType, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.InvalidInputf("Partner type code cannot be empty")
	}
	if err := maxLen("partner type code", code, 50); err != nil {
		return nil, err
	}
	return &PartnerType{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Description: description,
	}, nil
}
