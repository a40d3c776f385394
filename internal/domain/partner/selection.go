package partner

import (
	"sort"
	"strings"
)

// PreferredAddress picks the address shown for a partner in listings.
// Order of preference: the primary detail, then a billing detail, then a
// shipping detail, then whatever comes first. Returns nil for no details.
func PreferredAddress(details []*AddressDetail) *AddressDetail {
	var billing, shipping, first *AddressDetail
	for _, d := range details {
		if d == nil {
			continue
		}
		if d.Primary {
			return d
		}
		if first == nil {
			first = d
		}
		switch d.AddressType {
		case AddressTypeBilling:
			if billing == nil {
				billing = d
			}
		case AddressTypeShipping:
			if shipping == nil {
				shipping = d
			}
		}
	}
	switch {
	case billing != nil:
		return billing
	case shipping != nil:
		return shipping
	default:
		return first
	}
}

// PreferredAddressLine renders the preferred address, or "" when there is none
func PreferredAddressLine(details []*AddressDetail) string {
	d := PreferredAddress(details)
	if d == nil {
		return ""
	}
	return d.Address.Line()
}

// PreferredContact picks the contact of the given type to show for a partner:
// primary first, then verified, then alphabetically by value.
func PreferredContact(contacts []*ContactDetail, contactType ContactType) *ContactDetail {
	candidates := make([]*ContactDetail, 0, len(contacts))
	for _, c := range contacts {
		if c != nil && c.ContactType == contactType {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Primary != b.Primary {
			return a.Primary
		}
		if a.Verified != b.Verified {
			return a.Verified
		}
		return strings.ToLower(a.Value) < strings.ToLower(b.Value)
	})
	return candidates[0]
}

// PreferredContactValue returns the value of the preferred contact, or ""
func PreferredContactValue(contacts []*ContactDetail, contactType ContactType) string {
	if c := PreferredContact(contacts, contactType); c != nil {
		return c.Value
	}
	return ""
}
