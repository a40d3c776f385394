package partner

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("normalises country code", func(t *testing.T) {
		a, err := NewAddress(AddressFields{City: "Zurich", CountryCode: " ch "})
		require.NoError(t, err)
		assert.Equal(t, "CH", a.CountryCode)
	})

	t.Run("rejects three letter country", func(t *testing.T) {
		_, err := NewAddress(AddressFields{City: "Zurich", CountryCode: "CHE"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("requires street or city", func(t *testing.T) {
		_, err := NewAddress(AddressFields{PostalCode: "8000"})
		require.Error(t, err)
	})
}

func TestAddressDetail(t *testing.T) {
	_, err := NewAddressDetail(uuid.New(), uuid.New(), AddressType("HOME"), false)
	require.Error(t, err)

	d, err := NewAddressDetail(uuid.New(), uuid.New(), AddressTypeBilling, false)
	require.NoError(t, err)
	require.NoError(t, d.Update(AddressTypeShipping, true))
	assert.Equal(t, AddressTypeShipping, d.AddressType)
	assert.True(t, d.Primary)
}

func TestContactDetail(t *testing.T) {
	partnerID := uuid.New()

	t.Run("valid email", func(t *testing.T) {
		c, err := NewContactDetail(partnerID, ContactFields{ContactType: ContactTypeEmail, Value: " ada@example.com ", Primary: true})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", c.Value)
		assert.True(t, c.Primary)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewContactDetail(partnerID, ContactFields{ContactType: ContactTypeEmail, Value: "not-an-email"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("empty value", func(t *testing.T) {
		_, err := NewContactDetail(partnerID, ContactFields{ContactType: ContactTypePhone, Value: " "})
		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewContactDetail(partnerID, ContactFields{ContactType: "PIGEON", Value: "x"})
		require.Error(t, err)
	})

	t.Run("parse type", func(t *testing.T) {
		ct, err := ParseContactType("mobile")
		require.NoError(t, err)
		assert.Equal(t, ContactTypeMobile, ct)

		_, err = ParseContactType("telex")
		assert.Error(t, err)
	})
}

func TestTag(t *testing.T) {
	t.Run("valid tag", func(t *testing.T) {
		tag, err := NewTag("  VIP ", "#FF00AA", "important")
		require.NoError(t, err)
		assert.Equal(t, "VIP", tag.Name)
		assert.Equal(t, "#ff00aa", tag.ColorHex)
	})

	t.Run("bad color", func(t *testing.T) {
		_, err := NewTag("VIP", "red", "")
		require.Error(t, err)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := NewTag(strings.Repeat("x", MaxTagNameLength+1), "", "")
		require.Error(t, err)
	})

	t.Run("assignment", func(t *testing.T) {
		tag, err := NewTag("VIP", "", "")
		require.NoError(t, err)
		partnerID := uuid.New()

		pt := NewPartnerTag(partnerID, tag, "admin")
		assert.Equal(t, tag.ID, pt.TagID)
		assert.Equal(t, partnerID, pt.PartnerID)
		assert.WithinDuration(t, time.Now(), pt.TaggedAt, time.Second)
	})
}

func TestRelationship(t *testing.T) {
	rt, err := NewRelationshipType("Employer", "", "#000000")
	require.NoError(t, err)
	assert.True(t, rt.Active)

	a, b := uuid.New(), uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("self relation rejected", func(t *testing.T) {
		_, err := NewRelationship(a, a, RelationshipFields{TypeID: rt.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "itself")
	})

	t.Run("reversed period rejected", func(t *testing.T) {
		_, err := NewRelationship(a, b, RelationshipFields{TypeID: rt.ID, EffectiveFrom: &from, EffectiveTo: &to})
		require.Error(t, err)
	})

	t.Run("active window", func(t *testing.T) {
		end := from.AddDate(1, 0, 0)
		r, err := NewRelationship(a, b, RelationshipFields{TypeID: rt.ID, EffectiveFrom: &from, EffectiveTo: &end})
		require.NoError(t, err)
		assert.True(t, r.Involves(b))
		assert.False(t, r.Involves(uuid.New()))
		assert.True(t, r.ActiveAt(from.AddDate(0, 6, 0)))
		assert.False(t, r.ActiveAt(from.AddDate(-1, 0, 0)))
		assert.False(t, r.ActiveAt(end.AddDate(0, 0, 1)))
	})

	t.Run("type update deactivates", func(t *testing.T) {
		require.NoError(t, rt.Update("Employer", "pays salary", "", false))
		assert.False(t, rt.Active)
	})
}

func TestSMERelationship(t *testing.T) {
	partnerID := uuid.New()

	s, err := NewSMERelationship(partnerID, SMEFields{
		RelationshipType: "customer",
		Status:           "active",
		CreditLimit:      decimal.RequireFromString("2500.50"),
		PriorityLevel:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER", s.RelationshipType)
	assert.Equal(t, "ACTIVE", s.Status)
	assert.True(t, s.CreditLimit.Equal(decimal.RequireFromString("2500.5")))

	_, err = NewSMERelationship(partnerID, SMEFields{RelationshipType: "SUPPLIER", CreditLimit: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")

	_, err = NewSMERelationship(partnerID, SMEFields{})
	require.Error(t, err)
}
