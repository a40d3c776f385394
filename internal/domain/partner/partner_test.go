package partner

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name      string
		first     string
		last      string
		legal     string
		want      Kind
		wantError bool
	}{
		{name: "first name only", first: "Ada", want: KindNaturalPerson},
		{name: "last name only", last: "Lovelace", want: KindNaturalPerson},
		{name: "names win over legal name", first: "Ada", legal: "Analytical Ltd", want: KindNaturalPerson},
		{name: "legal name only", legal: "Analytical Ltd", want: KindLegalEntity},
		{name: "blank names", first: "  ", last: "\t", wantError: true},
		{name: "nothing", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := DetectKind(tt.first, tt.last, tt.legal)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, shared.ErrInvalidInput))
				assert.Contains(t, err.Error(), "Cannot determine partner type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestNewNaturalPerson(t *testing.T) {
	t.Run("creates active partner without number", func(t *testing.T) {
		p, err := NewNaturalPerson(NaturalPerson{FirstName: "Ada", LastName: "Lovelace"}, "first programmer")

		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.True(t, p.IsNaturalPerson())
		assert.False(t, p.IsLegalEntity())
		assert.Equal(t, "first programmer", p.Notes)
		assert.Zero(t, p.NumberSeq)
		assert.Empty(t, p.Number())
	})

	t.Run("rejects missing names", func(t *testing.T) {
		_, err := NewNaturalPerson(NaturalPerson{Title: "Dr"}, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "first name or a last name")
	})

	t.Run("rejects future date of birth", func(t *testing.T) {
		future := time.Now().AddDate(1, 0, 0)
		_, err := NewNaturalPerson(NaturalPerson{FirstName: "Ada", DateOfBirth: &future}, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("rejects overlong first name", func(t *testing.T) {
		_, err := NewNaturalPerson(NaturalPerson{FirstName: strings.Repeat("a", 101)}, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "First name cannot exceed 100 characters")
	})
}

func TestNewLegalEntity(t *testing.T) {
	p, err := NewLegalEntity(LegalEntity{LegalName: "Acme AG", Jurisdiction: "CH"}, "")
	require.NoError(t, err)
	assert.True(t, p.IsLegalEntity())
	assert.True(t, p.Active)

	_, err = NewLegalEntity(LegalEntity{TradingName: "Acme"}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "P00000001", FormatNumber(1))
	assert.Equal(t, "P00012345", FormatNumber(12345))
	assert.Equal(t, "P123456789", FormatNumber(123456789))
	assert.Empty(t, FormatNumber(0))
}

func TestPartner_ChangeKind(t *testing.T) {
	p, err := NewNaturalPerson(NaturalPerson{FirstName: "Ada"}, "")
	require.NoError(t, err)
	p.NumberSeq = 7
	created := p.CreatedAt
	id := p.ID

	require.NoError(t, p.BecomeLegalEntity(LegalEntity{LegalName: "Ada Consulting"}))

	assert.Equal(t, KindLegalEntity, p.Kind)
	assert.Nil(t, p.Person)
	assert.Equal(t, "Ada Consulting", p.Entity.LegalName)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, int64(7), p.NumberSeq)
	assert.Equal(t, created, p.CreatedAt)

	require.NoError(t, p.BecomeNaturalPerson(NaturalPerson{LastName: "Lovelace"}))
	assert.Nil(t, p.Entity)
	assert.Equal(t, "Lovelace", p.Person.LastName)
}

func TestPartner_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		partner *Partner
		want    string
	}{
		{
			name:    "full natural person",
			partner: &Partner{Kind: KindNaturalPerson, Person: &NaturalPerson{Title: "Dr", FirstName: "Ada", MiddleName: "King", LastName: "Lovelace"}},
			want:    "Dr Ada King Lovelace",
		},
		{
			name:    "natural person last name only",
			partner: &Partner{Kind: KindNaturalPerson, Person: &NaturalPerson{LastName: "Lovelace"}},
			want:    "Lovelace",
		},
		{
			name:    "natural person without names",
			partner: &Partner{Kind: KindNaturalPerson, Person: &NaturalPerson{}},
			want:    UnnamedNaturalPerson,
		},
		{
			name:    "trading name preferred",
			partner: &Partner{Kind: KindLegalEntity, Entity: &LegalEntity{LegalName: "Acme Holding AG", TradingName: "Acme"}},
			want:    "Acme",
		},
		{
			name:    "legal name fallback",
			partner: &Partner{Kind: KindLegalEntity, Entity: &LegalEntity{LegalName: "Acme Holding AG"}},
			want:    "Acme Holding AG",
		},
		{
			name:    "legal entity without names",
			partner: &Partner{Kind: KindLegalEntity, Entity: &LegalEntity{}},
			want:    UnnamedLegalEntity,
		},
		{
			name:    "unknown kind",
			partner: &Partner{},
			want:    UnknownPartnerType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.partner.DisplayName())
		})
	}
}

func TestPartner_AssignType(t *testing.T) {
	p, err := NewLegalEntity(LegalEntity{LegalName: "Acme"}, "")
	require.NoError(t, err)
	pt, err := NewPartnerType("customer", "Buys from us")
	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER", pt.Code)

	p.AssignType(pt)
	require.NotNil(t, p.PartnerTypeID)
	assert.Equal(t, pt.ID, *p.PartnerTypeID)

	p.AssignType(nil)
	assert.Nil(t, p.PartnerTypeID)
	assert.Nil(t, p.PartnerType)
}
