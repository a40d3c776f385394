package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBaseEntity_Stamps(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	restore := Now
	Now = func() time.Time { return fixed }
	t.Cleanup(func() { Now = restore })

	e := NewBaseEntity()
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, fixed, e.CreatedAt)
	assert.Equal(t, fixed, e.UpdatedAt)

	later := fixed.Add(time.Hour)
	Now = func() time.Time { return later }
	e.Touch()
	assert.Equal(t, fixed, e.CreatedAt)
	assert.Equal(t, later, e.UpdatedAt)
}
