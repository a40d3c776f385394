package shared

import (
	"time"

	"github.com/google/uuid"
)

// Now is the clock behind audit timestamps. Tests may replace it.
var Now = func() time.Time { return time.Now().UTC() }

// BaseEntity is the identity and audit stamp embedded by every partner
// record: the partner itself, its addresses, contacts, tags and relationships.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity issues a fresh random id stamped with the current time
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}
