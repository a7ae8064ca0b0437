package membershipbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/role"
)

// Membership links a user with a store and carries their role and lifecycle
// status. A (user, store) pair has at most one membership, enforced by the
// primary key in the database.
type Membership struct {
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Role      role.Role
	Status    memberstatus.Status
	IsPrimary bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMembership contains information needed to create a new membership.
type NewMembership struct {
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Role      role.Role
	Status    memberstatus.Status
	IsPrimary bool
}
