package access

import (
	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/types/role"
)

// Principal is the authenticated identity a request acts as. PlatformAdmin
// is derived from the user record by the auth layer on every request and is
// never read from client input.
type Principal struct {
	UserID        uuid.UUID
	Email         string
	PlatformAdmin bool
}

// Access is the resolved authorization context for one (principal, store)
// pair. It is constructed once per request and handed to downstream
// handlers, which must not mutate it or re-derive access on their own.
type Access struct {
	StoreID        uuid.UUID
	StoreName      string
	Role           role.Role
	Override       bool
	OverrideReason string
}
