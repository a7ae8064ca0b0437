package storebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/types/name"
)

// Store represents a managed merchant organization in the system. A disabled
// store rejects all access regardless of membership.
type Store struct {
	ID        uuid.UUID
	Name      name.Name
	Slug      string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStore contains information needed to create a new store.
type NewStore struct {
	Name name.Name
	Slug string
}

// UpdateStore contains information needed to update a store.
type UpdateStore struct {
	Name    *name.Name
	Enabled *bool
}
