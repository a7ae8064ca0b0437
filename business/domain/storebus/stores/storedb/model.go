package storedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/types/name"
)

// storeDB represents the structure of the store table in the database.
type storeDB struct {
	ID        uuid.UUID `db:"store_id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBStore(bus storebus.Store) storeDB {
	return storeDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Slug:      bus.Slug,
		Enabled:   bus.Enabled,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusStore(db storeDB) (storebus.Store, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return storebus.Store{}, fmt.Errorf("parse name: %w", err)
	}

	return storebus.Store{
		ID:        db.ID,
		Name:      nme,
		Slug:      db.Slug,
		Enabled:   db.Enabled,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}, nil
}
