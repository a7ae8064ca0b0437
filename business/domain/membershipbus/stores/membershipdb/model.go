package membershipdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/role"
)

type membership struct {
	UserID    uuid.UUID `db:"user_id"`
	StoreID   uuid.UUID `db:"store_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	IsPrimary bool      `db:"is_primary"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBMembership(bus membershipbus.Membership) membership {
	return membership{
		UserID:    bus.UserID,
		StoreID:   bus.StoreID,
		Role:      bus.Role.String(),
		Status:    bus.Status.String(),
		IsPrimary: bus.IsPrimary,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusMembership(db membership) (membershipbus.Membership, error) {
	r, err := role.Parse(db.Role)
	if err != nil {
		return membershipbus.Membership{}, fmt.Errorf("parse role: %w", err)
	}

	status, err := memberstatus.Parse(db.Status)
	if err != nil {
		return membershipbus.Membership{}, fmt.Errorf("parse status: %w", err)
	}

	bus := membershipbus.Membership{
		UserID:    db.UserID,
		StoreID:   db.StoreID,
		Role:      r,
		Status:    status,
		IsPrimary: db.IsPrimary,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusMemberships(dbs []membership) ([]membershipbus.Membership, error) {
	bus := make([]membershipbus.Membership, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusMembership(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
