// Package membershipbus provides business access to the store membership
// domain. Memberships are the unit the access gate reasons about.
package membershipbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/foundation/logger"
	"github.com/sellerdesk/console/foundation/otel"
)

var (
	ErrNotFound         = errors.New("membership not found")
	ErrUniqueMembership = errors.New("membership already exists")
	ErrLastOwner        = errors.New("store must keep at least one owner")
)

// Storer defines the behavior this package needs to persist and retrieve
// data. Every mutation is a single row operation so the database can make
// it atomic without a surrounding transaction.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, m Membership) error
	UpdateRole(ctx context.Context, m Membership) error
	UpdateStatus(ctx context.Context, m Membership) error
	ClearPrimary(ctx context.Context, userID uuid.UUID, exceptStoreID uuid.UUID) error
	SetPrimary(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) error
	Delete(ctx context.Context, m Membership) error
	QueryByUserStore(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) (Membership, error)
	QueryByStore(ctx context.Context, storeID uuid.UUID) ([]Membership, error)
	QueryByUser(ctx context.Context, userID uuid.UUID) ([]Membership, error)
}

// Core manages the set of APIs for membership access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for membership api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newwithtx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Grant adds a new membership to the system. A conflict on the (user, store)
// pair surfaces as ErrUniqueMembership so callers can re-read the winning row.
// Other primary flags the user holds are cleared only after the insert
// succeeds, so a losing grant leaves the winner's row untouched.
func (c *Core) Grant(ctx context.Context, nm NewMembership) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.grant")
	defer span.End()

	now := time.Now()

	m := Membership{
		UserID:    nm.UserID,
		StoreID:   nm.StoreID,
		Role:      nm.Role,
		Status:    nm.Status,
		IsPrimary: nm.IsPrimary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, m); err != nil {
		return Membership{}, fmt.Errorf("create: %w", err)
	}

	if nm.IsPrimary {
		if err := c.storer.ClearPrimary(ctx, nm.UserID, nm.StoreID); err != nil {
			return Membership{}, fmt.Errorf("clearprimary: %w", err)
		}
	}

	return m, nil
}

// UpdateRole changes the role a membership carries. Demoting the last
// remaining owner of a store is refused.
func (c *Core) UpdateRole(ctx context.Context, m Membership, newRole role.Role) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.updateRole")
	defer span.End()

	if m.Role.Equal(role.Owner) && !newRole.Equal(role.Owner) {
		last, err := c.isLastOwner(ctx, m)
		if err != nil {
			return Membership{}, err
		}
		if last {
			return Membership{}, ErrLastOwner
		}
	}

	m.Role = newRole
	m.UpdatedAt = time.Now()

	if err := c.storer.UpdateRole(ctx, m); err != nil {
		return Membership{}, fmt.Errorf("updaterole: %w", err)
	}

	return m, nil
}

// UpdateStatus changes the lifecycle status of a membership.
func (c *Core) UpdateStatus(ctx context.Context, m Membership, newStatus memberstatus.Status) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.updateStatus")
	defer span.End()

	m.Status = newStatus
	m.UpdatedAt = time.Now()

	if err := c.storer.UpdateStatus(ctx, m); err != nil {
		return Membership{}, fmt.Errorf("updatestatus: %w", err)
	}

	return m, nil
}

// SetPrimary marks the membership as the user's primary store, clearing any
// other primary flag the user holds first so at most one remains set.
func (c *Core) SetPrimary(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.setPrimary")
	defer span.End()

	if err := c.storer.ClearPrimary(ctx, userID, storeID); err != nil {
		return fmt.Errorf("clearprimary: %w", err)
	}

	if err := c.storer.SetPrimary(ctx, userID, storeID); err != nil {
		return fmt.Errorf("setprimary: %w", err)
	}

	return nil
}

// Remove deletes a membership. Removing the sole remaining owner of a store
// is refused regardless of who asks.
func (c *Core) Remove(ctx context.Context, m Membership) error {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.remove")
	defer span.End()

	if m.Role.Equal(role.Owner) {
		last, err := c.isLastOwner(ctx, m)
		if err != nil {
			return err
		}
		if last {
			return ErrLastOwner
		}
	}

	if err := c.storer.Delete(ctx, m); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByUserStore finds the membership for the specified (user, store) pair.
func (c *Core) QueryByUserStore(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.queryByUserStore")
	defer span.End()

	m, err := c.storer.QueryByUserStore(ctx, userID, storeID)
	if err != nil {
		return Membership{}, fmt.Errorf("query: userID[%s] storeID[%s]: %w", userID, storeID, err)
	}

	return m, nil
}

// QueryByStore retrieves the memberships for the specified store.
func (c *Core) QueryByStore(ctx context.Context, storeID uuid.UUID) ([]Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.queryByStore")
	defer span.End()

	ms, err := c.storer.QueryByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("query: storeID[%s]: %w", storeID, err)
	}

	return ms, nil
}

// QueryByUser retrieves the memberships for the specified user.
func (c *Core) QueryByUser(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.queryByUser")
	defer span.End()

	ms, err := c.storer.QueryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return ms, nil
}

func (c *Core) isLastOwner(ctx context.Context, m Membership) (bool, error) {
	ms, err := c.storer.QueryByStore(ctx, m.StoreID)
	if err != nil {
		return false, fmt.Errorf("querybystore: %w", err)
	}

	var owners int
	for _, other := range ms {
		if other.Role.Equal(role.Owner) {
			owners++
		}
	}

	return owners <= 1, nil
}
