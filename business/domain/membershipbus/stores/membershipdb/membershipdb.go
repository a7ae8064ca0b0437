// Package membershipdb contains membership related CRUD functionality.
package membershipdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/foundation/logger"
)

// Store manages the set of APIs for membership database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (membershipbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new membership into the database. A duplicate on the
// (user, store) primary key is reported as ErrUniqueMembership.
func (s *Store) Create(ctx context.Context, m membershipbus.Membership) error {
	const q = `
	INSERT INTO store_membership
		(user_id, store_id, role, status, is_primary, created_at, updated_at)
	VALUES
		(:user_id, :store_id, :role, :status, :is_primary, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMembership(m)); err != nil {
		var dbErr *sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dbErr) {
			return fmt.Errorf("namedexeccontext: %w", membershipbus.ErrUniqueMembership)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// UpdateRole replaces a membership's role in the database.
func (s *Store) UpdateRole(ctx context.Context, m membershipbus.Membership) error {
	const q = `
	UPDATE
		store_membership
	SET
		"role" = :role,
		"updated_at" = :updated_at
	WHERE
		user_id = :user_id AND store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMembership(m)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// UpdateStatus replaces a membership's status in the database.
func (s *Store) UpdateStatus(ctx context.Context, m membershipbus.Membership) error {
	const q = `
	UPDATE
		store_membership
	SET
		"status" = :status,
		"updated_at" = :updated_at
	WHERE
		user_id = :user_id AND store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMembership(m)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// ClearPrimary unsets the primary flag on every membership the user holds
// except the one for the specified store.
func (s *Store) ClearPrimary(ctx context.Context, userID uuid.UUID, exceptStoreID uuid.UUID) error {
	data := struct {
		UserID        uuid.UUID `db:"user_id"`
		ExceptStoreID uuid.UUID `db:"except_store_id"`
	}{
		UserID:        userID,
		ExceptStoreID: exceptStoreID,
	}

	const q = `
	UPDATE
		store_membership
	SET
		"is_primary" = false
	WHERE
		user_id = :user_id AND is_primary = true AND store_id <> :except_store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// SetPrimary marks the specified membership as the user's primary store.
func (s *Store) SetPrimary(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) error {
	data := struct {
		UserID  uuid.UUID `db:"user_id"`
		StoreID uuid.UUID `db:"store_id"`
	}{
		UserID:  userID,
		StoreID: storeID,
	}

	const q = `
	UPDATE
		store_membership
	SET
		"is_primary" = true
	WHERE
		user_id = :user_id AND store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a membership from the database.
func (s *Store) Delete(ctx context.Context, m membershipbus.Membership) error {
	data := struct {
		UserID  uuid.UUID `db:"user_id"`
		StoreID uuid.UUID `db:"store_id"`
	}{
		UserID:  m.UserID,
		StoreID: m.StoreID,
	}

	const q = `
	DELETE FROM
		store_membership
	WHERE
		user_id = :user_id AND store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByUserStore gets the membership for the specified (user, store) pair.
func (s *Store) QueryByUserStore(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) (membershipbus.Membership, error) {
	data := struct {
		UserID  uuid.UUID `db:"user_id"`
		StoreID uuid.UUID `db:"store_id"`
	}{
		UserID:  userID,
		StoreID: storeID,
	}

	const q = `
	SELECT
		user_id, store_id, role, status, is_primary, created_at, updated_at
	FROM
		store_membership
	WHERE
		user_id = :user_id AND store_id = :store_id`

	var db membership
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &db); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return membershipbus.Membership{}, fmt.Errorf("db: %w", membershipbus.ErrNotFound)
		}
		return membershipbus.Membership{}, fmt.Errorf("db: %w", err)
	}

	return toBusMembership(db)
}

// QueryByStore gets the memberships for the specified store.
func (s *Store) QueryByStore(ctx context.Context, storeID uuid.UUID) ([]membershipbus.Membership, error) {
	data := struct {
		StoreID uuid.UUID `db:"store_id"`
	}{
		StoreID: storeID,
	}

	const q = `
	SELECT
		user_id, store_id, role, status, is_primary, created_at, updated_at
	FROM
		store_membership
	WHERE
		store_id = :store_id
	ORDER BY
		created_at`

	var dbs []membership
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMemberships(dbs)
}

// QueryByUser gets the memberships for the specified user.
func (s *Store) QueryByUser(ctx context.Context, userID uuid.UUID) ([]membershipbus.Membership, error) {
	data := struct {
		UserID uuid.UUID `db:"user_id"`
	}{
		UserID: userID,
	}

	const q = `
	SELECT
		user_id, store_id, role, status, is_primary, created_at, updated_at
	FROM
		store_membership
	WHERE
		user_id = :user_id
	ORDER BY
		created_at`

	var dbs []membership
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMemberships(dbs)
}
