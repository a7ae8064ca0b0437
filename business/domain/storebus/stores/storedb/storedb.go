// Package storedb contains store related CRUD functionality.
package storedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/foundation/logger"
)

// Store manages the set of APIs for store database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (storebus.Storer, error) {
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

// Create inserts a new store into the database.
func (s *Store) Create(ctx context.Context, st storebus.Store) error {
	const q = `
	INSERT INTO "public"."store"
		(store_id, name, slug, enabled, created_at, updated_at)
	VALUES
		(:store_id, :name, :slug, :enabled, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBStore(st)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "slug" || dupErr.Column == "uq_store_slug" {
				return fmt.Errorf("namedexeccontext: %w", storebus.ErrUniqueSlug)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a store document in the database.
func (s *Store) Update(ctx context.Context, st storebus.Store) error {
	const q = `
	UPDATE
		"public"."store"
	SET
		name = :name,
		enabled = :enabled,
		updated_at = :updated_at
	WHERE
		store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBStore(st)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a store from the database.
func (s *Store) Delete(ctx context.Context, st storebus.Store) error {
	const q = `
	DELETE FROM
		"public"."store"
	WHERE
		store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBStore(st)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified store from the database.
func (s *Store) QueryByID(ctx context.Context, storeID uuid.UUID) (storebus.Store, error) {
	data := struct {
		ID string `db:"store_id"`
	}{
		ID: storeID.String(),
	}

	const q = `
	SELECT
		store_id, name, slug, enabled, created_at, updated_at
	FROM
		"public"."store"
	WHERE
		store_id = :store_id`

	var dbSt storeDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return storebus.Store{}, fmt.Errorf("db: %w", storebus.ErrNotFound)
		}
		return storebus.Store{}, fmt.Errorf("db: %w", err)
	}

	return toBusStore(dbSt)
}

// QueryIDBySlug retrieves the store ID for the specified slug.
func (s *Store) QueryIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	data := struct {
		Slug string `db:"slug"`
	}{
		Slug: slug,
	}

	const q = `
	SELECT
		store_id
	FROM
		"public"."store"
	WHERE
		slug = :slug`

	var result struct {
		ID uuid.UUID `db:"store_id"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &result); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return uuid.Nil, storebus.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("db: %w", err)
	}

	return result.ID, nil
}
