// Package productdb contains product related CRUD functionality.
package productdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sellerdesk/console/business/domain/productbus"
	"github.com/sellerdesk/console/business/sdk/page"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/foundation/logger"
)

// Store manages the set of APIs for product database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (productbus.Storer, error) {
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

// Create adds a product to the database.
func (s *Store) Create(ctx context.Context, prd productbus.Product) error {
	const q = `
	INSERT INTO product
		(product_id, store_id, name, sku, price, quantity, created_at, updated_at)
	VALUES
		(:product_id, :store_id, :name, :sku, :price, :quantity, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBProduct(prd)); err != nil {
		var dbErr *sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dbErr) {
			return fmt.Errorf("namedexeccontext: %w", productbus.ErrUniqueSKU)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a product document in the database.
func (s *Store) Update(ctx context.Context, prd productbus.Product) error {
	const q = `
	UPDATE
		product
	SET
		"name" = :name,
		"price" = :price,
		"quantity" = :quantity,
		"updated_at" = :updated_at
	WHERE
		product_id = :product_id AND store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBProduct(prd)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a product from the database.
func (s *Store) Delete(ctx context.Context, prd productbus.Product) error {
	data := struct {
		ID      uuid.UUID `db:"product_id"`
		StoreID uuid.UUID `db:"store_id"`
	}{
		ID:      prd.ID,
		StoreID: prd.StoreID,
	}

	const q = `
	DELETE FROM
		product
	WHERE
		product_id = :product_id AND store_id = :store_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified product from the store's catalog.
func (s *Store) QueryByID(ctx context.Context, storeID uuid.UUID, productID uuid.UUID) (productbus.Product, error) {
	data := struct {
		ID      uuid.UUID `db:"product_id"`
		StoreID uuid.UUID `db:"store_id"`
	}{
		ID:      productID,
		StoreID: storeID,
	}

	const q = `
	SELECT
		product_id, store_id, name, sku, price, quantity, created_at, updated_at
	FROM
		product
	WHERE
		product_id = :product_id AND store_id = :store_id`

	var db product
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &db); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return productbus.Product{}, fmt.Errorf("db: %w", productbus.ErrNotFound)
		}
		return productbus.Product{}, fmt.Errorf("db: %w", err)
	}

	return toBusProduct(db)
}

// QueryByStore gets a page of products for the specified store.
func (s *Store) QueryByStore(ctx context.Context, storeID uuid.UUID, pg page.Page) ([]productbus.Product, error) {
	data := struct {
		StoreID     uuid.UUID `db:"store_id"`
		Offset      int       `db:"offset"`
		RowsPerPage int       `db:"rows_per_page"`
	}{
		StoreID:     storeID,
		Offset:      (pg.Number() - 1) * pg.RowsPerPage(),
		RowsPerPage: pg.RowsPerPage(),
	}

	const q = `
	SELECT
		product_id, store_id, name, sku, price, quantity, created_at, updated_at
	FROM
		product
	WHERE
		store_id = :store_id
	ORDER BY
		name
	OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY`

	var dbs []product
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusProducts(dbs)
}

// CountByStore returns the total number of products in the store.
func (s *Store) CountByStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	data := struct {
		StoreID uuid.UUID `db:"store_id"`
	}{
		StoreID: storeID,
	}

	const q = `
	SELECT
		count(1) AS count
	FROM
		product
	WHERE
		store_id = :store_id`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return count.Count, nil
}
