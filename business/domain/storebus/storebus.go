// Package storebus provides business access to the store domain.
package storebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/foundation/logger"
	"github.com/sellerdesk/console/foundation/otel"
)

var (
	ErrNotFound   = errors.New("store not found")
	ErrUniqueSlug = errors.New("slug is not unique")
)

// Storer defines the behavior required by the storebus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, st Store) error
	Update(ctx context.Context, st Store) error
	Delete(ctx context.Context, st Store) error
	QueryByID(ctx context.Context, storeID uuid.UUID) (Store, error)
	QueryIDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
}

// Core manages the set of APIs for store access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for store api access.
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

// Create adds a new store to the system.
func (c *Core) Create(ctx context.Context, ns NewStore) (Store, error) {
	ctx, span := otel.AddSpan(ctx, "business.storebus.create")
	defer span.End()

	now := time.Now()

	st := Store{
		ID:        uuid.New(),
		Name:      ns.Name,
		Slug:      ns.Slug,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, st); err != nil {
		return Store{}, fmt.Errorf("create: %w", err)
	}

	return st, nil
}

// Update modifies data about a store.
func (c *Core) Update(ctx context.Context, st Store, us UpdateStore) (Store, error) {
	ctx, span := otel.AddSpan(ctx, "business.storebus.update")
	defer span.End()

	if us.Name != nil {
		st.Name = *us.Name
	}

	if us.Enabled != nil {
		st.Enabled = *us.Enabled
	}

	st.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, st); err != nil {
		return Store{}, fmt.Errorf("update: %w", err)
	}

	return st, nil
}

// Delete removes the specified store from the system.
func (c *Core) Delete(ctx context.Context, st Store) error {
	ctx, span := otel.AddSpan(ctx, "business.storebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, st); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the store by the specified ID.
func (c *Core) QueryByID(ctx context.Context, storeID uuid.UUID) (Store, error) {
	ctx, span := otel.AddSpan(ctx, "business.storebus.queryByID")
	defer span.End()

	st, err := c.storer.QueryByID(ctx, storeID)
	if err != nil {
		return Store{}, fmt.Errorf("query: storeID[%s]: %w", storeID, err)
	}

	return st, nil
}

// QueryIDBySlug returns the store ID for the specified slug string.
func (c *Core) QueryIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	ctx, span := otel.AddSpan(ctx, "business.storebus.queryIDBySlug")
	defer span.End()

	id, err := c.storer.QueryIDBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, fmt.Errorf("query by slug[%s]: %w", slug, err)
	}

	return id, nil
}
