// Package productbus provides business access to the product domain. Every
// query is scoped to a single store so one tenant's catalog is never visible
// to another.
package productbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/sdk/page"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/foundation/logger"
	"github.com/sellerdesk/console/foundation/otel"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrUniqueSKU = errors.New("sku is not unique for this store")
)

// Storer defines the behavior this package needs to persist and retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, prd Product) error
	Update(ctx context.Context, prd Product) error
	Delete(ctx context.Context, prd Product) error
	QueryByID(ctx context.Context, storeID uuid.UUID, productID uuid.UUID) (Product, error)
	QueryByStore(ctx context.Context, storeID uuid.UUID, pg page.Page) ([]Product, error)
	CountByStore(ctx context.Context, storeID uuid.UUID) (int, error)
}

// Core manages the set of APIs for product access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for product api access.
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

// Create adds a new product to the system.
func (c *Core) Create(ctx context.Context, np NewProduct) (Product, error) {
	ctx, span := otel.AddSpan(ctx, "business.productbus.create")
	defer span.End()

	now := time.Now()

	prd := Product{
		ID:        uuid.New(),
		StoreID:   np.StoreID,
		Name:      np.Name,
		SKU:       np.SKU,
		Price:     np.Price,
		Quantity:  np.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, prd); err != nil {
		return Product{}, fmt.Errorf("create: %w", err)
	}

	return prd, nil
}

// Update modifies information about a product.
func (c *Core) Update(ctx context.Context, prd Product, up UpdateProduct) (Product, error) {
	ctx, span := otel.AddSpan(ctx, "business.productbus.update")
	defer span.End()

	if up.Name != nil {
		prd.Name = *up.Name
	}

	if up.Price != nil {
		prd.Price = *up.Price
	}

	if up.Quantity != nil {
		prd.Quantity = *up.Quantity
	}

	prd.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, prd); err != nil {
		return Product{}, fmt.Errorf("update: %w", err)
	}

	return prd, nil
}

// Delete removes the specified product.
func (c *Core) Delete(ctx context.Context, prd Product) error {
	ctx, span := otel.AddSpan(ctx, "business.productbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, prd); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the product identified by productID inside the given store.
func (c *Core) QueryByID(ctx context.Context, storeID uuid.UUID, productID uuid.UUID) (Product, error) {
	ctx, span := otel.AddSpan(ctx, "business.productbus.queryByID")
	defer span.End()

	prd, err := c.storer.QueryByID(ctx, storeID, productID)
	if err != nil {
		return Product{}, fmt.Errorf("query: productID[%s]: %w", productID, err)
	}

	return prd, nil
}

// QueryByStore retrieves a page of products for the specified store.
func (c *Core) QueryByStore(ctx context.Context, storeID uuid.UUID, pg page.Page) ([]Product, error) {
	ctx, span := otel.AddSpan(ctx, "business.productbus.queryByStore")
	defer span.End()

	prds, err := c.storer.QueryByStore(ctx, storeID, pg)
	if err != nil {
		return nil, fmt.Errorf("query: storeID[%s]: %w", storeID, err)
	}

	return prds, nil
}

// CountByStore returns the total number of products in the store.
func (c *Core) CountByStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.productbus.countByStore")
	defer span.End()

	return c.storer.CountByStore(ctx, storeID)
}
