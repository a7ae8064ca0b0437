package productdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/domain/productbus"
	"github.com/sellerdesk/console/business/types/money"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/quantity"
)

type product struct {
	ID        uuid.UUID `db:"product_id"`
	StoreID   uuid.UUID `db:"store_id"`
	Name      string    `db:"name"`
	SKU       string    `db:"sku"`
	Price     float64   `db:"price"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBProduct(bus productbus.Product) product {
	return product{
		ID:        bus.ID,
		StoreID:   bus.StoreID,
		Name:      bus.Name.String(),
		SKU:       bus.SKU,
		Price:     bus.Price.Value(),
		Quantity:  bus.Quantity.Value(),
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusProduct(db product) (productbus.Product, error) {
	n, err := name.Parse(db.Name)
	if err != nil {
		return productbus.Product{}, fmt.Errorf("parse name: %w", err)
	}

	price, err := money.Parse(db.Price)
	if err != nil {
		return productbus.Product{}, fmt.Errorf("parse price: %w", err)
	}

	qty, err := quantity.Parse(db.Quantity)
	if err != nil {
		return productbus.Product{}, fmt.Errorf("parse quantity: %w", err)
	}

	bus := productbus.Product{
		ID:        db.ID,
		StoreID:   db.StoreID,
		Name:      n,
		SKU:       db.SKU,
		Price:     price,
		Quantity:  qty,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusProducts(dbs []product) ([]productbus.Product, error) {
	bus := make([]productbus.Product, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusProduct(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
