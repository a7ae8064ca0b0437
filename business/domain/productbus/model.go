package productbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/types/money"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/quantity"
)

// Product represents an individual product carried by a store.
type Product struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Name      name.Name
	SKU       string
	Price     money.Money
	Quantity  quantity.Quantity
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct is what we require from clients when adding a Product.
type NewProduct struct {
	StoreID  uuid.UUID
	Name     name.Name
	SKU      string
	Price    money.Money
	Quantity quantity.Quantity
}

// UpdateProduct defines what information may be provided to modify an
// existing Product. Pointer semantics mark which fields to change.
type UpdateProduct struct {
	Name     *name.Name
	Price    *money.Money
	Quantity *quantity.Quantity
}
