package productapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/business/domain/productbus"
	"github.com/sellerdesk/console/business/types/money"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/quantity"
)

// Product represents an individual product in a store's catalog.
type Product struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"storeId"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (p Product) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppProduct(bus productbus.Product) Product {
	return Product{
		ID:          bus.ID.String(),
		StoreID:     bus.StoreID.String(),
		Name:        bus.Name.String(),
		SKU:         bus.SKU,
		Price:       bus.Price.Value(),
		Quantity:    bus.Quantity.Value(),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppProducts(prds []productbus.Product) []Product {
	app := make([]Product, len(prds))
	for i, prd := range prds {
		app[i] = toAppProduct(prd)
	}
	return app
}

// NewProduct defines the data needed to add a new product.
type NewProduct struct {
	Name     string  `json:"name" validate:"required"`
	SKU      string  `json:"sku" validate:"required,min=2,max=40"`
	Price    float64 `json:"price" validate:"required,gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// Decode implements the web.Decoder interface.
func (app *NewProduct) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewProduct) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewProduct(app NewProduct) (productbus.NewProduct, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return productbus.NewProduct{}, fmt.Errorf("parse name: %w", err)
	}

	price, err := money.Parse(app.Price)
	if err != nil {
		return productbus.NewProduct{}, fmt.Errorf("parse price: %w", err)
	}

	qty, err := quantity.Parse(app.Quantity)
	if err != nil {
		return productbus.NewProduct{}, fmt.Errorf("parse quantity: %w", err)
	}

	bus := productbus.NewProduct{
		Name:     nme,
		SKU:      app.SKU,
		Price:    price,
		Quantity: qty,
	}

	return bus, nil
}

// UpdateProduct defines the data needed to update a product.
type UpdateProduct struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateProduct) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateProduct) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateProduct(app UpdateProduct) (productbus.UpdateProduct, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return productbus.UpdateProduct{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var price *money.Money
	if app.Price != nil {
		p, err := money.Parse(*app.Price)
		if err != nil {
			return productbus.UpdateProduct{}, fmt.Errorf("parse price: %w", err)
		}
		price = &p
	}

	var qty *quantity.Quantity
	if app.Quantity != nil {
		q, err := quantity.Parse(*app.Quantity)
		if err != nil {
			return productbus.UpdateProduct{}, fmt.Errorf("parse quantity: %w", err)
		}
		qty = &q
	}

	bus := productbus.UpdateProduct{
		Name:     nme,
		Price:    price,
		Quantity: qty,
	}

	return bus, nil
}
