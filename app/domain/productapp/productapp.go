// Package productapp maintains the handler set for the product catalog.
// The store a request operates on always comes from the resolved access
// context, never from the payload.
package productapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/app/sdk/mid"
	"github.com/sellerdesk/console/app/sdk/query"
	"github.com/sellerdesk/console/business/domain/productbus"
	"github.com/sellerdesk/console/business/sdk/page"
	"github.com/sellerdesk/console/business/sdk/web"
)

type app struct {
	productBus *productbus.Core
}

func newApp(productBus *productbus.Core) *app {
	return &app{
		productBus: productBus,
	}
}

// create adds a new product to the store's catalog.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewProduct
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	np, err := toBusNewProduct(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	np.StoreID = ac.StoreID

	prd, err := a.productBus.Create(ctx, np)
	if err != nil {
		if errors.Is(err, productbus.ErrUniqueSKU) {
			return errs.New(errs.Aborted, productbus.ErrUniqueSKU)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: prd[%+v]: %s", app, err)
	}

	return toAppProduct(prd)
}

// update modifies a product in the store's catalog.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateProduct
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	prd, err := a.productFromRequest(ctx, r)
	if err != nil {
		return errorEncoder(err)
	}

	up, err := toBusUpdateProduct(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updPrd, err := a.productBus.Update(ctx, prd, up)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: productID[%s] up[%+v]: %s", prd.ID, up, err)
	}

	return toAppProduct(updPrd)
}

// delete removes a product from the store's catalog.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	prd, err := a.productFromRequest(ctx, r)
	if err != nil {
		return errorEncoder(err)
	}

	if err := a.productBus.Delete(ctx, prd); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: productID[%s]: %s", prd.ID, err)
	}

	return nil
}

// query returns a page of the store's products.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	values := r.URL.Query()

	pg, err := page.Parse(values.Get("page"), values.Get("rows"))
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	prds, err := a.productBus.QueryByStore(ctx, ac.StoreID, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.productBus.CountByStore(ctx, ac.StoreID)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppProducts(prds), total, pg)
}

// queryByID returns the requested product.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	prd, err := a.productFromRequest(ctx, r)
	if err != nil {
		return errorEncoder(err)
	}

	return toAppProduct(prd)
}

// productFromRequest loads the product named by the product_id path
// parameter, scoped to the resolved store.
func (a *app) productFromRequest(ctx context.Context, r *http.Request) (productbus.Product, error) {
	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return productbus.Product{}, errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	productID, err := uuid.Parse(web.Param(r, "product_id"))
	if err != nil {
		return productbus.Product{}, errs.NewFieldErrors("product_id", err)
	}

	prd, err := a.productBus.QueryByID(ctx, ac.StoreID, productID)
	if err != nil {
		if errors.Is(err, productbus.ErrNotFound) {
			return productbus.Product{}, errs.New(errs.NotFound, productbus.ErrNotFound)
		}
		return productbus.Product{}, errs.Errorf(errs.InternalOnlyLog, "query: productID[%s]: %s", productID, err)
	}

	return prd, nil
}

func errorEncoder(err error) web.Encoder {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return errs.Newf(errs.Internal, "%s", err)
}
