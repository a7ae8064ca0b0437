package productapp

import (
	"net/http"

	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/app/sdk/auth"
	"github.com/sellerdesk/console/app/sdk/mid"
	"github.com/sellerdesk/console/business/domain/productbus"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	Auth       *auth.Auth
	Resolver   *access.Resolver
	ProductBus *productbus.Core
}

// Routes adds specific routes for this group. The store is addressed by the
// X-Store-ID header or the store_id query parameter, not the path.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveStore(cfg.Log, cfg.Resolver)

	readers := mid.Authorize(role.Owner, role.Admin, role.Manager, role.Staff)
	writers := mid.Authorize(role.Owner, role.Admin, role.Manager)

	api := newApp(cfg.ProductBus)

	app.HandlerFunc(http.MethodGet, version, "/products", api.query, authen, resolve, readers)
	app.HandlerFunc(http.MethodGet, version, "/products/{product_id}", api.queryByID, authen, resolve, readers)
	app.HandlerFunc(http.MethodPost, version, "/products", api.create, authen, resolve, writers)
	app.HandlerFunc(http.MethodPut, version, "/products/{product_id}", api.update, authen, resolve, writers)
	app.HandlerFunc(http.MethodDelete, version, "/products/{product_id}", api.delete, authen, resolve, writers)
}
