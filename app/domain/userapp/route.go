package userapp

import (
	"net/http"

	"github.com/sellerdesk/console/app/sdk/auth"
	"github.com/sellerdesk/console/app/sdk/mid"
	"github.com/sellerdesk/console/business/domain/userbus"
	"github.com/sellerdesk/console/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	admin := mid.AuthorizeAdmin()

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, admin)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, admin)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, admin)

	app.HandlerFunc(http.MethodGet, version, "/me", api.me, authen)
	app.HandlerFunc(http.MethodPut, version, "/me", api.update, authen)
	app.HandlerFunc(http.MethodDelete, version, "/me", api.delete, authen)
}
