package storeapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/app/sdk/auth"
	"github.com/sellerdesk/console/app/sdk/mid"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log           *logger.Logger
	DB            *sqlx.DB
	Auth          *auth.Auth
	Resolver      *access.Resolver
	StoreBus      *storebus.Core
	MembershipBus *membershipbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveStore(cfg.Log, cfg.Resolver)
	transaction := mid.BeginCommitRollback(cfg.Log, sqldb.NewBeginner(cfg.DB))

	anyMember := mid.Authorize(role.Owner, role.Admin, role.Manager, role.Staff)
	managers := mid.Authorize(role.Owner, role.Admin)
	owners := mid.Authorize(role.Owner)

	api := newApp(cfg.StoreBus, cfg.MembershipBus)

	app.HandlerFunc(http.MethodPost, version, "/stores", api.create, authen, transaction)

	app.HandlerFunc(http.MethodGet, version, "/stores/{store_id}", api.show, authen, resolve, anyMember)
	app.HandlerFunc(http.MethodPut, version, "/stores/{store_id}", api.update, authen, resolve, managers)
	app.HandlerFunc(http.MethodDelete, version, "/stores/{store_id}", api.delete, authen, resolve, owners)

	app.HandlerFunc(http.MethodGet, version, "/stores/{store_id}/members", api.queryMembers, authen, resolve, managers)
	app.HandlerFunc(http.MethodPost, version, "/stores/{store_id}/members", api.addMember, authen, resolve, managers)
	app.HandlerFunc(http.MethodPut, version, "/stores/{store_id}/members/{user_id}/role", api.updateMemberRole, authen, resolve, managers)
	app.HandlerFunc(http.MethodPut, version, "/stores/{store_id}/members/{user_id}/status", api.updateMemberStatus, authen, resolve, managers)
	app.HandlerFunc(http.MethodDelete, version, "/stores/{store_id}/members/{user_id}", api.removeMember, authen, resolve, managers)

	app.HandlerFunc(http.MethodPut, version, "/stores/{store_id}/primary", api.setPrimary, authen, resolve, anyMember)
}
