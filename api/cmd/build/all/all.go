// Package all binds all the routes into the specified app.
package all

import (
	"time"

	"github.com/sellerdesk/console/app/domain/authapp"
	"github.com/sellerdesk/console/app/domain/checkapp"
	"github.com/sellerdesk/console/app/domain/productapp"
	"github.com/sellerdesk/console/app/domain/storeapp"
	"github.com/sellerdesk/console/app/domain/userapp"
	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/app/sdk/auth"
	"github.com/sellerdesk/console/app/sdk/mux"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/membershipbus/stores/membershipdb"
	"github.com/sellerdesk/console/business/domain/productbus"
	"github.com/sellerdesk/console/business/domain/productbus/stores/productdb"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/domain/storebus/stores/storedb"
	"github.com/sellerdesk/console/business/domain/userbus"
	"github.com/sellerdesk/console/business/domain/userbus/stores/usercache"
	"github.com/sellerdesk/console/business/domain/userbus/stores/userdb"
	"github.com/sellerdesk/console/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	userBus := userbus.NewCore(usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), 5*time.Minute))
	storeBus := storebus.NewCore(cfg.Log, storedb.NewStore(cfg.Log, cfg.DB))
	membershipBus := membershipbus.NewCore(cfg.Log, membershipdb.NewStore(cfg.Log, cfg.DB))
	productBus := productbus.NewCore(cfg.Log, productdb.NewStore(cfg.Log, cfg.DB))

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
	})

	resolver := access.NewResolver(access.Config{
		Log:             cfg.Log,
		StoreBus:        storeBus,
		MembershipBus:   membershipBus,
		BreakGlassID:    cfg.AccessConfig.BreakGlassID,
		BootstrapWindow: cfg.AccessConfig.BootstrapWindow,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    authClient,
		UserBus: userBus,
	})

	storeapp.Routes(app, storeapp.Config{
		Log:           cfg.Log,
		DB:            cfg.DB,
		Auth:          authClient,
		Resolver:      resolver,
		StoreBus:      storeBus,
		MembershipBus: membershipBus,
	})

	productapp.Routes(app, productapp.Config{
		Log:        cfg.Log,
		Auth:       authClient,
		Resolver:   resolver,
		ProductBus: productBus,
	})
}
