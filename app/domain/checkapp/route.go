package checkapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build string
	Log   *logger.Logger
	DB    *sqlx.DB
}

// Routes adds specific routes for this group. The check routes skip the
// application middleware so a failing collaborator cannot block them.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Build, cfg.Log, cfg.DB)

	app.HandlerFuncNoMid(http.MethodGet, version, "/liveness", api.liveness)
	app.HandlerFuncNoMid(http.MethodGet, version, "/readiness", api.readiness)
}
