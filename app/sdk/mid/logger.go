package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/foundation/logger"
)

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = path + "?" + r.URL.RawQuery
			}

			log.Info(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			var statusCode = errStatus(resp)

			log.Info(ctx, "request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr,
				"statuscode", statusCode, "since", time.Since(now).String())

			return resp
		}

		return h
	}

	return m
}

func errStatus(resp web.Encoder) int {
	if resp == nil {
		return http.StatusNoContent
	}

	if v, ok := resp.(interface{ HTTPStatus() int }); ok {
		return v.HTTPStatus()
	}

	return http.StatusOK
}
