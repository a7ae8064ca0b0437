package mid

import (
	"context"
	"net/http"

	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/foundation/logger"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform
// way. Unexpected errors (status >= 500) are logged.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)

			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			appErr := errs.GetError(err)
			if !errs.IsError(err) {
				appErr = errs.Newf(errs.Internal, "%s", err)
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", appErr.FileName,
				"source_err_func", appErr.FuncName)

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Newf(errs.Internal, "internal error")
			}

			return appErr
		}

		return h
	}

	return m
}
