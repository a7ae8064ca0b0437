package mid

import (
	"context"
	"net/http"

	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/business/types/systemrole"
)

// Authorize checks the resolved store role against the operation's allowed
// set. With no roles specified every caller is denied. The denial names the
// caller's own role but never the set that would have sufficed.
func Authorize(allowed ...role.Role) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ac, err := GetAccess(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if !access.Allowed(ac.Role, allowed...) {
				return errs.Newf(errs.PermissionDenied, "insufficient permission for this operation: role %s", ac.Role)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeAdmin restricts a route to users carrying the platform level
// admin role. This is for console administration, not store membership.
func AuthorizeAdmin() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			usr, err := GetUser(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if !usr.SystemRole.Equal(systemrole.Admin) {
				return errs.Newf(errs.PermissionDenied, "insufficient permission for this operation")
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
