package mid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/business/types/systemrole"
	"github.com/sellerdesk/console/foundation/logger"
)

// StoreHeader is the preferred way for clients to address a store.
const StoreHeader = "X-Store-ID"

// ResolveStore locates the store a request addresses, resolves the
// authenticated user's access to it, and stashes the result in the context.
// Every store-scoped route must run this before its handler.
func ResolveStore(log *logger.Logger, rsl *access.Resolver) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			usr, err := GetUser(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			storeID, err := locateStoreID(r)
			if err != nil {
				return errs.New(errs.InvalidArgument, err)
			}

			p := access.Principal{
				UserID:        usr.ID,
				Email:         usr.Email.Address,
				PlatformAdmin: usr.SystemRole.Equal(systemrole.Admin),
			}

			ac, err := rsl.Resolve(ctx, p, storeID)
			if err != nil {
				return resolveError(ctx, log, err)
			}

			ctx = setAccess(ctx, ac)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// resolveError maps a resolution failure onto the response taxonomy. Denials
// are expected outcomes and carry their reason; anything else is a fault and
// surfaces as a generic internal error.
func resolveError(ctx context.Context, log *logger.Logger, err error) web.Encoder {
	switch {
	case errors.Is(err, access.ErrMissingStore):
		return errs.New(errs.InvalidArgument, err)

	case errors.Is(err, access.ErrStoreUnavailable),
		errors.Is(err, access.ErrNoMembership),
		errors.Is(err, access.ErrMembershipPending),
		errors.Is(err, access.ErrMembershipSuspended):
		return errs.New(errs.PermissionDenied, err)

	default:
		log.Error(ctx, "resolvestore: fault", "ERROR", err)
		return errs.Newf(errs.Internal, "internal error resolving access")
	}
}

// locateStoreID finds the store identifier in the request. Precedence:
// header, then query parameter, then path parameter, then a store_id field
// in a JSON body. The body is restored after the peek so handlers can still
// decode it.
func locateStoreID(r *http.Request) (uuid.UUID, error) {
	if v := r.Header.Get(StoreHeader); v != "" {
		return parseStoreID(v)
	}

	if v := r.URL.Query().Get("store_id"); v != "" {
		return parseStoreID(v)
	}

	if v := web.Param(r, "store_id"); v != "" {
		return parseStoreID(v)
	}

	if v, err := peekBodyStoreID(r); err != nil {
		return uuid.Nil, err
	} else if v != "" {
		return parseStoreID(v)
	}

	return uuid.Nil, nil
}

func parseStoreID(v string) (uuid.UUID, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, errors.New("store id is not in its proper form")
	}

	return id, nil
}

// maxPeekBytes bounds how much of a request body is buffered while looking
// for a store identifier. A body larger than this cannot be a plain store
// addressing payload and is passed through untouched.
const maxPeekBytes = 1 << 20

func peekBodyStoreID(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	if err != nil {
		return "", errors.New("unable to read request body")
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), r.Body))

	if len(data) == 0 {
		return "", nil
	}

	var body struct {
		StoreID string `json:"store_id"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", nil
	}

	return body.StoreID, nil
}
