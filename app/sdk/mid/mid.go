// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/app/sdk/auth"
	"github.com/sellerdesk/console/business/domain/userbus"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	if err, hasError := e.(error); hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userKey
	accessKey
	trKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}

	return v
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the authenticated user from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

func setAccess(ctx context.Context, ac access.Access) context.Context {
	return context.WithValue(ctx, accessKey, ac)
}

// GetAccess returns the resolved store access from the context.
func GetAccess(ctx context.Context) (access.Access, error) {
	v, ok := ctx.Value(accessKey).(access.Access)
	if !ok {
		return access.Access{}, errors.New("store access not found in context")
	}

	return v, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
