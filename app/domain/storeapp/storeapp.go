// Package storeapp maintains the handler set for store and membership
// management. Every store-scoped handler trusts the access context resolved
// by the middleware and never re-derives it.
package storeapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/app/sdk/mid"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/sdk/web"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/role"
)

type app struct {
	storeBus      *storebus.Core
	membershipBus *membershipbus.Core
}

func newApp(storeBus *storebus.Core, membershipBus *membershipbus.Core) *app {
	return &app{
		storeBus:      storeBus,
		membershipBus: membershipBus,
	}
}

// newWithTx constructs a new app value using business packages bound to
// the transaction in the context.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	storeBus, err := a.storeBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	membershipBus, err := a.membershipBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return newApp(storeBus, membershipBus), nil
}

// create adds a new store and makes the creator its owner. Both writes run
// in the request transaction so the store never exists without an owner.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewStore
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	ns, err := toBusNewStore(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	txApp, err := a.newWithTx(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "newwithtx: %s", err)
	}

	st, err := txApp.storeBus.Create(ctx, ns)
	if err != nil {
		if errors.Is(err, storebus.ErrUniqueSlug) {
			return errs.New(errs.Aborted, storebus.ErrUniqueSlug)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: store[%+v]: %s", app, err)
	}

	nm := membershipbus.NewMembership{
		UserID:    usr.ID,
		StoreID:   st.ID,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		IsPrimary: true,
	}

	if _, err := txApp.membershipBus.Grant(ctx, nm); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: owner membership: storeID[%s]: %s", st.ID, err)
	}

	return toAppStore(st)
}

// show returns the store named by the resolved access context.
func (a *app) show(ctx context.Context, _ *http.Request) web.Encoder {
	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	st, err := a.storeBus.QueryByID(ctx, ac.StoreID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query: storeID[%s]: %s", ac.StoreID, err)
	}

	return toAppStore(st)
}

// update modifies the store named by the resolved access context.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateStore
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	us, err := toBusUpdateStore(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	st, err := a.storeBus.QueryByID(ctx, ac.StoreID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query: storeID[%s]: %s", ac.StoreID, err)
	}

	updSt, err := a.storeBus.Update(ctx, st, us)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: storeID[%s] us[%+v]: %s", st.ID, us, err)
	}

	return toAppStore(updSt)
}

// delete removes the store named by the resolved access context.
func (a *app) delete(ctx context.Context, _ *http.Request) web.Encoder {
	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	st, err := a.storeBus.QueryByID(ctx, ac.StoreID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query: storeID[%s]: %s", ac.StoreID, err)
	}

	if err := a.storeBus.Delete(ctx, st); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: storeID[%s]: %s", st.ID, err)
	}

	return nil
}

// queryMembers lists the memberships of the store.
func (a *app) queryMembers(ctx context.Context, _ *http.Request) web.Encoder {
	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	ms, err := a.membershipBus.QueryByStore(ctx, ac.StoreID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query members: storeID[%s]: %s", ac.StoreID, err)
	}

	return toAppMembers(ms)
}

// addMember grants a user membership in the store.
func (a *app) addMember(ctx context.Context, r *http.Request) web.Encoder {
	var app NewMember
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	nm, err := toBusNewMembership(app, ac.StoreID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	m, err := a.membershipBus.Grant(ctx, nm)
	if err != nil {
		if errors.Is(err, membershipbus.ErrUniqueMembership) {
			return errs.New(errs.Aborted, membershipbus.ErrUniqueMembership)
		}
		return errs.Errorf(errs.InternalOnlyLog, "grant: userID[%s] storeID[%s]: %s", nm.UserID, nm.StoreID, err)
	}

	return toAppMember(m)
}

// updateMemberRole changes the role held by a member of the store.
func (a *app) updateMemberRole(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateMemberRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	newRole, err := role.Parse(app.Role)
	if err != nil {
		return errs.NewFieldErrors("role", err)
	}

	m, err := a.memberFromRequest(ctx, r)
	if err != nil {
		return errorEncoder(err)
	}

	updM, err := a.membershipBus.UpdateRole(ctx, m, newRole)
	if err != nil {
		if errors.Is(err, membershipbus.ErrLastOwner) {
			return errs.New(errs.FailedPrecondition, membershipbus.ErrLastOwner)
		}
		return errs.Errorf(errs.InternalOnlyLog, "updaterole: userID[%s] storeID[%s]: %s", m.UserID, m.StoreID, err)
	}

	return toAppMember(updM)
}

// updateMemberStatus changes the lifecycle status of a member of the store.
func (a *app) updateMemberStatus(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateMemberStatus
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	newStatus, err := memberstatus.Parse(app.Status)
	if err != nil {
		return errs.NewFieldErrors("status", err)
	}

	m, err := a.memberFromRequest(ctx, r)
	if err != nil {
		return errorEncoder(err)
	}

	updM, err := a.membershipBus.UpdateStatus(ctx, m, newStatus)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "updatestatus: userID[%s] storeID[%s]: %s", m.UserID, m.StoreID, err)
	}

	return toAppMember(updM)
}

// removeMember deletes a member from the store, refusing to remove the
// last owner.
func (a *app) removeMember(ctx context.Context, r *http.Request) web.Encoder {
	m, err := a.memberFromRequest(ctx, r)
	if err != nil {
		return errorEncoder(err)
	}

	if err := a.membershipBus.Remove(ctx, m); err != nil {
		if errors.Is(err, membershipbus.ErrLastOwner) {
			return errs.New(errs.FailedPrecondition, membershipbus.ErrLastOwner)
		}
		return errs.Errorf(errs.InternalOnlyLog, "remove: userID[%s] storeID[%s]: %s", m.UserID, m.StoreID, err)
	}

	return nil
}

// setPrimary marks the store as the authenticated user's primary store.
func (a *app) setPrimary(ctx context.Context, _ *http.Request) web.Encoder {
	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	if err := a.membershipBus.SetPrimary(ctx, usr.ID, ac.StoreID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "setprimary: userID[%s] storeID[%s]: %s", usr.ID, ac.StoreID, err)
	}

	return nil
}

// memberFromRequest loads the membership named by the user_id path
// parameter, scoped to the resolved store.
func (a *app) memberFromRequest(ctx context.Context, r *http.Request) (membershipbus.Membership, error) {
	ac, err := mid.GetAccess(ctx)
	if err != nil {
		return membershipbus.Membership{}, errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return membershipbus.Membership{}, errs.NewFieldErrors("user_id", err)
	}

	m, err := a.membershipBus.QueryByUserStore(ctx, userID, ac.StoreID)
	if err != nil {
		if errors.Is(err, membershipbus.ErrNotFound) {
			return membershipbus.Membership{}, errs.New(errs.NotFound, membershipbus.ErrNotFound)
		}
		return membershipbus.Membership{}, errs.Errorf(errs.InternalOnlyLog, "query member: userID[%s] storeID[%s]: %s", userID, ac.StoreID, err)
	}

	return m, nil
}

func errorEncoder(err error) web.Encoder {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return errs.Newf(errs.Internal, "%s", err)
}
