// Package access resolves which store a request may act on and under which
// role. It is the single authorization entry point: middleware calls Resolve
// once per store-scoped request and downstream handlers consume the
// resulting Access value without re-deriving anything.
package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/foundation/logger"
)

// Denial reasons returned by Resolve. Anything not in this set is an
// infrastructure fault and must never be treated as an allow.
var (
	ErrMissingStore        = errors.New("no store identifier in request")
	ErrStoreUnavailable    = errors.New("store not found or disabled")
	ErrNoMembership        = errors.New("access denied")
	ErrMembershipPending   = errors.New("membership pending approval")
	ErrMembershipSuspended = errors.New("membership suspended")
)

// Override reason tags, recorded on the Access value for logging only.
const (
	OverridePlatformAdmin = "platform_admin"
	OverrideBreakGlass    = "break_glass"
)

// DefaultBootstrapWindow bounds how long after store creation an absent
// owner membership is self-healed instead of denied.
const DefaultBootstrapWindow = 5 * time.Minute

// Config represents information required to construct a Resolver.
type Config struct {
	Log           *logger.Logger
	StoreBus      *storebus.Core
	MembershipBus *membershipbus.Core

	// BreakGlassID names a single operational account that resolves as
	// owner on every enabled store. Leave zero to disable the path.
	BreakGlassID uuid.UUID

	// BootstrapWindow defaults to DefaultBootstrapWindow when zero.
	BootstrapWindow time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Resolver decides, per request, whether a principal may act on a store.
type Resolver struct {
	log           *logger.Logger
	storeBus      *storebus.Core
	membershipBus *membershipbus.Core
	breakGlassID  uuid.UUID
	window        time.Duration
	now           func() time.Time
}

// NewResolver constructs a resolver from the specified configuration.
func NewResolver(cfg Config) *Resolver {
	window := cfg.BootstrapWindow
	if window == 0 {
		window = DefaultBootstrapWindow
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Resolver{
		log:           cfg.Log,
		storeBus:      cfg.StoreBus,
		membershipBus: cfg.MembershipBus,
		breakGlassID:  cfg.BreakGlassID,
		window:        window,
		now:           now,
	}
}

// Resolve produces the authorization context for the principal on the
// specified store, or a denial. Store lookups are performed for override
// principals too: a disabled store is a hard kill switch for everyone.
// Any store error other than a not-found resolves to a fault, never to
// an allow.
func (r *Resolver) Resolve(ctx context.Context, p Principal, storeID uuid.UUID) (Access, error) {
	if storeID == uuid.Nil {
		return Access{}, ErrMissingStore
	}

	str, err := r.storeBus.QueryByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storebus.ErrNotFound) {
			return Access{}, ErrStoreUnavailable
		}
		return Access{}, fmt.Errorf("resolve: query store: %w", err)
	}

	if !str.Enabled {
		return Access{}, ErrStoreUnavailable
	}

	if reason := r.overrideReason(p); reason != "" {
		r.log.Info(ctx, "access: override", "userID", p.UserID, "storeID", str.ID, "reason", reason)

		return Access{
			StoreID:        str.ID,
			StoreName:      str.Name.String(),
			Role:           role.Owner,
			Override:       true,
			OverrideReason: reason,
		}, nil
	}

	m, err := r.membershipBus.QueryByUserStore(ctx, p.UserID, str.ID)
	if err != nil {
		if !errors.Is(err, membershipbus.ErrNotFound) {
			return Access{}, fmt.Errorf("resolve: query membership: %w", err)
		}

		m, err = r.bootstrap(ctx, p, str)
		if err != nil {
			return Access{}, err
		}
	}

	switch m.Status {
	case memberstatus.Active:

	case memberstatus.Pending:
		return Access{}, ErrMembershipPending

	case memberstatus.Suspended:
		return Access{}, ErrMembershipSuspended

	default:
		return Access{}, ErrNoMembership
	}

	return Access{
		StoreID:   str.ID,
		StoreName: str.Name.String(),
		Role:      m.Role,
	}, nil
}

// bootstrap self-heals the gap between store creation and the owner
// membership insert. Only a freshly created store qualifies; when a
// concurrent request wins the insert race the winning row is re-read and
// used so both requests converge on the same context.
func (r *Resolver) bootstrap(ctx context.Context, p Principal, str storebus.Store) (membershipbus.Membership, error) {
	if r.now().Sub(str.CreatedAt) > r.window {
		return membershipbus.Membership{}, ErrNoMembership
	}

	nm := membershipbus.NewMembership{
		UserID:    p.UserID,
		StoreID:   str.ID,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		IsPrimary: true,
	}

	m, err := r.membershipBus.Grant(ctx, nm)
	if err != nil {
		if errors.Is(err, membershipbus.ErrUniqueMembership) {
			return r.membershipBus.QueryByUserStore(ctx, p.UserID, str.ID)
		}
		return membershipbus.Membership{}, fmt.Errorf("bootstrap: grant: %w", err)
	}

	r.log.Info(ctx, "access: bootstrap owner membership", "userID", p.UserID, "storeID", str.ID)

	return m, nil
}

func (r *Resolver) overrideReason(p Principal) string {
	if p.PlatformAdmin {
		return OverridePlatformAdmin
	}

	if r.breakGlassID != uuid.Nil && p.UserID == r.breakGlassID {
		return OverrideBreakGlass
	}

	return ""
}

// Allowed reports whether the resolved role is in the operation's
// allowed-role set. An empty set denies everything.
func Allowed(r role.Role, allowed ...role.Role) bool {
	for _, a := range allowed {
		if r.Equal(a) {
			return true
		}
	}

	return false
}
