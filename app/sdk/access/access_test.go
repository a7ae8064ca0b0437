package access_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/sellerdesk/console/app/sdk/access"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/foundation/logger"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// In-memory stores

type storeStore struct {
	mu       sync.Mutex
	stores   map[uuid.UUID]storebus.Store
	queryErr error
}

func newStoreStore() *storeStore {
	return &storeStore{
		stores: make(map[uuid.UUID]storebus.Store),
	}
}

func (s *storeStore) NewWithTx(tx sqldb.CommitRollbacker) (storebus.Storer, error) {
	return s, nil
}

func (s *storeStore) Create(ctx context.Context, st storebus.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[st.ID] = st
	return nil
}

func (s *storeStore) Update(ctx context.Context, st storebus.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[st.ID] = st
	return nil
}

func (s *storeStore) Delete(ctx context.Context, st storebus.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, st.ID)
	return nil
}

func (s *storeStore) QueryByID(ctx context.Context, storeID uuid.UUID) (storebus.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queryErr != nil {
		return storebus.Store{}, s.queryErr
	}

	st, exists := s.stores[storeID]
	if !exists {
		return storebus.Store{}, storebus.ErrNotFound
	}

	return st, nil
}

func (s *storeStore) QueryIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.stores {
		if st.Slug == slug {
			return st.ID, nil
		}
	}

	return uuid.Nil, storebus.ErrNotFound
}

type memberKey struct {
	userID  uuid.UUID
	storeID uuid.UUID
}

type memberStore struct {
	mu          sync.Mutex
	members     map[memberKey]membershipbus.Membership
	queryErr    error
	creates     int
	missLookups int
}

func newMemberStore() *memberStore {
	return &memberStore{
		members: make(map[memberKey]membershipbus.Membership),
	}
}

func (s *memberStore) NewWithTx(tx sqldb.CommitRollbacker) (membershipbus.Storer, error) {
	return s, nil
}

func (s *memberStore) Create(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++

	k := memberKey{m.UserID, m.StoreID}
	if _, exists := s.members[k]; exists {
		return membershipbus.ErrUniqueMembership
	}

	s.members[k] = m
	return nil
}

func (s *memberStore) UpdateRole(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberKey{m.UserID, m.StoreID}] = m
	return nil
}

func (s *memberStore) UpdateStatus(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberKey{m.UserID, m.StoreID}] = m
	return nil
}

func (s *memberStore) ClearPrimary(ctx context.Context, userID uuid.UUID, exceptStoreID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, m := range s.members {
		if k.userID == userID && k.storeID != exceptStoreID && m.IsPrimary {
			m.IsPrimary = false
			s.members[k] = m
		}
	}
	return nil
}

func (s *memberStore) SetPrimary(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := memberKey{userID, storeID}
	m, exists := s.members[k]
	if !exists {
		return membershipbus.ErrNotFound
	}
	m.IsPrimary = true
	s.members[k] = m
	return nil
}

func (s *memberStore) Delete(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, memberKey{m.UserID, m.StoreID})
	return nil
}

func (s *memberStore) QueryByUserStore(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) (membershipbus.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queryErr != nil {
		return membershipbus.Membership{}, s.queryErr
	}

	if s.missLookups > 0 {
		s.missLookups--
		return membershipbus.Membership{}, membershipbus.ErrNotFound
	}

	m, exists := s.members[memberKey{userID, storeID}]
	if !exists {
		return membershipbus.Membership{}, membershipbus.ErrNotFound
	}

	return m, nil
}

func (s *memberStore) QueryByStore(ctx context.Context, storeID uuid.UUID) ([]membershipbus.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ms []membershipbus.Membership
	for k, m := range s.members {
		if k.storeID == storeID {
			ms = append(ms, m)
		}
	}
	return ms, nil
}

func (s *memberStore) QueryByUser(ctx context.Context, userID uuid.UUID) ([]membershipbus.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ms []membershipbus.Membership
	for k, m := range s.members {
		if k.userID == userID {
			ms = append(ms, m)
		}
	}
	return ms, nil
}

// =============================================================================
// Fixture

type fixture struct {
	storeStr  *storeStore
	memberStr *memberStore
	storeBus  *storebus.Core
	memberBus *membershipbus.Core
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	storeStr := newStoreStore()
	memberStr := newMemberStore()

	return &fixture{
		storeStr:  storeStr,
		memberStr: memberStr,
		storeBus:  storebus.NewCore(log, storeStr),
		memberBus: membershipbus.NewCore(log, memberStr),
		now:       time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) resolver(breakGlassID uuid.UUID) *access.Resolver {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return access.NewResolver(access.Config{
		Log:           log,
		StoreBus:      f.storeBus,
		MembershipBus: f.memberBus,
		BreakGlassID:  breakGlassID,
		Now:           func() time.Time { return f.now },
	})
}

func (f *fixture) addStore(t *testing.T, enabled bool, createdAt time.Time) storebus.Store {
	t.Helper()

	st := storebus.Store{
		ID:        uuid.New(),
		Name:      name.MustParse("Test Store"),
		Slug:      "test-store-" + uuid.NewString()[:8],
		Enabled:   enabled,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	f.storeStr.stores[st.ID] = st

	return st
}

func (f *fixture) addMember(t *testing.T, userID uuid.UUID, storeID uuid.UUID, r role.Role, status memberstatus.Status) {
	t.Helper()

	f.memberStr.members[memberKey{userID, storeID}] = membershipbus.Membership{
		UserID:    userID,
		StoreID:   storeID,
		Role:      r,
		Status:    status,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
}

// =============================================================================
// Tests

func TestResolveMissingStore(t *testing.T) {
	f := newFixture(t)
	rsl := f.resolver(uuid.Nil)

	p := access.Principal{UserID: uuid.New()}

	_, err := rsl.Resolve(context.Background(), p, uuid.Nil)
	require.ErrorIs(t, err, access.ErrMissingStore)
}

func TestResolveOrdinary(t *testing.T) {
	f := newFixture(t)
	rsl := f.resolver(uuid.Nil)

	st := f.addStore(t, true, f.now.Add(-time.Hour))
	userID := uuid.New()
	f.addMember(t, userID, st.ID, role.Manager, memberstatus.Active)

	ac, err := rsl.Resolve(context.Background(), access.Principal{UserID: userID}, st.ID)
	require.NoError(t, err)
	require.Equal(t, st.ID, ac.StoreID)
	require.Equal(t, st.Name.String(), ac.StoreName)
	require.True(t, ac.Role.Equal(role.Manager))
	require.False(t, ac.Override)
}

func TestResolveStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	rsl := f.resolver(uuid.Nil)

	userID := uuid.New()

	t.Run("unknown store", func(t *testing.T) {
		_, err := rsl.Resolve(context.Background(), access.Principal{UserID: userID}, uuid.New())
		require.ErrorIs(t, err, access.ErrStoreUnavailable)
	})

	t.Run("disabled store denies active owner", func(t *testing.T) {
		st := f.addStore(t, false, f.now.Add(-time.Hour))
		f.addMember(t, userID, st.ID, role.Owner, memberstatus.Active)

		_, err := rsl.Resolve(context.Background(), access.Principal{UserID: userID}, st.ID)
		require.ErrorIs(t, err, access.ErrStoreUnavailable)
	})
}

func TestResolveNoMembership(t *testing.T) {
	f := newFixture(t)
	rsl := f.resolver(uuid.Nil)

	st := f.addStore(t, true, f.now.Add(-time.Hour))

	_, err := rsl.Resolve(context.Background(), access.Principal{UserID: uuid.New()}, st.ID)
	require.ErrorIs(t, err, access.ErrNoMembership)
}

func TestResolveStatusGating(t *testing.T) {
	roles := []role.Role{role.Owner, role.Admin, role.Manager, role.Staff}

	tests := []struct {
		name    string
		status  memberstatus.Status
		wantErr error
	}{
		{name: "pending denies", status: memberstatus.Pending, wantErr: access.ErrMembershipPending},
		{name: "suspended denies", status: memberstatus.Suspended, wantErr: access.ErrMembershipSuspended},
		{name: "active allows", status: memberstatus.Active, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range roles {
				f := newFixture(t)
				rsl := f.resolver(uuid.Nil)

				st := f.addStore(t, true, f.now.Add(-time.Hour))
				userID := uuid.New()
				f.addMember(t, userID, st.ID, r, tt.status)

				ac, err := rsl.Resolve(context.Background(), access.Principal{UserID: userID}, st.ID)

				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr, "role %s", r)
					continue
				}

				require.NoError(t, err, "role %s", r)
				require.True(t, ac.Role.Equal(r))
			}
		})
	}
}

func TestResolveOverride(t *testing.T) {
	t.Run("platform admin", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now.Add(-time.Hour))

		p := access.Principal{UserID: uuid.New(), PlatformAdmin: true}

		ac, err := rsl.Resolve(context.Background(), p, st.ID)
		require.NoError(t, err)
		require.True(t, ac.Role.Equal(role.Owner))
		require.True(t, ac.Override)
		require.Equal(t, access.OverridePlatformAdmin, ac.OverrideReason)
	})

	t.Run("break glass", func(t *testing.T) {
		f := newFixture(t)

		breakGlassID := uuid.New()
		rsl := f.resolver(breakGlassID)

		st := f.addStore(t, true, f.now.Add(-time.Hour))

		ac, err := rsl.Resolve(context.Background(), access.Principal{UserID: breakGlassID}, st.ID)
		require.NoError(t, err)
		require.True(t, ac.Role.Equal(role.Owner))
		require.True(t, ac.Override)
		require.Equal(t, access.OverrideBreakGlass, ac.OverrideReason)
	})

	t.Run("disabled store still denies overrides", func(t *testing.T) {
		f := newFixture(t)

		breakGlassID := uuid.New()
		rsl := f.resolver(breakGlassID)

		st := f.addStore(t, false, f.now.Add(-time.Hour))

		_, err := rsl.Resolve(context.Background(), access.Principal{UserID: breakGlassID}, st.ID)
		require.ErrorIs(t, err, access.ErrStoreUnavailable)

		p := access.Principal{UserID: uuid.New(), PlatformAdmin: true}
		_, err = rsl.Resolve(context.Background(), p, st.ID)
		require.ErrorIs(t, err, access.ErrStoreUnavailable)
	})

	t.Run("no membership row is written", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now)

		p := access.Principal{UserID: uuid.New(), PlatformAdmin: true}

		_, err := rsl.Resolve(context.Background(), p, st.ID)
		require.NoError(t, err)
		require.Zero(t, f.memberStr.creates)
	})
}

func TestResolveBootstrap(t *testing.T) {
	t.Run("fresh store grants owner", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now.Add(-time.Second))
		userID := uuid.New()

		ac, err := rsl.Resolve(context.Background(), access.Principal{UserID: userID}, st.ID)
		require.NoError(t, err)
		require.True(t, ac.Role.Equal(role.Owner))
		require.False(t, ac.Override)

		m, err := f.memberStr.QueryByUserStore(context.Background(), userID, st.ID)
		require.NoError(t, err)
		require.True(t, m.Role.Equal(role.Owner))
		require.True(t, m.Status.Equal(memberstatus.Active))
		require.True(t, m.IsPrimary)
	})

	t.Run("window boundary", func(t *testing.T) {
		tests := []struct {
			name    string
			age     time.Duration
			wantErr error
		}{
			{name: "eligible at 4m59s", age: 4*time.Minute + 59*time.Second, wantErr: nil},
			{name: "not eligible at 5m01s", age: 5*time.Minute + time.Second, wantErr: access.ErrNoMembership},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				rsl := f.resolver(uuid.Nil)

				st := f.addStore(t, true, f.now.Add(-tt.age))

				_, err := rsl.Resolve(context.Background(), access.Principal{UserID: uuid.New()}, st.ID)
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
					return
				}
				require.NoError(t, err)
			})
		}
	})

	t.Run("concurrent requests converge", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now)
		userID := uuid.New()
		p := access.Principal{UserID: userID}

		const workers = 16

		results := make([]access.Access, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		wg.Add(workers)
		for i := range workers {
			go func() {
				defer wg.Done()
				results[i], errs[i] = rsl.Resolve(context.Background(), p, st.ID)
			}()
		}
		wg.Wait()

		for i := range workers {
			require.NoError(t, errs[i])
			if diff := cmp.Diff(results[0], results[i]); diff != "" {
				t.Fatalf("request %d resolved a different context: %s", i, diff)
			}
		}

		ms, err := f.memberStr.QueryByStore(context.Background(), st.ID)
		require.NoError(t, err)
		require.Len(t, ms, 1)
		require.True(t, ms[0].IsPrimary)
	})

	t.Run("losing the insert race keeps the winner's row", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now)
		userID := uuid.New()

		f.memberStr.members[memberKey{userID, st.ID}] = membershipbus.Membership{
			UserID:    userID,
			StoreID:   st.ID,
			Role:      role.Owner,
			Status:    memberstatus.Active,
			IsPrimary: true,
			CreatedAt: f.now,
			UpdatedAt: f.now,
		}
		f.memberStr.missLookups = 1

		ac, err := rsl.Resolve(context.Background(), access.Principal{UserID: userID}, st.ID)
		require.NoError(t, err)
		require.True(t, ac.Role.Equal(role.Owner))

		m, err := f.memberStr.QueryByUserStore(context.Background(), userID, st.ID)
		require.NoError(t, err)
		require.True(t, m.IsPrimary)
	})

	t.Run("second principal is denied later", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now)
		creator := access.Principal{UserID: uuid.New()}

		f.now = st.CreatedAt.Add(time.Second)
		ac, err := rsl.Resolve(context.Background(), creator, st.ID)
		require.NoError(t, err)
		require.True(t, ac.Role.Equal(role.Owner))

		f.now = st.CreatedAt.Add(10 * time.Minute)
		stranger := access.Principal{UserID: uuid.New()}
		_, err = rsl.Resolve(context.Background(), stranger, st.ID)
		require.ErrorIs(t, err, access.ErrNoMembership)
	})
}

func TestResolveFailClosed(t *testing.T) {
	denials := []error{
		access.ErrMissingStore,
		access.ErrStoreUnavailable,
		access.ErrNoMembership,
		access.ErrMembershipPending,
		access.ErrMembershipSuspended,
	}

	t.Run("store lookup fault", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now)
		f.storeStr.queryErr = errors.New("connection reset")

		_, err := rsl.Resolve(context.Background(), access.Principal{UserID: uuid.New()}, st.ID)
		require.Error(t, err)
		for _, denial := range denials {
			require.NotErrorIs(t, err, denial)
		}
	})

	t.Run("membership lookup fault", func(t *testing.T) {
		f := newFixture(t)
		rsl := f.resolver(uuid.Nil)

		st := f.addStore(t, true, f.now)
		f.memberStr.queryErr = errors.New("connection reset")

		_, err := rsl.Resolve(context.Background(), access.Principal{UserID: uuid.New()}, st.ID)
		require.Error(t, err)
		for _, denial := range denials {
			require.NotErrorIs(t, err, denial)
		}
	})
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name    string
		role    role.Role
		allowed []role.Role
		want    bool
	}{
		{name: "owner in owner set", role: role.Owner, allowed: []role.Role{role.Owner}, want: true},
		{name: "staff not in manager set", role: role.Staff, allowed: []role.Role{role.Owner, role.Admin}, want: false},
		{name: "manager in full set", role: role.Manager, allowed: []role.Role{role.Owner, role.Admin, role.Manager, role.Staff}, want: true},
		{name: "empty set denies owner", role: role.Owner, allowed: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, access.Allowed(tt.role, tt.allowed...))
		})
	}
}
