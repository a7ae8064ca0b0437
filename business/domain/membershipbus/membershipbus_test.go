package membershipbus_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/foundation/logger"
	"github.com/stretchr/testify/require"
)

type memberKey struct {
	userID  uuid.UUID
	storeID uuid.UUID
}

type fakeStorer struct {
	mu      sync.Mutex
	members map[memberKey]membershipbus.Membership
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{
		members: make(map[memberKey]membershipbus.Membership),
	}
}

func (s *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (membershipbus.Storer, error) {
	return s, nil
}

func (s *fakeStorer) Create(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := memberKey{m.UserID, m.StoreID}
	if _, exists := s.members[k]; exists {
		return membershipbus.ErrUniqueMembership
	}

	s.members[k] = m
	return nil
}

func (s *fakeStorer) UpdateRole(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberKey{m.UserID, m.StoreID}] = m
	return nil
}

func (s *fakeStorer) UpdateStatus(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberKey{m.UserID, m.StoreID}] = m
	return nil
}

func (s *fakeStorer) ClearPrimary(ctx context.Context, userID uuid.UUID, exceptStoreID uuid.UUID) error {
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

func (s *fakeStorer) SetPrimary(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) error {
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

func (s *fakeStorer) Delete(ctx context.Context, m membershipbus.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, memberKey{m.UserID, m.StoreID})
	return nil
}

func (s *fakeStorer) QueryByUserStore(ctx context.Context, userID uuid.UUID, storeID uuid.UUID) (membershipbus.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, exists := s.members[memberKey{userID, storeID}]
	if !exists {
		return membershipbus.Membership{}, membershipbus.ErrNotFound
	}

	return m, nil
}

func (s *fakeStorer) QueryByStore(ctx context.Context, storeID uuid.UUID) ([]membershipbus.Membership, error) {
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

func (s *fakeStorer) QueryByUser(ctx context.Context, userID uuid.UUID) ([]membershipbus.Membership, error) {
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

func newCore(t *testing.T) (*membershipbus.Core, *fakeStorer) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	str := newFakeStorer()

	return membershipbus.NewCore(log, str), str
}

func grant(t *testing.T, core *membershipbus.Core, userID uuid.UUID, storeID uuid.UUID, r role.Role) membershipbus.Membership {
	t.Helper()

	m, err := core.Grant(context.Background(), membershipbus.NewMembership{
		UserID:  userID,
		StoreID: storeID,
		Role:    r,
		Status:  memberstatus.Active,
	})
	require.NoError(t, err)

	return m
}

func TestGrantDuplicate(t *testing.T) {
	core, _ := newCore(t)

	userID := uuid.New()
	storeID := uuid.New()

	grant(t, core, userID, storeID, role.Staff)

	_, err := core.Grant(context.Background(), membershipbus.NewMembership{
		UserID:  userID,
		StoreID: storeID,
		Role:    role.Staff,
		Status:  memberstatus.Active,
	})
	require.ErrorIs(t, err, membershipbus.ErrUniqueMembership)
}

func TestGrantPrimaryResets(t *testing.T) {
	core, str := newCore(t)

	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	_, err := core.Grant(context.Background(), membershipbus.NewMembership{
		UserID:    userID,
		StoreID:   first,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		IsPrimary: true,
	})
	require.NoError(t, err)

	_, err = core.Grant(context.Background(), membershipbus.NewMembership{
		UserID:    userID,
		StoreID:   second,
		Role:      role.Staff,
		Status:    memberstatus.Active,
		IsPrimary: true,
	})
	require.NoError(t, err)

	var primaries int
	for _, m := range str.members {
		if m.IsPrimary {
			primaries++
			require.Equal(t, second, m.StoreID)
		}
	}
	require.Equal(t, 1, primaries)
}

func TestGrantConflictKeepsExistingRow(t *testing.T) {
	core, str := newCore(t)

	userID := uuid.New()
	storeID := uuid.New()

	_, err := core.Grant(context.Background(), membershipbus.NewMembership{
		UserID:    userID,
		StoreID:   storeID,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		IsPrimary: true,
	})
	require.NoError(t, err)

	_, err = core.Grant(context.Background(), membershipbus.NewMembership{
		UserID:    userID,
		StoreID:   storeID,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		IsPrimary: true,
	})
	require.ErrorIs(t, err, membershipbus.ErrUniqueMembership)

	m := str.members[memberKey{userID, storeID}]
	require.True(t, m.IsPrimary)
}

func TestSetPrimaryResets(t *testing.T) {
	core, str := newCore(t)

	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	grant(t, core, userID, first, role.Owner)
	grant(t, core, userID, second, role.Staff)

	require.NoError(t, core.SetPrimary(context.Background(), userID, first))
	require.NoError(t, core.SetPrimary(context.Background(), userID, second))

	var primaries int
	for _, m := range str.members {
		if m.IsPrimary {
			primaries++
			require.Equal(t, second, m.StoreID)
		}
	}
	require.Equal(t, 1, primaries)
}

func TestRemoveLastOwner(t *testing.T) {
	core, _ := newCore(t)

	storeID := uuid.New()
	owner := grant(t, core, uuid.New(), storeID, role.Owner)
	staff := grant(t, core, uuid.New(), storeID, role.Staff)

	t.Run("sole owner is kept", func(t *testing.T) {
		err := core.Remove(context.Background(), owner)
		require.ErrorIs(t, err, membershipbus.ErrLastOwner)
	})

	t.Run("staff can go", func(t *testing.T) {
		require.NoError(t, core.Remove(context.Background(), staff))
	})

	t.Run("spare owner can go", func(t *testing.T) {
		second := grant(t, core, uuid.New(), storeID, role.Owner)
		require.NoError(t, core.Remove(context.Background(), second))
	})
}

func TestUpdateRoleLastOwner(t *testing.T) {
	core, _ := newCore(t)

	storeID := uuid.New()
	owner := grant(t, core, uuid.New(), storeID, role.Owner)

	t.Run("demoting sole owner is refused", func(t *testing.T) {
		_, err := core.UpdateRole(context.Background(), owner, role.Admin)
		require.ErrorIs(t, err, membershipbus.ErrLastOwner)
	})

	t.Run("demotion allowed with a second owner", func(t *testing.T) {
		grant(t, core, uuid.New(), storeID, role.Owner)

		m, err := core.UpdateRole(context.Background(), owner, role.Admin)
		require.NoError(t, err)
		require.True(t, m.Role.Equal(role.Admin))
	})

	t.Run("promotion never checks owner count", func(t *testing.T) {
		staff := grant(t, core, uuid.New(), storeID, role.Staff)

		m, err := core.UpdateRole(context.Background(), staff, role.Manager)
		require.NoError(t, err)
		require.True(t, m.Role.Equal(role.Manager))
	})
}
