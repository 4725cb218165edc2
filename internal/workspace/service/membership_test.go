package service

import (
	"context"
	"testing"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/stretchr/testify/require"
)

func TestAddMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	alice := env.seedUser(t, "alice@example.com", "Alice")
	outsider := env.seedUser(t, "outsider@example.com", "Outsider")
	ws := env.createWorkspace(t, "Engineering", owner)

	t.Run("adds member row, counter, and role cache together", func(t *testing.T) {
		m, err := env.membership.AddMember(ctx, ws.ID, alice, domain.RoleMember, owner)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, m.Role)
		require.Equal(t, owner, m.InvitedBy)

		grant, err := env.store.RoleCache().GetGrant(ctx, alice, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, grant.Role)
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("adding an existing member is idempotent", func(t *testing.T) {
		m, err := env.membership.AddMember(ctx, ws.ID, alice, domain.RoleAdmin, owner)
		require.NoError(t, err)
		// The existing row wins; the role is not silently escalated.
		require.Equal(t, domain.RoleMember, m.Role)
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("the owner cannot be added as a member", func(t *testing.T) {
		_, err := env.membership.AddMember(ctx, ws.ID, owner, domain.RoleAdmin, owner)
		require.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("rejects the owner role", func(t *testing.T) {
		_, err := env.membership.AddMember(ctx, ws.ID, outsider, domain.RoleOwner, owner)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("actors without members:manage are forbidden", func(t *testing.T) {
		_, err := env.membership.AddMember(ctx, ws.ID, outsider, domain.RoleMember, alice)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.membership.AddMember(ctx, ws.ID, "no-such-user", domain.RoleMember, owner)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAddMemberLimit(t *testing.T) {
	env := newTestEnv(t)
	env.workspaces.DefaultMaxMembers = 2
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	first := env.seedUser(t, "first@example.com", "First")
	second := env.seedUser(t, "second@example.com", "Second")
	ws := env.createWorkspace(t, "Tiny", owner)

	// Capacity 2 with the implicit owner leaves room for one member.
	_, err := env.membership.AddMember(ctx, ws.ID, first, domain.RoleMember, owner)
	require.NoError(t, err)

	_, err = env.membership.AddMember(ctx, ws.ID, second, domain.RoleMember, owner)
	require.ErrorIs(t, err, ErrMemberLimitExceeded)

	// A rejected add leaves no partial state behind.
	_, err = env.store.Members().GetMember(ctx, ws.ID, second)
	require.ErrorIs(t, err, store.ErrNotFound)
	env.requireCountInvariant(t, ws.ID)

	// Freeing a slot makes the add succeed.
	require.NoError(t, env.membership.RemoveMember(ctx, ws.ID, first, owner))
	_, err = env.membership.AddMember(ctx, ws.ID, second, domain.RoleMember, owner)
	require.NoError(t, err)
	env.requireCountInvariant(t, ws.ID)
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	alice := env.seedUser(t, "alice@example.com", "Alice")
	bob := env.seedUser(t, "bob@example.com", "Bob")
	ws := env.createWorkspace(t, "Shrinking", owner)

	_, err := env.membership.AddMember(ctx, ws.ID, alice, domain.RoleMember, owner)
	require.NoError(t, err)
	_, err = env.membership.AddMember(ctx, ws.ID, bob, domain.RoleMember, owner)
	require.NoError(t, err)

	t.Run("the owner cannot be removed", func(t *testing.T) {
		require.ErrorIs(t, env.membership.RemoveMember(ctx, ws.ID, owner, owner), ErrOwnerRemoval)
	})

	t.Run("plain members cannot remove others", func(t *testing.T) {
		require.ErrorIs(t, env.membership.RemoveMember(ctx, ws.ID, bob, alice), ErrForbidden)
	})

	t.Run("members may leave on their own", func(t *testing.T) {
		require.NoError(t, env.membership.RemoveMember(ctx, ws.ID, alice, alice))

		_, err := env.store.RoleCache().GetGrant(ctx, alice, ws.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("removal survives a deleted directory record", func(t *testing.T) {
		require.NoError(t, env.store.Users().DeleteUser(ctx, bob))
		require.NoError(t, env.membership.RemoveMember(ctx, ws.ID, bob, owner))
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("removing a non-member", func(t *testing.T) {
		require.ErrorIs(t, env.membership.RemoveMember(ctx, ws.ID, alice, owner), ErrUserNotFound)
	})
}

func TestTransferOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	alice := env.seedUser(t, "alice@example.com", "Alice")
	carol := env.seedUser(t, "carol@example.com", "Carol")
	ws := env.createWorkspace(t, "Handover", owner)

	_, err := env.membership.AddMember(ctx, ws.ID, alice, domain.RoleMember, owner)
	require.NoError(t, err)

	t.Run("non-owners cannot transfer", func(t *testing.T) {
		require.ErrorIs(t, env.membership.TransferOwnership(ctx, ws.ID, carol, alice), ErrForbidden)
	})

	t.Run("transfer to the current owner is rejected", func(t *testing.T) {
		require.ErrorIs(t, env.membership.TransferOwnership(ctx, ws.ID, owner, owner), ErrAlreadyMember)
	})

	t.Run("transfer to an existing member keeps the counter", func(t *testing.T) {
		before, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)

		require.NoError(t, env.membership.TransferOwnership(ctx, ws.ID, alice, owner))

		after, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, alice, after.OwnerID)
		require.Equal(t, before.MembersCount, after.MembersCount)

		// New owner left the roster; former owner joined as admin.
		_, err = env.store.Members().GetMember(ctx, ws.ID, alice)
		require.ErrorIs(t, err, store.ErrNotFound)
		former, err := env.store.Members().GetMember(ctx, ws.ID, owner)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, former.Role)

		grant, err := env.store.RoleCache().GetGrant(ctx, alice, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleOwner, grant.Role)
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("transfer to a non-member grows the roster by one", func(t *testing.T) {
		before, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)

		require.NoError(t, env.membership.TransferOwnership(ctx, ws.ID, carol, alice))

		after, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, carol, after.OwnerID)
		require.Equal(t, before.MembersCount+1, after.MembersCount)
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("unknown new owner", func(t *testing.T) {
		require.ErrorIs(t, env.membership.TransferOwnership(ctx, ws.ID, "no-such-user", carol), ErrUserNotFound)
	})
}
