package service

import (
	"context"
	"testing"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/stretchr/testify/require"
)

func TestArchiveStartsCountdown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	member := env.seedUser(t, "member@example.com", "Member")
	ws := env.createWorkspace(t, "Archive Me", owner)

	_, err := env.membership.AddMember(ctx, ws.ID, member, domain.RoleMember, owner)
	require.NoError(t, err)

	t.Run("plain members cannot archive", func(t *testing.T) {
		_, err := env.lifecycle.Archive(ctx, ws.ID, member)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner archive returns remaining seconds", func(t *testing.T) {
		seconds, err := env.lifecycle.Archive(ctx, ws.ID, owner)
		require.NoError(t, err)
		require.Equal(t, int64(30*24*3600), seconds)

		got, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.WorkspaceArchived, got.Status)
		require.NotNil(t, got.ArchivedAt)
		require.NotNil(t, got.ArchiveExpiresAt)
		require.WithinDuration(t, env.clock.Now().Add(30*24*time.Hour), *got.ArchiveExpiresAt, time.Second)
	})

	t.Run("archiving twice is invalid", func(t *testing.T) {
		_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unknown workspace", func(t *testing.T) {
		_, err := env.lifecycle.Archive(ctx, "missing", owner)
		require.ErrorIs(t, err, ErrWorkspaceNotFound)
	})
}

func TestRestore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	other := env.seedUser(t, "other@example.com", "Other")
	ws := env.createWorkspace(t, "Bounce Back", owner)

	t.Run("restoring an active workspace is invalid", func(t *testing.T) {
		require.ErrorIs(t, env.lifecycle.Restore(ctx, ws.ID, owner), ErrInvalidState)
	})

	_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
	require.NoError(t, err)

	t.Run("only the owner may restore", func(t *testing.T) {
		require.ErrorIs(t, env.lifecycle.Restore(ctx, ws.ID, other), ErrForbidden)
	})

	t.Run("restore within grace clears archive state", func(t *testing.T) {
		env.clock.Advance(15 * 24 * time.Hour)
		require.NoError(t, env.lifecycle.Restore(ctx, ws.ID, owner))

		got, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.WorkspaceActive, got.Status)
		require.Nil(t, got.ArchivedAt)
		require.Nil(t, got.ArchiveExpiresAt)
	})

	t.Run("restore after the deadline is invalid", func(t *testing.T) {
		_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
		require.NoError(t, err)
		env.clock.Advance(31 * 24 * time.Hour)
		require.ErrorIs(t, env.lifecycle.Restore(ctx, ws.ID, owner), ErrInvalidState)
	})
}

func TestPermanentDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	member := env.seedUser(t, "member@example.com", "Member")
	ws := env.createWorkspace(t, "Doomed", owner)

	_, err := env.membership.AddMember(ctx, ws.ID, member, domain.RoleMember, owner)
	require.NoError(t, err)
	_, _, err = env.invitations.Create(ctx, ws.ID, "pending@example.com", domain.RoleMember, owner, 0)
	require.NoError(t, err)

	t.Run("active workspaces cannot be deleted directly", func(t *testing.T) {
		require.ErrorIs(t, env.lifecycle.PermanentDelete(ctx, ws.ID, owner), ErrInvalidState)
	})

	_, err = env.lifecycle.Archive(ctx, ws.ID, owner)
	require.NoError(t, err)

	t.Run("only the owner may delete", func(t *testing.T) {
		require.ErrorIs(t, env.lifecycle.PermanentDelete(ctx, ws.ID, member), ErrForbidden)
	})

	t.Run("delete cascades to members, grants, and pending invitations", func(t *testing.T) {
		require.NoError(t, env.lifecycle.PermanentDelete(ctx, ws.ID, owner))

		_, err := env.workspaces.Get(ctx, ws.ID)
		require.ErrorIs(t, err, ErrWorkspaceNotFound)

		members, err := env.store.Members().ListMembers(ctx, ws.ID)
		require.NoError(t, err)
		require.Empty(t, members)

		_, err = env.store.RoleCache().GetGrant(ctx, member, ws.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = env.store.RoleCache().GetGrant(ctx, owner, ws.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		invs, err := env.store.Invitations().ListInvitationsForTarget(ctx, domain.TargetWorkspace, ws.ID)
		require.NoError(t, err)
		require.Len(t, invs, 1)
		require.Equal(t, domain.InvitationCancelled, invs[0].Status)
	})
}

// A restore that commits between a reaper's candidate read and the delete
// transaction must win: the cascade re-checks archived status and, on the
// reap path, the grace deadline inside the transaction.
func TestDeleteCascadeRevalidatesState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	ws := env.createWorkspace(t, "Contested", owner)

	t.Run("delete statement refuses active workspaces", func(t *testing.T) {
		ok, err := env.store.Workspaces().DeleteWorkspace(ctx, ws.ID)
		require.NoError(t, err)
		require.False(t, ok)

		got, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.WorkspaceActive, got.Status)
	})

	_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
	require.NoError(t, err)
	env.clock.Advance(31 * 24 * time.Hour)

	// Snapshot taken while the workspace is past its deadline, as a sweep
	// would see it.
	snapshot, err := env.store.Workspaces().GetWorkspaceByID(ctx, ws.ID)
	require.NoError(t, err)
	require.True(t, snapshot.ReapEligible(env.clock.Now()))

	t.Run("restore landing after the snapshot wins", func(t *testing.T) {
		ok, err := env.store.Workspaces().RestoreWorkspace(ctx, ws.ID)
		require.NoError(t, err)
		require.True(t, ok)

		err = env.lifecycle.deleteCascade(ctx, snapshot, owner, env.clock.Now())
		require.ErrorIs(t, err, ErrInvalidState)

		got, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.WorkspaceActive, got.Status)
	})

	t.Run("re-archive starts a fresh grace period", func(t *testing.T) {
		_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
		require.NoError(t, err)

		err = env.lifecycle.deleteCascade(ctx, snapshot, owner, env.clock.Now())
		require.ErrorIs(t, err, ErrInvalidState)

		got, err := env.workspaces.Get(ctx, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.WorkspaceArchived, got.Status)
	})
}
