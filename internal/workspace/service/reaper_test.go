package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/stretchr/testify/require"
)

func TestReaperSweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")

	doomed := env.createWorkspace(t, "Doomed", owner)
	recent := env.createWorkspace(t, "Recently Archived", owner)
	alive := env.createWorkspace(t, "Alive", owner)

	member := env.seedUser(t, "member@example.com", "Member")
	_, err := env.membership.AddMember(ctx, doomed.ID, member, domain.RoleMember, owner)
	require.NoError(t, err)

	_, _, err = env.invitations.Create(ctx, alive.ID, "slow@example.com", domain.RoleMember, owner, 1)
	require.NoError(t, err)

	_, err = env.lifecycle.Archive(ctx, doomed.ID, owner)
	require.NoError(t, err)

	// Archive the second workspace halfway through so only the first is past
	// its deadline when the sweep runs.
	env.clock.Advance(20 * 24 * time.Hour)
	_, err = env.lifecycle.Archive(ctx, recent.ID, owner)
	require.NoError(t, err)

	env.clock.Advance(11 * 24 * time.Hour)

	reaper := NewReaperService(env.store, env.lifecycle, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	reaper.now = env.clock.Now
	reaper.sweep(ctx)

	_, err = env.workspaces.Get(ctx, doomed.ID)
	require.ErrorIs(t, err, ErrWorkspaceNotFound)

	// The cascade cleared the member rows and both cached grants.
	members, err := env.store.Members().ListMembers(ctx, doomed.ID)
	require.NoError(t, err)
	require.Empty(t, members)
	_, err = env.store.RoleCache().GetGrant(ctx, owner, doomed.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = env.store.RoleCache().GetGrant(ctx, member, doomed.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := env.workspaces.Get(ctx, recent.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WorkspaceArchived, got.Status)

	got, err = env.workspaces.Get(ctx, alive.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WorkspaceActive, got.Status)

	// The overdue invitation was flipped to expired by the same sweep.
	invs, err := env.store.Invitations().ListInvitationsForTarget(ctx, domain.TargetWorkspace, alive.ID)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	require.Equal(t, domain.InvitationExpired, invs[0].Status)
}

func TestReaperSkipsRestoredWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	ws := env.createWorkspace(t, "Saved", owner)

	_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
	require.NoError(t, err)
	env.clock.Advance(10 * 24 * time.Hour)
	require.NoError(t, env.lifecycle.Restore(ctx, ws.ID, owner))

	env.clock.Advance(25 * 24 * time.Hour)

	reaper := NewReaperService(env.store, env.lifecycle, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	reaper.now = env.clock.Now
	reaper.sweep(ctx)

	got, err := env.workspaces.Get(ctx, ws.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WorkspaceActive, got.Status)
}

func TestReaperStartStop(t *testing.T) {
	env := newTestEnv(t)

	reaper := NewReaperService(env.store, env.lifecycle, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	reaper.Start()
	reaper.Stop()
}
