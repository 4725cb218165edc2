package service

import (
	"context"
	"testing"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/stretchr/testify/require"
)

func TestInvitationAcceptance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	alice := env.seedUser(t, "alice@example.com", "Alice")
	ws := env.createWorkspace(t, "Inviting", owner)

	inv, token, err := env.invitations.Create(ctx, ws.ID, "alice@example.com", domain.RoleMember, owner, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.InvitationPending, inv.Status)
	require.Equal(t, ws.Name, inv.TargetName)
	require.WithinDuration(t, env.clock.Now().Add(7*24*time.Hour), inv.ExpiresAt, time.Second)

	t.Run("accept materializes membership and terminates the invitation", func(t *testing.T) {
		m, err := env.invitations.Accept(ctx, token, alice)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, m.Role)
		require.Equal(t, owner, m.InvitedBy)

		got, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, got.Status)
		require.Equal(t, alice, got.UserID)
		require.NotNil(t, got.AcceptedAt)

		grant, err := env.store.RoleCache().GetGrant(ctx, alice, ws.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, grant.Role)
		env.requireCountInvariant(t, ws.ID)
	})

	t.Run("tokens are single-use", func(t *testing.T) {
		_, err := env.invitations.Accept(ctx, token, alice)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.invitations.Accept(ctx, "not-a-token", alice)
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})
}

func TestInvitationIdentityBinding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	env.seedUser(t, "alice@example.com", "Alice")
	mallory := env.seedUser(t, "mallory@example.com", "Mallory")
	ws := env.createWorkspace(t, "Bound", owner)

	inv, token, err := env.invitations.Create(ctx, ws.ID, "Alice@Example.com", domain.RoleMember, owner, 0)
	require.NoError(t, err)
	// Emails are normalized on the way in.
	require.Equal(t, "alice@example.com", inv.Email)

	t.Run("a different identity cannot redeem", func(t *testing.T) {
		_, err := env.invitations.Accept(ctx, token, mallory)
		require.ErrorIs(t, err, ErrIdentityMismatch)

		got, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, got.Status)
	})

	t.Run("a different identity cannot decline either", func(t *testing.T) {
		require.ErrorIs(t, env.invitations.Decline(ctx, token, mallory), ErrIdentityMismatch)
	})
}

func TestLinkInvitation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	stranger := env.seedUser(t, "stranger@example.com", "Stranger")
	ws := env.createWorkspace(t, "Open Door", owner)

	inv, token, err := env.invitations.Create(ctx, ws.ID, "", domain.RoleViewer, owner, 0)
	require.NoError(t, err)
	require.True(t, inv.IsLink())

	// Any authenticated holder of the token may redeem, once.
	m, err := env.invitations.Accept(ctx, token, stranger)
	require.NoError(t, err)
	require.Equal(t, domain.RoleViewer, m.Role)

	_, err = env.invitations.Accept(ctx, token, owner)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestInvitationExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	alice := env.seedUser(t, "alice@example.com", "Alice")
	ws := env.createWorkspace(t, "Slow", owner)

	inv, token, err := env.invitations.Create(ctx, ws.ID, "alice@example.com", domain.RoleMember, owner, 3)
	require.NoError(t, err)

	env.clock.Advance(4 * 24 * time.Hour)

	t.Run("expired tokens cannot be redeemed", func(t *testing.T) {
		_, err := env.invitations.Accept(ctx, token, alice)
		require.ErrorIs(t, err, ErrInvitationExpired)

		// Expiry is enforced at use; the row stays pending until housekeeping.
		got, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, got.Status)
	})

	t.Run("expired invitations cannot be reminded or extended", func(t *testing.T) {
		_, err := env.invitations.SendReminder(ctx, inv.ID, owner)
		require.ErrorIs(t, err, ErrInvitationExpired)
		_, err = env.invitations.ExtendExpiration(ctx, inv.ID, owner, 7)
		require.ErrorIs(t, err, ErrInvitationExpired)
	})

	t.Run("declining an expired but pending invitation still lands terminal", func(t *testing.T) {
		require.NoError(t, env.invitations.Decline(ctx, token, alice))
		got, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationDeclined, got.Status)
	})
}

func TestAcceptAtFullWorkspace(t *testing.T) {
	env := newTestEnv(t)
	env.workspaces.DefaultMaxMembers = 2
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	first := env.seedUser(t, "first@example.com", "First")
	late := env.seedUser(t, "late@example.com", "Late")
	ws := env.createWorkspace(t, "Packed", owner)

	inv, token, err := env.invitations.Create(ctx, ws.ID, "late@example.com", domain.RoleMember, owner, 0)
	require.NoError(t, err)

	// Fill the workspace after the invitation went out.
	_, err = env.membership.AddMember(ctx, ws.ID, first, domain.RoleMember, owner)
	require.NoError(t, err)

	_, err = env.invitations.Accept(ctx, token, late)
	require.ErrorIs(t, err, ErrMemberLimitExceeded)

	// The failed accept rolled back whole: invitation pending, token live.
	got, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, got.Status)
	env.requireCountInvariant(t, ws.ID)

	// Once capacity frees up the same token redeems cleanly.
	require.NoError(t, env.membership.RemoveMember(ctx, ws.ID, first, owner))
	_, err = env.invitations.Accept(ctx, token, late)
	require.NoError(t, err)
	env.requireCountInvariant(t, ws.ID)
}

func TestInvitationCreateGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	alice := env.seedUser(t, "alice@example.com", "Alice")
	viewer := env.seedUser(t, "viewer@example.com", "Viewer")
	ws := env.createWorkspace(t, "Guarded", owner)

	_, err := env.membership.AddMember(ctx, ws.ID, alice, domain.RoleMember, owner)
	require.NoError(t, err)
	_, err = env.membership.AddMember(ctx, ws.ID, viewer, domain.RoleViewer, owner)
	require.NoError(t, err)

	t.Run("cannot invite an existing member", func(t *testing.T) {
		_, _, err := env.invitations.Create(ctx, ws.ID, "alice@example.com", domain.RoleMember, owner, 0)
		require.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("cannot invite the owner", func(t *testing.T) {
		_, _, err := env.invitations.Create(ctx, ws.ID, "owner@example.com", domain.RoleMember, owner, 0)
		require.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("one pending invitation per email and target", func(t *testing.T) {
		first, _, err := env.invitations.Create(ctx, ws.ID, "new@example.com", domain.RoleMember, owner, 0)
		require.NoError(t, err)

		_, _, err = env.invitations.Create(ctx, ws.ID, "new@example.com", domain.RoleViewer, owner, 0)
		require.ErrorIs(t, err, ErrDuplicatePendingInvitation)

		// A terminal invitation frees the slot.
		require.NoError(t, env.invitations.Cancel(ctx, first.ID, owner))
		_, _, err = env.invitations.Create(ctx, ws.ID, "new@example.com", domain.RoleViewer, owner, 0)
		require.NoError(t, err)
	})

	t.Run("viewers lack invite rights", func(t *testing.T) {
		_, _, err := env.invitations.Create(ctx, ws.ID, "x@example.com", domain.RoleMember, viewer, 0)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner role cannot be granted by invitation", func(t *testing.T) {
		_, _, err := env.invitations.Create(ctx, ws.ID, "y@example.com", domain.RoleOwner, owner, 0)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("archived workspaces do not mint invitations", func(t *testing.T) {
		_, err := env.lifecycle.Archive(ctx, ws.ID, owner)
		require.NoError(t, err)
		_, _, err = env.invitations.Create(ctx, ws.ID, "z@example.com", domain.RoleMember, owner, 0)
		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestInvitationCancelAndManage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@example.com", "Owner")
	admin := env.seedUser(t, "admin@example.com", "Admin")
	viewer := env.seedUser(t, "viewer@example.com", "Viewer")
	ws := env.createWorkspace(t, "Managed", owner)

	_, err := env.membership.AddMember(ctx, ws.ID, admin, domain.RoleAdmin, owner)
	require.NoError(t, err)
	_, err = env.membership.AddMember(ctx, ws.ID, viewer, domain.RoleViewer, owner)
	require.NoError(t, err)

	inv, _, err := env.invitations.Create(ctx, ws.ID, "someone@example.com", domain.RoleMember, admin, 0)
	require.NoError(t, err)

	t.Run("viewers cannot cancel", func(t *testing.T) {
		require.ErrorIs(t, env.invitations.Cancel(ctx, inv.ID, viewer), ErrForbidden)
	})

	t.Run("reminders bump the counter", func(t *testing.T) {
		got, err := env.invitations.SendReminder(ctx, inv.ID, admin)
		require.NoError(t, err)
		require.Equal(t, 1, got.RemindersSent)
		require.NotNil(t, got.LastReminderAt)
	})

	t.Run("extension pushes the deadline", func(t *testing.T) {
		before, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)

		got, err := env.invitations.ExtendExpiration(ctx, inv.ID, owner, 7)
		require.NoError(t, err)
		require.WithinDuration(t, before.ExpiresAt.Add(7*24*time.Hour), got.ExpiresAt, time.Second)
	})

	t.Run("the workspace owner may cancel another's invitation", func(t *testing.T) {
		require.NoError(t, env.invitations.Cancel(ctx, inv.ID, owner))

		got, err := env.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationCancelled, got.Status)
	})

	t.Run("terminal invitations reject further management", func(t *testing.T) {
		require.ErrorIs(t, env.invitations.Cancel(ctx, inv.ID, owner), ErrInvalidState)
		_, err := env.invitations.SendReminder(ctx, inv.ID, owner)
		require.ErrorIs(t, err, ErrInvalidState)
		_, err = env.invitations.ExtendExpiration(ctx, inv.ID, owner, 3)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("reminders are meaningless for link invitations", func(t *testing.T) {
		link, _, err := env.invitations.Create(ctx, ws.ID, "", domain.RoleViewer, owner, 0)
		require.NoError(t, err)
		_, err = env.invitations.SendReminder(ctx, link.ID, owner)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}
