package service

import (
	"context"
	"errors"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/pkg/slogx"
)

// MembershipService keeps the two membership bookkeeping sides consistent:
// the member rows embedded under a workspace and the per-user role cache.
// Every mutation touches both inside one transaction.
type MembershipService struct {
	Store    store.Store
	Activity ActivityLog
	Notifier Notifier

	now func() time.Time
}

func (s *MembershipService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// materializeMember adds a member row plus its role cache entry inside the
// caller's transaction. Adding the workspace owner or an existing member is
// a no-op that reports created=false; the member counter only moves when a
// row is actually inserted, and only through the conditional increment that
// enforces max_members.
func materializeMember(ctx context.Context, tx store.Tx, ws domain.Workspace, userID, role, invitedBy string, at time.Time) (domain.Member, bool, error) {
	if userID == ws.OwnerID {
		return domain.Member{
			WorkspaceID: ws.ID,
			UserID:      userID,
			Role:        domain.RoleOwner,
			Permissions: domain.PermissionsForRole(domain.RoleOwner),
		}, false, nil
	}

	existing, err := tx.Members().GetMember(ctx, ws.ID, userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Member{}, false, err
	}

	ok, err := tx.Workspaces().IncrementMembersCount(ctx, ws.ID)
	if err != nil {
		return domain.Member{}, false, err
	}
	if !ok {
		return domain.Member{}, false, ErrMemberLimitExceeded
	}

	m := domain.Member{
		WorkspaceID: ws.ID,
		UserID:      userID,
		Role:        role,
		Permissions: domain.PermissionsForRole(role),
		InvitedBy:   invitedBy,
		JoinedAt:    at,
	}
	if err := tx.Members().AddMember(ctx, m); err != nil {
		return domain.Member{}, false, err
	}
	if err := tx.RoleCache().UpsertGrant(ctx, domain.RoleGrant{
		UserID:      userID,
		WorkspaceID: ws.ID,
		Role:        role,
		Permissions: m.Permissions,
		UpdatedAt:   at,
	}); err != nil {
		return domain.Member{}, false, err
	}
	return m, true, nil
}

// AddMember grants userID membership directly. Adding someone who is already
// a member returns their existing row unchanged.
func (s *MembershipService) AddMember(ctx context.Context, workspaceID, userID, role, actorID string) (domain.Member, error) {
	log := slogx.FromContext(ctx)

	if !domain.InvitableRole(role) {
		return domain.Member{}, ErrInvalidRole
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrUserNotFound
		}
		return domain.Member{}, err
	}

	var (
		member  domain.Member
		created bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ws, err := tx.Workspaces().GetWorkspaceByID(ctx, workspaceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrWorkspaceNotFound
			}
			return err
		}
		if ws.Archived() {
			return ErrInvalidState
		}
		if !ownerOrScope(ctx, tx, ws, actorID, domain.ScopeMembersManage) {
			return ErrForbidden
		}
		if userID == ws.OwnerID {
			return ErrAlreadyMember
		}
		member, created, err = materializeMember(ctx, tx, ws, userID, role, actorID, s.clock())
		return err
	})
	if err != nil {
		return domain.Member{}, err
	}

	if created {
		log.Info("member added", "workspace_id", workspaceID, "user_id", userID, "role", role)
		recordActivity(ctx, s.Activity, log, ActivityEntry{
			ActorID:    actorID,
			Action:     "member.added",
			EntityType: "workspace",
			EntityID:   workspaceID,
			Metadata:   map[string]string{"user_id": userID, "role": role},
		})
		notify(ctx, s.Notifier, log, userID, Notification{
			Kind:        "member.added",
			WorkspaceID: workspaceID,
		})
	}
	return member, nil
}

// RemoveMember takes userID out of the workspace: member row, counter, and
// role cache entry together. The owner cannot be removed; ownership moves
// only via TransferOwnership. A member may remove themselves; otherwise the
// actor needs the members:manage scope. The user's directory record is never
// consulted, so removal still works after the account itself is gone.
func (s *MembershipService) RemoveMember(ctx context.Context, workspaceID, userID, actorID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ws, err := tx.Workspaces().GetWorkspaceByID(ctx, workspaceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrWorkspaceNotFound
			}
			return err
		}
		if userID == ws.OwnerID {
			return ErrOwnerRemoval
		}
		if actorID != userID && !ownerOrScope(ctx, tx, ws, actorID, domain.ScopeMembersManage) {
			return ErrForbidden
		}
		if err := tx.Members().RemoveMember(ctx, workspaceID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Workspaces().DecrementMembersCount(ctx, workspaceID); err != nil {
			return err
		}
		return tx.RoleCache().RemoveGrant(ctx, userID, workspaceID)
	})
	if err != nil {
		return err
	}

	log.Info("member removed", "workspace_id", workspaceID, "user_id", userID)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "member.removed",
		EntityType: "workspace",
		EntityID:   workspaceID,
		Metadata:   map[string]string{"user_id": userID},
	})
	notify(ctx, s.Notifier, log, userID, Notification{
		Kind:        "member.removed",
		WorkspaceID: workspaceID,
	})
	return nil
}

// TransferOwnership hands the workspace to newOwnerID. The new owner leaves
// the member roster (ownership is implicit) and the former owner joins it as
// an admin, so the member counter is unchanged when the new owner was
// already a member and grows by one otherwise, subject to the usual limit.
func (s *MembershipService) TransferOwnership(ctx context.Context, workspaceID, newOwnerID, actorID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Users().GetUserByID(ctx, newOwnerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ws, err := tx.Workspaces().GetWorkspaceByID(ctx, workspaceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrWorkspaceNotFound
			}
			return err
		}
		if actorID != ws.OwnerID {
			return ErrForbidden
		}
		if ws.Archived() {
			return ErrInvalidState
		}
		if newOwnerID == ws.OwnerID {
			return ErrAlreadyMember
		}

		now := s.clock()
		formerOwner := ws.OwnerID

		wasMember := true
		if _, err := tx.Members().GetMember(ctx, workspaceID, newOwnerID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			wasMember = false
		}

		if wasMember {
			// New owner's row disappears, former owner's appears: net zero,
			// the counter stays put.
			if err := tx.Members().RemoveMember(ctx, workspaceID, newOwnerID); err != nil {
				return err
			}
		} else {
			ok, err := tx.Workspaces().IncrementMembersCount(ctx, workspaceID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrMemberLimitExceeded
			}
		}

		if err := tx.Members().AddMember(ctx, domain.Member{
			WorkspaceID: workspaceID,
			UserID:      formerOwner,
			Role:        domain.RoleAdmin,
			Permissions: domain.PermissionsForRole(domain.RoleAdmin),
			InvitedBy:   newOwnerID,
			JoinedAt:    now,
		}); err != nil {
			return err
		}
		if err := tx.Workspaces().SetOwner(ctx, workspaceID, newOwnerID); err != nil {
			return err
		}

		if err := tx.RoleCache().UpsertGrant(ctx, domain.RoleGrant{
			UserID:      newOwnerID,
			WorkspaceID: workspaceID,
			Role:        domain.RoleOwner,
			Permissions: domain.PermissionsForRole(domain.RoleOwner),
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		return tx.RoleCache().UpsertGrant(ctx, domain.RoleGrant{
			UserID:      formerOwner,
			WorkspaceID: workspaceID,
			Role:        domain.RoleAdmin,
			Permissions: domain.PermissionsForRole(domain.RoleAdmin),
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return err
	}

	log.Info("ownership transferred", "workspace_id", workspaceID, "new_owner_id", newOwnerID)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "workspace.ownership_transferred",
		EntityType: "workspace",
		EntityID:   workspaceID,
		Metadata:   map[string]string{"new_owner_id": newOwnerID},
	})
	notify(ctx, s.Notifier, log, newOwnerID, Notification{
		Kind:        "workspace.ownership_transferred",
		WorkspaceID: workspaceID,
	})
	return nil
}
