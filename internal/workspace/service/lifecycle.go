package service

import (
	"context"
	"errors"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/pkg/slogx"
)

// LifecycleService drives the workspace state machine: active → archived →
// (restored | permanently deleted). Permanent deletion happens either on an
// explicit owner request or when the reaper finds an archived workspace past
// its grace deadline.
type LifecycleService struct {
	Store    store.Store
	Activity ActivityLog
	Notifier Notifier

	// GraceWindow is how long an archived workspace survives before the
	// reaper may delete it. Zero means 30 days.
	GraceWindow time.Duration

	now func() time.Time
}

func (s *LifecycleService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func (s *LifecycleService) grace() time.Duration {
	if s.GraceWindow > 0 {
		return s.GraceWindow
	}
	return 30 * 24 * time.Hour
}

// Archive moves an active workspace into the archived state and starts the
// deletion grace countdown. It returns the number of seconds remaining until
// the workspace becomes eligible for permanent deletion.
func (s *LifecycleService) Archive(ctx context.Context, workspaceID, actorID string) (int64, error) {
	log := slogx.FromContext(ctx)

	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrWorkspaceNotFound
		}
		return 0, err
	}
	if !ownerOrScope(ctx, s.Store, ws, actorID, domain.ScopeWorkspaceDelete) {
		return 0, ErrForbidden
	}
	if ws.Archived() {
		return 0, ErrInvalidState
	}

	now := s.clock()
	expiresAt := now.Add(s.grace())
	ok, err := s.Store.Workspaces().ArchiveWorkspace(ctx, workspaceID, now, expiresAt)
	if err != nil {
		return 0, err
	}
	if !ok {
		// Lost a race: someone archived or deleted it between the read and
		// the conditional update.
		return 0, ErrInvalidState
	}

	log.Info("workspace archived", "workspace_id", workspaceID, "expires_at", expiresAt)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "workspace.archived",
		EntityType: "workspace",
		EntityID:   workspaceID,
	})
	notify(ctx, s.Notifier, log, ws.OwnerID, Notification{
		Kind:        "workspace.archived",
		WorkspaceID: workspaceID,
	})
	return int64(expiresAt.Sub(now) / time.Second), nil
}

// Restore brings an archived workspace back to active, provided the grace
// deadline has not passed. Only the owner may restore.
func (s *LifecycleService) Restore(ctx context.Context, workspaceID, actorID string) error {
	log := slogx.FromContext(ctx)

	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		return err
	}
	if actorID != ws.OwnerID {
		return ErrForbidden
	}
	if !ws.Archived() || ws.ReapEligible(s.clock()) {
		return ErrInvalidState
	}

	ok, err := s.Store.Workspaces().RestoreWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}

	log.Info("workspace restored", "workspace_id", workspaceID)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "workspace.restored",
		EntityType: "workspace",
		EntityID:   workspaceID,
	})
	return nil
}

// PermanentDelete removes an archived workspace immediately, without waiting
// out the grace period. Only the owner may do this, and only from the
// archived state.
func (s *LifecycleService) PermanentDelete(ctx context.Context, workspaceID, actorID string) error {
	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		return err
	}
	if actorID != ws.OwnerID {
		return ErrForbidden
	}
	if !ws.Archived() {
		return ErrInvalidState
	}
	return s.deleteCascade(ctx, ws, actorID, time.Time{})
}

// Reap permanently deletes a workspace whose archive grace period has
// elapsed. Called by the reaper sweep; it re-reads state so a restore that
// slipped in since the candidate list was built wins.
func (s *LifecycleService) Reap(ctx context.Context, workspaceID string) error {
	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Already gone, nothing to do.
			return nil
		}
		return err
	}
	now := s.clock()
	if !ws.ReapEligible(now) {
		return ErrInvalidState
	}
	return s.deleteCascade(ctx, ws, ws.OwnerID, now)
}

// deleteCascade removes the workspace and everything hanging off it in one
// transaction: member rows (via schema cascade), role cache entries, and any
// still-pending invitations bound to it. The caller's snapshot may be stale,
// so archived status is re-checked inside the transaction; a non-zero
// reapDeadline additionally requires the grace deadline to have passed, so a
// restore (or re-archive) that commits after the caller's read wins.
func (s *LifecycleService) deleteCascade(ctx context.Context, ws domain.Workspace, actorID string, reapDeadline time.Time) error {
	log := slogx.FromContext(ctx)

	var memberIDs []string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Workspaces().GetWorkspaceByID(ctx, ws.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrWorkspaceNotFound
			}
			return err
		}
		if !cur.Archived() {
			return ErrInvalidState
		}
		if !reapDeadline.IsZero() && !cur.ReapEligible(reapDeadline) {
			return ErrInvalidState
		}

		members, err := tx.Members().ListMembers(ctx, ws.ID)
		if err != nil {
			return err
		}
		for _, m := range members {
			memberIDs = append(memberIDs, m.UserID)
		}
		ok, err := tx.Workspaces().DeleteWorkspace(ctx, ws.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidState
		}
		if err := tx.RoleCache().RemoveGrantsForWorkspace(ctx, ws.ID); err != nil {
			return err
		}
		return tx.Invitations().CancelPendingForTarget(ctx, domain.TargetWorkspace, ws.ID)
	})
	if err != nil {
		return err
	}

	log.Info("workspace deleted", "workspace_id", ws.ID, "members", len(memberIDs))
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "workspace.deleted",
		EntityType: "workspace",
		EntityID:   ws.ID,
	})
	for _, uid := range memberIDs {
		notify(ctx, s.Notifier, log, uid, Notification{
			Kind:        "workspace.deleted",
			WorkspaceID: ws.ID,
		})
	}
	return nil
}
