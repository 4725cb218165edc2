package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/pkg/idx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
)

// WorkspaceService owns the workspace aggregate itself: creation, reads, and
// rules. Lifecycle transitions live on LifecycleService, membership on
// MembershipService.
type WorkspaceService struct {
	Store    store.Store
	Activity ActivityLog
	Notifier Notifier

	// DefaultMaxMembers seeds max_members on new workspaces. Zero means 50.
	DefaultMaxMembers int

	now func() time.Time
}

func (s *WorkspaceService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// MemberView is a member row joined against the user directory. Directory
// records can vanish independently of membership, so a view may be flagged
// rather than dropped.
type MemberView struct {
	domain.Member

	Email            string
	DisplayName      string
	DirectoryMissing bool
}

// Create provisions a new active workspace owned by ownerID. The owner gets
// a role cache entry but no member row; the member counter starts at one to
// account for them.
func (s *WorkspaceService) Create(ctx context.Context, name, description, ownerID string) (domain.Workspace, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Workspace{}, ErrInvalidRequest
	}
	if _, err := s.Store.Users().GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Workspace{}, ErrUserNotFound
		}
		return domain.Workspace{}, err
	}

	maxMembers := s.DefaultMaxMembers
	if maxMembers <= 0 {
		maxMembers = 50
	}

	now := s.clock()
	ws := domain.Workspace{
		ID:           idx.New().String(),
		Name:         name,
		Description:  description,
		OwnerID:      ownerID,
		Status:       domain.WorkspaceActive,
		MembersCount: 1,
		MaxMembers:   maxMembers,
		Settings:     "{}",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Workspaces().CreateWorkspace(ctx, ws); err != nil {
			return err
		}
		return tx.RoleCache().UpsertGrant(ctx, domain.RoleGrant{
			UserID:      ownerID,
			WorkspaceID: ws.ID,
			Role:        domain.RoleOwner,
			Permissions: domain.PermissionsForRole(domain.RoleOwner),
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return domain.Workspace{}, err
	}

	log.Info("workspace created", "workspace_id", ws.ID, "owner_id", ownerID)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    ownerID,
		Action:     "workspace.created",
		EntityType: "workspace",
		EntityID:   ws.ID,
	})
	return ws, nil
}

// Get returns a workspace by id.
func (s *WorkspaceService) Get(ctx context.Context, id string) (domain.Workspace, error) {
	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Workspace{}, ErrWorkspaceNotFound
	}
	return ws, err
}

// ListMembers returns the member roster joined with directory records,
// optionally filtered by role. The owner is not part of the roster; they are
// exposed on the workspace resource itself. Members whose directory record
// has vanished are included with DirectoryMissing set so callers can render
// a placeholder instead of silently shrinking the list.
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID, actorID, roleFilter string) ([]MemberView, error) {
	ws, err := s.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ownerOrScope(ctx, s.Store, ws, actorID, domain.ScopeWorkspaceRead) {
		return nil, ErrForbidden
	}

	members, err := s.Store.Members().ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		if roleFilter != "" && m.Role != roleFilter {
			continue
		}
		v := MemberView{Member: m}
		u, err := s.Store.Users().GetUserByID(ctx, m.UserID)
		switch {
		case err == nil:
			v.Email = u.Email
			v.DisplayName = u.DisplayName
		case errors.Is(err, store.ErrNotFound):
			v.DirectoryMissing = true
		default:
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// UpdateRules replaces the workspace rules text, recording who changed it.
func (s *WorkspaceService) UpdateRules(ctx context.Context, workspaceID, actorID, content string) (domain.Workspace, error) {
	log := slogx.FromContext(ctx)

	ws, err := s.Get(ctx, workspaceID)
	if err != nil {
		return domain.Workspace{}, err
	}
	if !ownerOrScope(ctx, s.Store, ws, actorID, domain.ScopeWorkspaceWrite) {
		return domain.Workspace{}, ErrForbidden
	}
	if ws.Archived() {
		return domain.Workspace{}, ErrInvalidState
	}

	if err := s.Store.Workspaces().UpdateRules(ctx, workspaceID, content, actorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Workspace{}, ErrWorkspaceNotFound
		}
		return domain.Workspace{}, err
	}

	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "workspace.rules_updated",
		EntityType: "workspace",
		EntityID:   workspaceID,
	})
	return s.Get(ctx, workspaceID)
}
