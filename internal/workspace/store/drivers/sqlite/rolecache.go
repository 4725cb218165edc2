package sqlite

import (
	"context"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
)

type roleCacheRepo struct {
	db dbtx
}

func (r *roleCacheRepo) UpsertGrant(ctx context.Context, g domain.RoleGrant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, workspace_id, role, permissions, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, workspace_id)
		DO UPDATE SET role = excluded.role, permissions = excluded.permissions, updated_at = excluded.updated_at`,
		g.UserID, g.WorkspaceID, g.Role, joinScopes(g.Permissions), time.Now().UTC(),
	)
	return err
}

func (r *roleCacheRepo) GetGrant(ctx context.Context, userID, workspaceID string) (domain.RoleGrant, error) {
	var (
		g           domain.RoleGrant
		permissions string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, workspace_id, role, permissions, updated_at
		FROM user_roles
		WHERE user_id = ? AND workspace_id = ?`,
		userID, workspaceID,
	).Scan(&g.UserID, &g.WorkspaceID, &g.Role, &permissions, &g.UpdatedAt)
	if err != nil {
		return domain.RoleGrant{}, mapNotFound(err)
	}
	g.Permissions = splitScopes(permissions)
	return g, nil
}

func (r *roleCacheRepo) ListGrantsForUser(ctx context.Context, userID string) ([]domain.RoleGrant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, workspace_id, role, permissions, updated_at
		FROM user_roles
		WHERE user_id = ?
		ORDER BY workspace_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoleGrant
	for rows.Next() {
		var (
			g           domain.RoleGrant
			permissions string
		)
		if err := rows.Scan(&g.UserID, &g.WorkspaceID, &g.Role, &permissions, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Permissions = splitScopes(permissions)
		out = append(out, g)
	}
	return out, rows.Err()
}

// RemoveGrant deletes the cached entry. Zero rows affected is not an error:
// the cache side must never block a membership removal.
func (r *roleCacheRepo) RemoveGrant(ctx context.Context, userID, workspaceID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM user_roles WHERE user_id = ? AND workspace_id = ?`,
		userID, workspaceID)
	return err
}

func (r *roleCacheRepo) RemoveGrantsForWorkspace(ctx context.Context, workspaceID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM user_roles WHERE workspace_id = ?`, workspaceID)
	return err
}
