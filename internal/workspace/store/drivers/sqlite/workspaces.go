package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
)

type workspacesRepo struct {
	db dbtx
}

const workspaceColumns = `id, name, description, owner_id, status, members_count, max_members,
	settings, rules_content, rules_updated_by, archived_at, archive_expires_at, created_at, updated_at`

func scanWorkspace(row interface{ Scan(...any) error }) (domain.Workspace, error) {
	var (
		w                   domain.Workspace
		rulesUpdatedBy      sql.NullString
		archivedAt, expires sql.NullTime
	)
	err := row.Scan(
		&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.Status,
		&w.MembersCount, &w.MaxMembers, &w.Settings,
		&w.Rules.Content, &rulesUpdatedBy,
		&archivedAt, &expires, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return domain.Workspace{}, err
	}
	w.Rules.LastUpdatedBy = mapNullString(rulesUpdatedBy)
	w.ArchivedAt = mapNullTimePtr(archivedAt)
	w.ArchiveExpiresAt = mapNullTimePtr(expires)
	return w, nil
}

func (r *workspacesRepo) CreateWorkspace(ctx context.Context, w domain.Workspace) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, description, owner_id, status, members_count, max_members, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Description, w.OwnerID, string(w.Status),
		w.MembersCount, w.MaxMembers, w.Settings, w.CreatedAt, w.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *workspacesRepo) GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE id = ?`, id)
	w, err := scanWorkspace(row)
	if err != nil {
		return domain.Workspace{}, mapNotFound(err)
	}
	return w, nil
}

func (r *workspacesRepo) ArchiveWorkspace(ctx context.Context, id string, archivedAt, expiresAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces
		SET status = 'archived', archived_at = ?, archive_expires_at = ?, updated_at = ?
		WHERE id = ? AND status = 'active'`,
		archivedAt, expiresAt, archivedAt, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *workspacesRepo) RestoreWorkspace(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces
		SET status = 'active', archived_at = NULL, archive_expires_at = NULL, updated_at = ?
		WHERE id = ? AND status = 'archived'`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *workspacesRepo) DeleteWorkspace(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM workspaces WHERE id = ? AND status = 'archived'`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *workspacesRepo) ListReapable(ctx context.Context, now time.Time) ([]domain.Workspace, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+workspaceColumns+`
		FROM workspaces
		WHERE status = 'archived' AND archive_expires_at <= ?
		ORDER BY archive_expires_at`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// IncrementMembersCount binds the limit check and the increment into one
// conditional update so two concurrent joins cannot both squeeze past a
// nearly-full workspace.
func (r *workspacesRepo) IncrementMembersCount(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces
		SET members_count = members_count + 1, updated_at = ?
		WHERE id = ? AND members_count < max_members`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *workspacesRepo) DecrementMembersCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE workspaces
		SET members_count = members_count - 1, updated_at = ?
		WHERE id = ? AND members_count > 0`,
		time.Now().UTC(), id,
	)
	return err
}

func (r *workspacesRepo) SetOwner(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces SET owner_id = ?, updated_at = ? WHERE id = ?`,
		ownerID, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *workspacesRepo) UpdateRules(ctx context.Context, id, content, updatedBy string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces SET rules_content = ?, rules_updated_by = ?, updated_at = ? WHERE id = ?`,
		content, mapStringNull(updatedBy), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
