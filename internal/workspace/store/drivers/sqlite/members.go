package sqlite

import (
	"context"
	"database/sql"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
)

type membersRepo struct {
	db dbtx
}

func scanMember(row interface{ Scan(...any) error }) (domain.Member, error) {
	var (
		m           domain.Member
		permissions string
		invitedBy   sql.NullString
	)
	err := row.Scan(&m.WorkspaceID, &m.UserID, &m.Role, &permissions, &invitedBy, &m.JoinedAt)
	if err != nil {
		return domain.Member{}, err
	}
	m.Permissions = splitScopes(permissions)
	m.InvitedBy = mapNullString(invitedBy)
	return m, nil
}

func (r *membersRepo) AddMember(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role, permissions, invited_by, joined_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.WorkspaceID, m.UserID, m.Role, joinScopes(m.Permissions),
		mapStringNull(m.InvitedBy), m.JoinedAt,
	)
	return mapConstraint(err)
}

func (r *membersRepo) GetMember(ctx context.Context, workspaceID, userID string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT workspace_id, user_id, role, permissions, invited_by, joined_at
		FROM workspace_members
		WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID)
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT workspace_id, user_id, role, permissions, invited_by, joined_at
		FROM workspace_members
		WHERE workspace_id = ?
		ORDER BY joined_at, user_id`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membersRepo) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM workspace_members WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID)
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
