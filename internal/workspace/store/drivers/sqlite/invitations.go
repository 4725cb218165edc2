package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, token_hash, target_type, target_id, target_name, role, invited_by,
	email, user_id, status, expires_at, accepted_at, declined_at, reminders_sent, last_reminder_at,
	created_at, updated_at`

func scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var (
		inv                    domain.Invitation
		email, userID          sql.NullString
		acceptedAt, declinedAt sql.NullTime
		lastReminderAt         sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.TokenHash, &inv.TargetType, &inv.TargetID, &inv.TargetName,
		&inv.Role, &inv.InvitedBy, &email, &userID, &inv.Status, &inv.ExpiresAt,
		&acceptedAt, &declinedAt, &inv.RemindersSent, &lastReminderAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Email = mapNullString(email)
	inv.UserID = mapNullString(userID)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.DeclinedAt = mapNullTimePtr(declinedAt)
	inv.LastReminderAt = mapNullTimePtr(lastReminderAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (id, token_hash, target_type, target_id, target_name, role, invited_by,
			email, status, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.TargetType, inv.TargetID, inv.TargetName,
		inv.Role, inv.InvitedBy, mapStringNull(inv.Email), string(inv.Status),
		inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) FindPendingByEmailTarget(ctx context.Context, email, targetType, targetID string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE email = ? AND target_type = ? AND target_id = ? AND status = 'pending'`,
		email, targetType, targetID)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListInvitationsForTarget(ctx context.Context, targetType, targetID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE target_type = ? AND target_id = ?
		ORDER BY created_at DESC`,
		targetType, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// MarkAccepted is the compare-and-swap that makes acceptance single-use:
// the update only applies while status is still pending, so exactly one of
// any number of concurrent redeemers observes true.
func (r *invitationsRepo) MarkAccepted(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'accepted', user_id = ?, accepted_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		userID, at, at, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *invitationsRepo) MarkDeclined(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'declined', declined_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		at, at, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *invitationsRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'cancelled', updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *invitationsRepo) MarkExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'expired', updated_at = ?
		WHERE status = 'pending' AND expires_at < ?`,
		time.Now().UTC(), cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invitationsRepo) CancelPendingForTarget(ctx context.Context, targetType, targetID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'cancelled', updated_at = ?
		WHERE target_type = ? AND target_id = ? AND status = 'pending'`,
		time.Now().UTC(), targetType, targetID,
	)
	return err
}

func (r *invitationsRepo) RecordReminder(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET reminders_sent = reminders_sent + 1, last_reminder_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		at, at, id,
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

func (r *invitationsRepo) ExtendExpiry(ctx context.Context, id string, newExpiry time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET expires_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		newExpiry, time.Now().UTC(), id,
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
