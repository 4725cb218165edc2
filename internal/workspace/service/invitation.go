package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/pkg/cryptox"
	"github.com/hivedesk/hivedesk/pkg/idx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
)

// InvitationService owns the invitation ledger. Invitations are tokenized
// offers: email invitations are addressed to one identity, link invitations
// may be redeemed by any authenticated holder of the token. Either way the
// token is single-use, and every transition out of pending is terminal.
type InvitationService struct {
	Store    store.Store
	Email    EmailSender
	Activity ActivityLog
	Notifier Notifier

	// DefaultTTL bounds new invitations when the caller does not pick an
	// expiry. Zero means 7 days.
	DefaultTTL time.Duration

	now func() time.Time
}

func (s *InvitationService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func (s *InvitationService) ttl() time.Duration {
	if s.DefaultTTL > 0 {
		return s.DefaultTTL
	}
	return 7 * 24 * time.Hour
}

// Create mints a new pending invitation and returns it together with the raw
// token, which is never persisted. Leave email empty for a link invitation.
// Email delivery is best-effort: the invitation exists and is redeemable even
// when the send fails.
func (s *InvitationService) Create(ctx context.Context, workspaceID, email, role, actorID string, expiresInDays int) (domain.Invitation, string, error) {
	log := slogx.FromContext(ctx)

	if !domain.InvitableRole(role) {
		return domain.Invitation{}, "", ErrInvalidRole
	}

	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, "", ErrWorkspaceNotFound
		}
		return domain.Invitation{}, "", err
	}
	if ws.Archived() {
		return domain.Invitation{}, "", ErrInvalidState
	}
	if !ownerOrScope(ctx, s.Store, ws, actorID, domain.ScopeMembersInvite) {
		return domain.Invitation{}, "", ErrForbidden
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := s.checkInvitable(ctx, ws, email); err != nil {
			return domain.Invitation{}, "", err
		}
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Invitation{}, "", err
	}

	ttl := s.ttl()
	if expiresInDays > 0 {
		ttl = time.Duration(expiresInDays) * 24 * time.Hour
	}

	now := s.clock()
	inv := domain.Invitation{
		ID:         idx.New().String(),
		TokenHash:  cryptox.FingerprintToken(token),
		TargetType: domain.TargetWorkspace,
		TargetID:   ws.ID,
		TargetName: ws.Name,
		Role:       role,
		InvitedBy:  actorID,
		Email:      email,
		Status:     domain.InvitationPending,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// The partial unique index caught a concurrent duplicate.
			return domain.Invitation{}, "", ErrDuplicatePendingInvitation
		}
		return domain.Invitation{}, "", err
	}

	log.Info("invitation created",
		"invitation_id", inv.ID,
		"workspace_id", ws.ID,
		"link", inv.IsLink(),
	)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "invitation.created",
		EntityType: "invitation",
		EntityID:   inv.ID,
		Metadata:   map[string]string{"workspace_id": ws.ID, "role": role},
	})
	if email != "" && s.Email != nil {
		if err := s.Email.SendInvitation(ctx, email, token, inv); err != nil {
			log.Warn("invitation email delivery failed", "invitation_id", inv.ID, "err", err)
		}
	}
	return inv, token, nil
}

// checkInvitable rejects invitations addressed to someone who already
// belongs to the workspace or already has a live invitation to it.
func (s *InvitationService) checkInvitable(ctx context.Context, ws domain.Workspace, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.ID == ws.OwnerID {
			return ErrAlreadyMember
		}
		if _, err := s.Store.Members().GetMember(ctx, ws.ID, user.ID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	_, err = s.Store.Invitations().FindPendingByEmailTarget(ctx, email, domain.TargetWorkspace, ws.ID)
	switch {
	case err == nil:
		return ErrDuplicatePendingInvitation
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Accept redeems a token for the authenticated actor. The status flip and
// the membership materialization happen in one transaction, so a failed
// materialization (limit reached, workspace deleted underneath) leaves the
// invitation pending and the token usable after the cause is fixed.
func (s *InvitationService) Accept(ctx context.Context, token, actorID string) (domain.Member, error) {
	log := slogx.FromContext(ctx)

	if token == "" || actorID == "" {
		return domain.Member{}, ErrInvalidRequest
	}

	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrInvitationNotFound
		}
		return domain.Member{}, err
	}
	if inv.Terminal() {
		return domain.Member{}, ErrInvalidState
	}

	now := s.clock()
	if inv.Expired(now) {
		return domain.Member{}, ErrInvitationExpired
	}
	if !inv.IsLink() {
		actor, err := s.Store.Users().GetUserByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Member{}, ErrUserNotFound
			}
			return domain.Member{}, err
		}
		if !strings.EqualFold(actor.Email, inv.Email) {
			return domain.Member{}, ErrIdentityMismatch
		}
	}

	var member domain.Member
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Re-validate the target inside the transaction: the workspace may
		// have been deleted or archived since the invitation was minted.
		ws, err := tx.Workspaces().GetWorkspaceByID(ctx, inv.TargetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrWorkspaceNotFound
			}
			return err
		}
		if ws.Archived() {
			return ErrInvalidState
		}

		ok, err := tx.Invitations().MarkAccepted(ctx, inv.ID, actorID, now)
		if err != nil {
			return err
		}
		if !ok {
			// Someone else redeemed or terminated it first.
			return ErrInvalidState
		}

		member, _, err = materializeMember(ctx, tx, ws, actorID, inv.Role, inv.InvitedBy, now)
		return err
	})
	if err != nil {
		return domain.Member{}, err
	}

	log.Info("invitation accepted", "invitation_id", inv.ID, "workspace_id", inv.TargetID, "user_id", actorID)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "invitation.accepted",
		EntityType: "invitation",
		EntityID:   inv.ID,
		Metadata:   map[string]string{"workspace_id": inv.TargetID},
	})
	notify(ctx, s.Notifier, log, inv.InvitedBy, Notification{
		Kind:        "invitation.accepted",
		WorkspaceID: inv.TargetID,
	})
	return member, nil
}

// Decline marks an invitation declined. Email invitations may only be
// declined by the invited identity. Declining an already-expired but still
// pending invitation is allowed; the outcome is terminal either way.
func (s *InvitationService) Decline(ctx context.Context, token, actorID string) error {
	log := slogx.FromContext(ctx)

	if token == "" {
		return ErrInvalidRequest
	}
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	if inv.Terminal() {
		return ErrInvalidState
	}
	if !inv.IsLink() {
		actor, err := s.Store.Users().GetUserByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !strings.EqualFold(actor.Email, inv.Email) {
			return ErrIdentityMismatch
		}
	}

	ok, err := s.Store.Invitations().MarkDeclined(ctx, inv.ID, s.clock())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}

	log.Info("invitation declined", "invitation_id", inv.ID)
	notify(ctx, s.Notifier, log, inv.InvitedBy, Notification{
		Kind:        "invitation.declined",
		WorkspaceID: inv.TargetID,
	})
	return nil
}

// Cancel revokes a pending invitation. Allowed for the inviter, the
// workspace owner, or anyone holding members:manage on the workspace.
func (s *InvitationService) Cancel(ctx context.Context, invitationID, actorID string) error {
	log := slogx.FromContext(ctx)

	inv, err := s.getPending(ctx, invitationID)
	if err != nil {
		return err
	}
	if err := s.authorizeManage(ctx, inv, actorID); err != nil {
		return err
	}

	ok, err := s.Store.Invitations().MarkCancelled(ctx, inv.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}

	log.Info("invitation cancelled", "invitation_id", inv.ID)
	recordActivity(ctx, s.Activity, log, ActivityEntry{
		ActorID:    actorID,
		Action:     "invitation.cancelled",
		EntityType: "invitation",
		EntityID:   inv.ID,
	})
	return nil
}

// SendReminder re-sends the invitation email and bumps the reminder counter.
// Only meaningful for email invitations that are still pending and unexpired.
func (s *InvitationService) SendReminder(ctx context.Context, invitationID, actorID string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.getPending(ctx, invitationID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if inv.IsLink() {
		return domain.Invitation{}, ErrInvalidRequest
	}
	if inv.Expired(s.clock()) {
		return domain.Invitation{}, ErrInvitationExpired
	}
	if err := s.authorizeManage(ctx, inv, actorID); err != nil {
		return domain.Invitation{}, err
	}

	if err := s.Store.Invitations().RecordReminder(ctx, inv.ID, s.clock()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvalidState
		}
		return domain.Invitation{}, err
	}
	// The raw token is gone; reminder emails carry the invitation reference
	// and the client-side accept link instead.
	if s.Email != nil {
		if err := s.Email.SendInvitation(ctx, inv.Email, "", inv); err != nil {
			log.Warn("reminder email delivery failed", "invitation_id", inv.ID, "err", err)
		}
	}
	return s.Store.Invitations().GetInvitationByID(ctx, inv.ID)
}

// ExtendExpiration pushes a pending invitation's deadline forward by the
// given number of days.
func (s *InvitationService) ExtendExpiration(ctx context.Context, invitationID, actorID string, extraDays int) (domain.Invitation, error) {
	if extraDays <= 0 {
		return domain.Invitation{}, ErrInvalidRequest
	}

	inv, err := s.getPending(ctx, invitationID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if inv.Expired(s.clock()) {
		return domain.Invitation{}, ErrInvitationExpired
	}
	if err := s.authorizeManage(ctx, inv, actorID); err != nil {
		return domain.Invitation{}, err
	}

	newExpiry := inv.ExpiresAt.Add(time.Duration(extraDays) * 24 * time.Hour)
	if err := s.Store.Invitations().ExtendExpiry(ctx, inv.ID, newExpiry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvalidState
		}
		return domain.Invitation{}, err
	}
	return s.Store.Invitations().GetInvitationByID(ctx, inv.ID)
}

// ListForWorkspace returns every invitation bound to a workspace, newest
// first. Requires invite rights on the workspace.
func (s *InvitationService) ListForWorkspace(ctx context.Context, workspaceID, actorID string) ([]domain.Invitation, error) {
	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	if !ownerOrScope(ctx, s.Store, ws, actorID, domain.ScopeMembersInvite) {
		return nil, ErrForbidden
	}
	return s.Store.Invitations().ListInvitationsForTarget(ctx, domain.TargetWorkspace, workspaceID)
}

func (s *InvitationService) getPending(ctx context.Context, invitationID string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		return domain.Invitation{}, err
	}
	if inv.Terminal() {
		return domain.Invitation{}, ErrInvalidState
	}
	return inv, nil
}

// authorizeManage allows the inviter themselves, and otherwise falls back to
// workspace-level authority over members.
func (s *InvitationService) authorizeManage(ctx context.Context, inv domain.Invitation, actorID string) error {
	if actorID == inv.InvitedBy {
		return nil
	}
	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, inv.TargetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		return err
	}
	if !ownerOrScope(ctx, s.Store, ws, actorID, domain.ScopeMembersManage) {
		return ErrForbidden
	}
	return nil
}
