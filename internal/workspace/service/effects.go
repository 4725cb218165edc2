package service

import (
	"context"
	"log/slog"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
)

// External collaborators. All of these are best-effort: a failure is logged
// and swallowed, never surfaced as a failure of the primary mutation.

// ActivityEntry is one audit record handed to the activity log sink.
type ActivityEntry struct {
	ActorID     string
	Action      string
	Description string
	EntityType  string
	EntityID    string
	Metadata    map[string]string
}

// ActivityLog is the fire-and-forget audit sink.
type ActivityLog interface {
	Record(ctx context.Context, e ActivityEntry) error
}

// Notification is a payload delivered to a single recipient.
type Notification struct {
	Kind        string
	WorkspaceID string
	Message     string
}

// Notifier dispatches in-app/push notifications.
type Notifier interface {
	Notify(ctx context.Context, recipientID string, n Notification) error
}

// EmailSender delivers invitation emails. The invitation persists and stays
// redeemable through its token even when delivery fails.
type EmailSender interface {
	SendInvitation(ctx context.Context, email, token string, inv domain.Invitation) error
}

// slog-backed defaults used until real integrations are wired in. They make
// every side effect observable without any external dependency.

type LogActivityLog struct{ Logger *slog.Logger }

func (l *LogActivityLog) Record(ctx context.Context, e ActivityEntry) error {
	l.Logger.Info("activity",
		"actor_id", e.ActorID,
		"action", e.Action,
		"entity_type", e.EntityType,
		"entity_id", e.EntityID,
		"description", e.Description,
	)
	return nil
}

type LogNotifier struct{ Logger *slog.Logger }

func (l *LogNotifier) Notify(ctx context.Context, recipientID string, n Notification) error {
	l.Logger.Info("notification",
		"recipient_id", recipientID,
		"kind", n.Kind,
		"workspace_id", n.WorkspaceID,
	)
	return nil
}

type LogEmailSender struct{ Logger *slog.Logger }

func (l *LogEmailSender) SendInvitation(ctx context.Context, email, token string, inv domain.Invitation) error {
	// Never log the raw token.
	l.Logger.Info("invitation email",
		"email", email,
		"invitation_id", inv.ID,
		"target_id", inv.TargetID,
	)
	return nil
}

// recordActivity and notify wrap the best-effort contract in one place.

func recordActivity(ctx context.Context, sink ActivityLog, log *slog.Logger, e ActivityEntry) {
	if sink == nil {
		return
	}
	if err := sink.Record(ctx, e); err != nil {
		log.Warn("activity log record failed", "action", e.Action, "err", err)
	}
}

func notify(ctx context.Context, n Notifier, log *slog.Logger, recipientID string, payload Notification) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, recipientID, payload); err != nil {
		log.Warn("notification dispatch failed", "recipient_id", recipientID, "kind", payload.Kind, "err", err)
	}
}
