package domain

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationCancelled InvitationStatus = "cancelled"
	InvitationExpired   InvitationStatus = "expired"
)

// Target types an invitation can be bound to. Only workspaces are
// materialized today; spaces and boards reserve their identifiers.
const (
	TargetWorkspace = "workspace"
	TargetSpace     = "space"
	TargetBoard     = "board"
)

// Invitation is a tokenized, time-bounded membership offer. Only the token
// fingerprint is stored; the raw token goes out in the invitation email or
// share link. Status transitions are forward-only and terminal once the
// invitation leaves pending.
type Invitation struct {
	ID        string
	TokenHash string

	TargetType string
	TargetID   string
	TargetName string

	Role      string
	InvitedBy string

	Email  string // empty for link invitations: any token holder may redeem
	UserID string // stamped when the invitation is accepted

	Status    InvitationStatus
	ExpiresAt time.Time

	AcceptedAt     *time.Time
	DeclinedAt     *time.Time
	RemindersSent  int
	LastReminderAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLink reports whether this is an open link invitation rather than one
// addressed to a specific email.
func (i Invitation) IsLink() bool { return i.Email == "" }

// Expired reports whether the invitation's deadline has passed. An expired
// invitation may still carry pending status until housekeeping flips it.
func (i Invitation) Expired(now time.Time) bool { return now.After(i.ExpiresAt) }

// Terminal reports whether the invitation has left the pending state.
func (i Invitation) Terminal() bool { return i.Status != InvitationPending }
