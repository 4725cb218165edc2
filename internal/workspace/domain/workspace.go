package domain

import "time"

type WorkspaceStatus string

const (
	WorkspaceActive   WorkspaceStatus = "active"
	WorkspaceArchived WorkspaceStatus = "archived"
)

// Workspace is the tenant aggregate. The owner is implicit: they are never a
// row in the member list, and MembersCount always equals the number of member
// rows plus one for the owner.
type Workspace struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	Status      WorkspaceStatus

	MembersCount int
	MaxMembers   int

	Settings string // opaque JSON blob owned by the client layer
	Rules    Rules

	ArchivedAt       *time.Time // set iff Status == archived
	ArchiveExpiresAt *time.Time // deadline after which the reaper may delete

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rules is freeform workspace policy text with attribution.
type Rules struct {
	Content       string
	LastUpdatedBy string
}

// Archived reports whether the workspace is in the archived state.
func (w Workspace) Archived() bool { return w.Status == WorkspaceArchived }

// ReapEligible reports whether the archive grace period has elapsed.
func (w Workspace) ReapEligible(now time.Time) bool {
	return w.Archived() && w.ArchiveExpiresAt != nil && !now.Before(*w.ArchiveExpiresAt)
}

// Member is a (user, role) association embedded in a workspace. Member rows
// have no lifetime independent of their workspace.
type Member struct {
	WorkspaceID string
	UserID      string
	Role        string
	Permissions []string
	InvitedBy   string
	JoinedAt    time.Time
}
