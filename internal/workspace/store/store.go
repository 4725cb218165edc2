package store

import (
	"context"
	"errors"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep the surface tidy; conditional
// mutations (member limit guard, invitation status transitions) live on the
// repositories themselves so callers never see a read-then-write window.
type Store interface {
	Workspaces() Workspaces
	Members() Members
	Invitations() Invitations
	RoleCache() RoleCache
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns an
	// error and committing otherwise. This is the recommended entrypoint for
	// multi-step mutations (member row + role cache, cascading deletes).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store: the same repositories plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Workspaces interface {
	// CreateWorkspace inserts a new workspace (id provided by app via ULID).
	CreateWorkspace(ctx context.Context, w domain.Workspace) error

	// GetWorkspaceByID returns a workspace by id.
	GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error)

	// ArchiveWorkspace flips an active workspace to archived with the given
	// timestamps. Returns false if the workspace is missing or not active.
	ArchiveWorkspace(ctx context.Context, id string, archivedAt, expiresAt time.Time) (bool, error)

	// RestoreWorkspace flips an archived workspace back to active, clearing
	// the archive timestamps. Returns false if missing or not archived.
	RestoreWorkspace(ctx context.Context, id string) (bool, error)

	// DeleteWorkspace removes the workspace row only while it is still
	// archived, as a single conditional delete; member rows cascade per
	// schema. Returns false when the workspace is missing or active.
	DeleteWorkspace(ctx context.Context, id string) (bool, error)

	// ListReapable returns archived workspaces whose grace deadline is at or
	// before now.
	ListReapable(ctx context.Context, now time.Time) ([]domain.Workspace, error)

	// IncrementMembersCount bumps the usage counter only while it is below
	// max_members, as a single conditional update. Returns false when the
	// limit guard rejects the increment.
	IncrementMembersCount(ctx context.Context, id string) (bool, error)

	// DecrementMembersCount lowers the usage counter after a member removal.
	DecrementMembersCount(ctx context.Context, id string) error

	// SetOwner changes the stored owner reference.
	SetOwner(ctx context.Context, id, ownerID string) error

	// UpdateRules replaces the rules content and attribution.
	UpdateRules(ctx context.Context, id, content, updatedBy string) error
}

type Members interface {
	// AddMember inserts a member row.
	AddMember(ctx context.Context, m domain.Member) error

	// GetMember returns a member row, or ErrNotFound.
	GetMember(ctx context.Context, workspaceID, userID string) (domain.Member, error)

	// ListMembers returns member rows ordered by join time.
	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)

	// RemoveMember deletes a member row; ErrNotFound when absent.
	RemoveMember(ctx context.Context, workspaceID, userID string) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation (token_hash is the SHA-256
	// fingerprint of the opaque token). A duplicate pending invitation for
	// the same (email, target) maps to ErrAlreadyExists via the partial
	// unique index.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash returns an invitation by token fingerprint.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// FindPendingByEmailTarget returns the pending invitation for an
	// (email, target) pair, or ErrNotFound.
	FindPendingByEmailTarget(ctx context.Context, email, targetType, targetID string) (domain.Invitation, error)

	// ListInvitationsForTarget returns all invitations bound to a target,
	// newest first.
	ListInvitationsForTarget(ctx context.Context, targetType, targetID string) ([]domain.Invitation, error)

	// MarkAccepted transitions pending→accepted, stamping the accepting user
	// and timestamp. The update is conditional on status still being
	// pending; exactly one concurrent caller sees true.
	MarkAccepted(ctx context.Context, id, userID string, at time.Time) (bool, error)

	// MarkDeclined transitions pending→declined.
	MarkDeclined(ctx context.Context, id string, at time.Time) (bool, error)

	// MarkCancelled transitions pending→cancelled.
	MarkCancelled(ctx context.Context, id string) (bool, error)

	// MarkExpiredBefore bulk-flips pending invitations whose deadline passed
	// before cutoff to expired. Returns the number flipped (housekeeping).
	MarkExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// CancelPendingForTarget terminates every pending invitation bound to a
	// target (used by the cascading workspace delete).
	CancelPendingForTarget(ctx context.Context, targetType, targetID string) error

	// RecordReminder increments the reminder counter and timestamp on a
	// pending invitation.
	RecordReminder(ctx context.Context, id string, at time.Time) error

	// ExtendExpiry pushes expires_at forward on a pending invitation without
	// touching the reminder counter.
	ExtendExpiry(ctx context.Context, id string, newExpiry time.Time) error
}

type RoleCache interface {
	// UpsertGrant writes or replaces the cached (user, workspace) role entry.
	UpsertGrant(ctx context.Context, g domain.RoleGrant) error

	// GetGrant returns the cached entry, or ErrNotFound.
	GetGrant(ctx context.Context, userID, workspaceID string) (domain.RoleGrant, error)

	// ListGrantsForUser returns every workspace the user has a cached role in.
	ListGrantsForUser(ctx context.Context, userID string) ([]domain.RoleGrant, error)

	// RemoveGrant deletes the cached entry. Removing an absent entry is not
	// an error: membership removal must never be blocked by the cache side.
	RemoveGrant(ctx context.Context, userID, workspaceID string) error

	// RemoveGrantsForWorkspace deletes every cached entry referencing the
	// workspace (cascading delete).
	RemoveGrantsForWorkspace(ctx context.Context, workspaceID string) error
}

type Users interface {
	// GetUserByID resolves a directory record by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail resolves a directory record by email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a directory record (provisioned by the identity
	// provider sync, or directly in tests).
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a directory record.
	DeleteUser(ctx context.Context, id string) error
}
