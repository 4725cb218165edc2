package workspacesdk

// ErrorResponse is the standard error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "not_found", "conflict")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// CreateWorkspaceRequest creates a new workspace owned by the caller.
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateRulesRequest replaces the workspace rules text.
type UpdateRulesRequest struct {
	Content string `json:"content"`
}

// WorkspaceResponse is the workspace resource representation.
type WorkspaceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id"`
	Status      string `json:"status"`

	MembersCount int `json:"members_count"`
	MaxMembers   int `json:"max_members"`

	RulesContent       string `json:"rules_content,omitempty"`
	RulesLastUpdatedBy string `json:"rules_last_updated_by,omitempty"`

	// ArchivedAt and ArchiveExpiresAt are unix seconds, present only while
	// the workspace is archived.
	ArchivedAt       int64 `json:"archived_at,omitempty"`
	ArchiveExpiresAt int64 `json:"archive_expires_at,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// ArchiveResponse reports the grace countdown started by an archive.
type ArchiveResponse struct {
	Status string `json:"status"`

	// DeleteAfterSeconds is how long until the workspace becomes eligible
	// for permanent deletion.
	DeleteAfterSeconds int64 `json:"delete_after_seconds"`
}

// AddMemberRequest grants a user direct membership.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TransferOwnershipRequest hands the workspace to another user.
type TransferOwnershipRequest struct {
	NewOwnerID string `json:"new_owner_id"`
}

// MemberResponse is one roster entry joined with the user directory.
type MemberResponse struct {
	UserID      string   `json:"user_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	InvitedBy   string   `json:"invited_by,omitempty"`
	JoinedAt    int64    `json:"joined_at"`

	// DirectoryMissing marks members whose user record no longer resolves.
	DirectoryMissing bool `json:"directory_missing,omitempty"`
}

// MembersResponse wraps the workspace roster.
type MembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// CreateInvitationRequest mints an invitation. Leave Email empty for a
// shareable link invitation.
type CreateInvitationRequest struct {
	Email         string `json:"email,omitempty"`
	Role          string `json:"role"`
	ExpiresInDays int    `json:"expires_in_days,omitempty"`
}

// AcceptInvitationRequest redeems an invitation token.
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// DeclineInvitationRequest declines an invitation token.
type DeclineInvitationRequest struct {
	Token string `json:"token"`
}

// ExtendInvitationRequest pushes a pending invitation's deadline forward.
type ExtendInvitationRequest struct {
	ExtraDays int `json:"extra_days"`
}

// InvitationResponse is the invitation resource representation. Token is
// populated exactly once, in the response to the create call.
type InvitationResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	InvitedBy   string `json:"invited_by"`

	Token string `json:"token,omitempty"`

	ExpiresAt      int64 `json:"expires_at"`
	RemindersSent  int   `json:"reminders_sent,omitempty"`
	LastReminderAt int64 `json:"last_reminder_at,omitempty"`
	CreatedAt      int64 `json:"created_at"`
}

// InvitationsResponse wraps a workspace's invitation ledger.
type InvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// HealthChecks reports per-dependency health on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
