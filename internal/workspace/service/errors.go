package service

import "errors"

// Sentinel errors returned by the workspace control plane. Handlers map
// these onto HTTP statuses; nothing else crosses the service boundary as a
// typed failure.
var (
	ErrInvalidRequest             = errors.New("invalid request")
	ErrInvalidRole                = errors.New("invalid role")
	ErrWorkspaceNotFound          = errors.New("workspace not found")
	ErrInvitationNotFound         = errors.New("invitation not found")
	ErrUserNotFound               = errors.New("user not found")
	ErrForbidden                  = errors.New("operation not permitted")
	ErrInvalidState               = errors.New("operation invalid for current state")
	ErrMemberLimitExceeded        = errors.New("workspace member limit reached")
	ErrInvitationExpired          = errors.New("invitation has expired")
	ErrIdentityMismatch           = errors.New("invitation was addressed to a different identity")
	ErrDuplicatePendingInvitation = errors.New("a pending invitation already exists for this email")
	ErrAlreadyMember              = errors.New("user is already a member of this workspace")
	ErrOwnerRemoval               = errors.New("workspace owner cannot be removed from the member list")
)
