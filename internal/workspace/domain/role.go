package domain

// Workspace roles, in descending order of privilege. Owner is a property of
// the workspace itself, not a member-row role; it appears here only for role
// cache entries.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// Permission scopes cached per (user, workspace) pair.
const (
	ScopeWorkspaceRead   = "workspace:read"
	ScopeWorkspaceWrite  = "workspace:write"
	ScopeWorkspaceDelete = "workspace:delete"
	ScopeMembersInvite   = "members:invite"
	ScopeMembersManage   = "members:manage"
)

// PermissionsForRole returns the permission scopes a role grants.
func PermissionsForRole(role string) []string {
	switch role {
	case RoleOwner:
		return []string{
			ScopeWorkspaceRead, ScopeWorkspaceWrite, ScopeWorkspaceDelete,
			ScopeMembersInvite, ScopeMembersManage,
		}
	case RoleAdmin:
		return []string{
			ScopeWorkspaceRead, ScopeWorkspaceWrite,
			ScopeMembersInvite, ScopeMembersManage,
		}
	case RoleMember:
		return []string{ScopeWorkspaceRead, ScopeWorkspaceWrite}
	case RoleViewer:
		return []string{ScopeWorkspaceRead}
	default:
		return nil
	}
}

// InvitableRole reports whether a role may be granted through an invitation
// or direct member addition. Ownership moves only via transfer.
func InvitableRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}
