package domain

import "time"

// RoleGrant is one entry in a user's role cache: the derived index used to
// answer "which workspaces does this user belong to, and as what" without
// scanning every workspace aggregate.
type RoleGrant struct {
	UserID      string
	WorkspaceID string
	Role        string
	Permissions []string
	UpdatedAt   time.Time
}

// HasPermission reports whether the grant carries the given scope.
func (g RoleGrant) HasPermission(scope string) bool {
	for _, p := range g.Permissions {
		if p == scope {
			return true
		}
	}
	return false
}
