package service

import (
	"context"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
)

// ownerOrScope authorizes actor against a workspace. The owner check runs
// before the role cache lookup so that a stale or missing cache entry can
// never lock the owner out of their own workspace.
func ownerOrScope(ctx context.Context, st store.Store, ws domain.Workspace, actorID, scope string) bool {
	if actorID == ws.OwnerID {
		return true
	}
	grant, err := st.RoleCache().GetGrant(ctx, actorID, ws.ID)
	if err != nil {
		return false
	}
	return grant.HasPermission(scope)
}
