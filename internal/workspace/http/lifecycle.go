package http

import (
	"net/http"

	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/pkg/httpx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
)

type LifecycleHandler struct {
	LifecycleService *service.LifecycleService
}

// HandleArchive godoc
//
//	@Summary		Archive Workspace
//	@Description	Move an active workspace into the archived state and start the deletion grace countdown. The response reports how long until the workspace becomes eligible for permanent deletion.
//	@Tags			Lifecycle
//	@Produce		json
//	@Param			id	path		string	true	"Workspace ID"
//	@Success		200	{object}	workspacesdk.ArchiveResponse
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		409	{object}	workspacesdk.ErrorResponse	"already archived"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/archive [post].
func (h *LifecycleHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	seconds, err := h.LifecycleService.Archive(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, workspacesdk.ArchiveResponse{
		Status:             "archived",
		DeleteAfterSeconds: seconds,
	})
}

// HandleRestore godoc
//
//	@Summary		Restore Workspace
//	@Description	Bring an archived workspace back to active. Only the owner may restore, and only before the grace deadline passes.
//	@Tags			Lifecycle
//	@Produce		json
//	@Param			id	path	string	true	"Workspace ID"
//	@Success		204
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		409	{object}	workspacesdk.ErrorResponse	"not archived, or past the deadline"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/restore [post].
func (h *LifecycleHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.LifecycleService.Restore(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx)); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Permanently Delete Workspace
//	@Description	Delete an archived workspace immediately without waiting out the grace period. Members, cached roles, and pending invitations go with it. Owner only.
//	@Tags			Lifecycle
//	@Produce		json
//	@Param			id	path	string	true	"Workspace ID"
//	@Success		204
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		409	{object}	workspacesdk.ErrorResponse	"workspace is not archived"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id} [delete].
func (h *LifecycleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.LifecycleService.PermanentDelete(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx)); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
