package http

import (
	"encoding/json"
	"net/http"

	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/pkg/httpx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
)

type WorkspacesHandler struct {
	WorkspaceService *service.WorkspaceService
}

// HandleCreate godoc
//
//	@Summary		Create Workspace
//	@Description	Create a new workspace owned by the authenticated caller. The owner is implicit and never appears in the member roster.
//	@Tags			Workspaces
//	@Accept			json
//	@Produce		json
//	@Param			request	body		workspacesdk.CreateWorkspaceRequest	true	"Workspace details"
//	@Success		201		{object}	workspacesdk.WorkspaceResponse
//	@Failure		400		{object}	workspacesdk.ErrorResponse
//	@Failure		401		{object}	workspacesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces [post].
func (h *WorkspacesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	ws, err := h.WorkspaceService.Create(ctx, req.Name, req.Description, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toWorkspaceResponse(ws))
}

// HandleGet godoc
//
//	@Summary		Get Workspace
//	@Description	Fetch a workspace by id.
//	@Tags			Workspaces
//	@Produce		json
//	@Param			id	path		string	true	"Workspace ID"
//	@Success		200	{object}	workspacesdk.WorkspaceResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id} [get].
func (h *WorkspacesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ws, err := h.WorkspaceService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// HandleUpdateRules godoc
//
//	@Summary		Update Workspace Rules
//	@Description	Replace the workspace rules text, recording who changed it. Requires write access; archived workspaces are read-only.
//	@Tags			Workspaces
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Workspace ID"
//	@Param			request	body		workspacesdk.UpdateRulesRequest	true	"Rules content"
//	@Success		200		{object}	workspacesdk.WorkspaceResponse
//	@Failure		403		{object}	workspacesdk.ErrorResponse
//	@Failure		404		{object}	workspacesdk.ErrorResponse
//	@Failure		409		{object}	workspacesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/rules [put].
func (h *WorkspacesHandler) HandleUpdateRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.UpdateRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	ws, err := h.WorkspaceService.UpdateRules(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx), req.Content)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}
