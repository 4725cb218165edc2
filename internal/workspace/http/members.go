package http

import (
	"encoding/json"
	"net/http"

	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/pkg/httpx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
)

type MembersHandler struct {
	WorkspaceService  *service.WorkspaceService
	MembershipService *service.MembershipService
}

// HandleList godoc
//
//	@Summary		List Workspace Members
//	@Description	Return the member roster joined against the user directory, optionally filtered by role. Members whose directory record no longer resolves are flagged, not dropped.
//	@Tags			Members
//	@Produce		json
//	@Param			id		path		string	true	"Workspace ID"
//	@Param			role	query		string	false	"Filter by role (admin, member, viewer)"
//	@Success		200		{object}	workspacesdk.MembersResponse
//	@Failure		403		{object}	workspacesdk.ErrorResponse
//	@Failure		404		{object}	workspacesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	views, err := h.WorkspaceService.ListMembers(ctx, r.PathValue("id"),
		httpx.UserIDFromCtx(ctx), r.URL.Query().Get("role"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	resp := workspacesdk.MembersResponse{Members: make([]workspacesdk.MemberResponse, 0, len(views))}
	for _, v := range views {
		resp.Members = append(resp.Members, toMemberViewResponse(v))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleAdd godoc
//
//	@Summary		Add Workspace Member
//	@Description	Grant a user direct membership with the given role. Adding an existing member returns their current row unchanged.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Workspace ID"
//	@Param			request	body		workspacesdk.AddMemberRequest	true	"Member details"
//	@Success		201		{object}	workspacesdk.MemberResponse
//	@Failure		400		{object}	workspacesdk.ErrorResponse
//	@Failure		403		{object}	workspacesdk.ErrorResponse
//	@Failure		404		{object}	workspacesdk.ErrorResponse
//	@Failure		422		{object}	workspacesdk.ErrorResponse	"member limit reached"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/members [post].
func (h *MembersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.UserID == "" || req.Role == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, workspacesdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "user_id and role are required",
		})
		return
	}

	m, err := h.MembershipService.AddMember(ctx, r.PathValue("id"), req.UserID, req.Role, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMemberResponse(m))
}

// HandleRemove godoc
//
//	@Summary		Remove Workspace Member
//	@Description	Take a user out of the workspace. Members may remove themselves; removing others requires member management rights. The owner cannot be removed.
//	@Tags			Members
//	@Produce		json
//	@Param			id		path	string	true	"Workspace ID"
//	@Param			userID	path	string	true	"User ID"
//	@Success		204
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		409	{object}	workspacesdk.ErrorResponse	"target is the owner"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/members/{userID} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.MembershipService.RemoveMember(ctx, r.PathValue("id"), r.PathValue("userID"), httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTransfer godoc
//
//	@Summary		Transfer Workspace Ownership
//	@Description	Hand the workspace to another user. The new owner leaves the member roster and the former owner joins it as an admin. Owner only.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string									true	"Workspace ID"
//	@Param			request	body	workspacesdk.TransferOwnershipRequest	true	"New owner"
//	@Success		204
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		422	{object}	workspacesdk.ErrorResponse	"member limit reached"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/transfer [post].
func (h *MembersHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.NewOwnerID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, workspacesdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "new_owner_id is required",
		})
		return
	}

	err := h.MembershipService.TransferOwnership(ctx, r.PathValue("id"), req.NewOwnerID, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
