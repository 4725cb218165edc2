package http

import (
	"encoding/json"
	"net/http"

	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/pkg/httpx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Create Invitation
//	@Description	Mint a tokenized invitation to the workspace. With an email the invitation is bound to that identity; without one it is an open link any authenticated token holder may redeem. The raw token appears only in this response.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Workspace ID"
//	@Param			request	body		workspacesdk.CreateInvitationRequest	true	"Invitation details"
//	@Success		201		{object}	workspacesdk.InvitationResponse		"includes the raw token"
//	@Failure		400		{object}	workspacesdk.ErrorResponse
//	@Failure		403		{object}	workspacesdk.ErrorResponse
//	@Failure		404		{object}	workspacesdk.ErrorResponse
//	@Failure		409		{object}	workspacesdk.ErrorResponse	"duplicate pending invitation or already a member"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	inv, token, err := h.InvitationService.Create(ctx, r.PathValue("id"),
		req.Email, req.Role, httpx.UserIDFromCtx(ctx), req.ExpiresInDays)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toInvitationResponse(inv, token))
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	Return every invitation bound to the workspace, newest first. Requires invite rights. Tokens are never included.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Workspace ID"
//	@Success		200	{object}	workspacesdk.InvitationsResponse
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	invs, err := h.InvitationService.ListForWorkspace(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	resp := workspacesdk.InvitationsResponse{Invitations: make([]workspacesdk.InvitationResponse, 0, len(invs))}
	for _, inv := range invs {
		resp.Invitations = append(resp.Invitations, toInvitationResponse(inv, ""))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeem an invitation token for the authenticated caller. Email invitations may only be accepted by the invited identity; tokens are single-use.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		workspacesdk.AcceptInvitationRequest	true	"Invitation token"
//	@Success		200		{object}	workspacesdk.MemberResponse
//	@Failure		403		{object}	workspacesdk.ErrorResponse	"token belongs to a different identity"
//	@Failure		404		{object}	workspacesdk.ErrorResponse
//	@Failure		409		{object}	workspacesdk.ErrorResponse	"invitation already terminal"
//	@Failure		410		{object}	workspacesdk.ErrorResponse	"invitation expired"
//	@Failure		422		{object}	workspacesdk.ErrorResponse	"workspace is full"
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	m, err := h.InvitationService.Accept(ctx, req.Token, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(m))
}

// HandleDecline godoc
//
//	@Summary		Decline Invitation
//	@Description	Decline an invitation token. Email invitations may only be declined by the invited identity.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body	workspacesdk.DeclineInvitationRequest	true	"Invitation token"
//	@Success		204
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		409	{object}	workspacesdk.ErrorResponse	"invitation already terminal"
//	@Security		BearerAuth
//	@Router			/v1/invitations/decline [post].
func (h *InvitationsHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.DeclineInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.InvitationService.Decline(ctx, req.Token, httpx.UserIDFromCtx(ctx)); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCancel godoc
//
//	@Summary		Cancel Invitation
//	@Description	Revoke a pending invitation. Allowed for the inviter, the workspace owner, or anyone with member management rights.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path	string	true	"Invitation ID"
//	@Success		204
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		409	{object}	workspacesdk.ErrorResponse	"invitation already terminal"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.InvitationService.Cancel(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx)); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemind godoc
//
//	@Summary		Send Invitation Reminder
//	@Description	Re-send the invitation email and bump the reminder counter. Only meaningful for pending, unexpired email invitations.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	workspacesdk.InvitationResponse
//	@Failure		400	{object}	workspacesdk.ErrorResponse	"link invitations have no email to remind"
//	@Failure		403	{object}	workspacesdk.ErrorResponse
//	@Failure		404	{object}	workspacesdk.ErrorResponse
//	@Failure		410	{object}	workspacesdk.ErrorResponse	"invitation expired"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/remind [post].
func (h *InvitationsHandler) HandleRemind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inv, err := h.InvitationService.SendReminder(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv, ""))
}

// HandleExtend godoc
//
//	@Summary		Extend Invitation Expiration
//	@Description	Push a pending invitation's deadline forward by the given number of days.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Invitation ID"
//	@Param			request	body		workspacesdk.ExtendInvitationRequest	true	"Days to add"
//	@Success		200		{object}	workspacesdk.InvitationResponse
//	@Failure		400		{object}	workspacesdk.ErrorResponse
//	@Failure		403		{object}	workspacesdk.ErrorResponse
//	@Failure		404		{object}	workspacesdk.ErrorResponse
//	@Failure		410		{object}	workspacesdk.ErrorResponse	"invitation expired"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/extend [post].
func (h *InvitationsHandler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req workspacesdk.ExtendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	inv, err := h.InvitationService.ExtendExpiration(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx), req.ExtraDays)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv, ""))
}
