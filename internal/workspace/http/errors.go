package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/pkg/httpx"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
)

// writeServiceError maps service sentinel errors onto the HTTP error
// envelope. Anything unmapped is a 500 and gets logged; sentinel failures
// are the caller's problem and stay quiet.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrIdentityMismatch):
		status, code = http.StatusForbidden, "identity_mismatch"
	case errors.Is(err, service.ErrInvalidState):
		status, code = http.StatusConflict, "invalid_state"
	case errors.Is(err, service.ErrDuplicatePendingInvitation):
		status, code = http.StatusConflict, "duplicate_invitation"
	case errors.Is(err, service.ErrAlreadyMember):
		status, code = http.StatusConflict, "already_member"
	case errors.Is(err, service.ErrOwnerRemoval):
		status, code = http.StatusConflict, "owner_removal"
	case errors.Is(err, service.ErrMemberLimitExceeded):
		status, code = http.StatusUnprocessableEntity, "limit_exceeded"
	case errors.Is(err, service.ErrInvitationExpired):
		status, code = http.StatusGone, "invitation_expired"
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidRequest):
		status, code = http.StatusBadRequest, "invalid_request"
	default:
		log.Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, workspacesdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Internal server error",
		})
		return
	}

	httpx.WriteJSON(w, status, workspacesdk.ErrorResponse{
		Error:            code,
		ErrorDescription: err.Error(),
	})
}

func writeInvalidBody(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, workspacesdk.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "Invalid JSON body",
	})
}
