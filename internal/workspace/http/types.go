package http

import (
	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
)

func toWorkspaceResponse(ws domain.Workspace) workspacesdk.WorkspaceResponse {
	resp := workspacesdk.WorkspaceResponse{
		ID:                 ws.ID,
		Name:               ws.Name,
		Description:        ws.Description,
		OwnerID:            ws.OwnerID,
		Status:             string(ws.Status),
		MembersCount:       ws.MembersCount,
		MaxMembers:         ws.MaxMembers,
		RulesContent:       ws.Rules.Content,
		RulesLastUpdatedBy: ws.Rules.LastUpdatedBy,
		CreatedAt:          ws.CreatedAt.Unix(),
	}
	if ws.ArchivedAt != nil {
		resp.ArchivedAt = ws.ArchivedAt.Unix()
	}
	if ws.ArchiveExpiresAt != nil {
		resp.ArchiveExpiresAt = ws.ArchiveExpiresAt.Unix()
	}
	return resp
}

func toMemberResponse(m domain.Member) workspacesdk.MemberResponse {
	return workspacesdk.MemberResponse{
		UserID:      m.UserID,
		Role:        m.Role,
		Permissions: m.Permissions,
		InvitedBy:   m.InvitedBy,
		JoinedAt:    m.JoinedAt.Unix(),
	}
}

func toMemberViewResponse(v service.MemberView) workspacesdk.MemberResponse {
	resp := toMemberResponse(v.Member)
	resp.Email = v.Email
	resp.DisplayName = v.DisplayName
	resp.DirectoryMissing = v.DirectoryMissing
	return resp
}

func toInvitationResponse(inv domain.Invitation, token string) workspacesdk.InvitationResponse {
	resp := workspacesdk.InvitationResponse{
		ID:            inv.ID,
		WorkspaceID:   inv.TargetID,
		Email:         inv.Email,
		Role:          inv.Role,
		Status:        string(inv.Status),
		InvitedBy:     inv.InvitedBy,
		Token:         token,
		ExpiresAt:     inv.ExpiresAt.Unix(),
		RemindersSent: inv.RemindersSent,
		CreatedAt:     inv.CreatedAt.Unix(),
	}
	if inv.LastReminderAt != nil {
		resp.LastReminderAt = inv.LastReminderAt.Unix()
	}
	return resp
}
