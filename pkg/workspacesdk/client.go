package workspacesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the workspace service. Token is the caller's bearer access
// token issued by the identity provider; the service only verifies it, it
// never issues tokens itself.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a workspace service client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        envelope.Error,
			Description: envelope.ErrorDescription,
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateWorkspace provisions a new workspace owned by the caller.
func (c *Client) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*WorkspaceResponse, error) {
	var out WorkspaceResponse
	if err := c.do(ctx, http.MethodPost, "/v1/workspaces", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWorkspace fetches a workspace by id.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*WorkspaceResponse, error) {
	var out WorkspaceResponse
	if err := c.do(ctx, http.MethodGet, "/v1/workspaces/"+url.PathEscape(workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArchiveWorkspace starts the deletion grace countdown.
func (c *Client) ArchiveWorkspace(ctx context.Context, workspaceID string) (*ArchiveResponse, error) {
	var out ArchiveResponse
	if err := c.do(ctx, http.MethodPost, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/archive", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreWorkspace brings an archived workspace back to active.
func (c *Client) RestoreWorkspace(ctx context.Context, workspaceID string) error {
	return c.do(ctx, http.MethodPost, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/restore", nil, nil)
}

// DeleteWorkspace permanently deletes an archived workspace.
func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/workspaces/"+url.PathEscape(workspaceID), nil, nil)
}

// UpdateRules replaces the workspace rules text.
func (c *Client) UpdateRules(ctx context.Context, workspaceID string, req UpdateRulesRequest) (*WorkspaceResponse, error) {
	var out WorkspaceResponse
	if err := c.do(ctx, http.MethodPut, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/rules", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers returns the workspace roster, optionally filtered by role.
func (c *Client) ListMembers(ctx context.Context, workspaceID, role string) (*MembersResponse, error) {
	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/members"
	if role != "" {
		path += "?role=" + url.QueryEscape(role)
	}
	var out MembersResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMember grants a user direct membership.
func (c *Client) AddMember(ctx context.Context, workspaceID string, req AddMemberRequest) (*MemberResponse, error) {
	var out MemberResponse
	if err := c.do(ctx, http.MethodPost, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/members", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember takes a user out of the workspace.
func (c *Client) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	return c.do(ctx, http.MethodDelete,
		"/v1/workspaces/"+url.PathEscape(workspaceID)+"/members/"+url.PathEscape(userID), nil, nil)
}

// TransferOwnership hands the workspace to another user.
func (c *Client) TransferOwnership(ctx context.Context, workspaceID string, req TransferOwnershipRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/transfer", req, nil)
}

// CreateInvitation mints an invitation; the response carries the raw token.
func (c *Client) CreateInvitation(ctx context.Context, workspaceID string, req CreateInvitationRequest) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := c.do(ctx, http.MethodPost, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/invitations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations returns the workspace's invitation ledger.
func (c *Client) ListInvitations(ctx context.Context, workspaceID string) (*InvitationsResponse, error) {
	var out InvitationsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/invitations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation redeems a token for the authenticated caller.
func (c *Client) AcceptInvitation(ctx context.Context, token string) (*MemberResponse, error) {
	var out MemberResponse
	if err := c.do(ctx, http.MethodPost, "/v1/invitations/accept", AcceptInvitationRequest{Token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeclineInvitation declines a token for the authenticated caller.
func (c *Client) DeclineInvitation(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/invitations/decline", DeclineInvitationRequest{Token: token}, nil)
}

// CancelInvitation revokes a pending invitation.
func (c *Client) CancelInvitation(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/invitations/"+url.PathEscape(invitationID), nil, nil)
}

// RemindInvitation re-sends the invitation email.
func (c *Client) RemindInvitation(ctx context.Context, invitationID string) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := c.do(ctx, http.MethodPost, "/v1/invitations/"+url.PathEscape(invitationID)+"/remind", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtendInvitation pushes a pending invitation's deadline forward.
func (c *Client) ExtendInvitation(ctx context.Context, invitationID string, extraDays int) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := c.do(ctx, http.MethodPost, "/v1/invitations/"+url.PathEscape(invitationID)+"/extend",
		ExtendInvitationRequest{ExtraDays: extraDays}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez calls the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
