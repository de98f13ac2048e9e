// Package client is a thin typed client for the Cordelia calendar-team API.
// Transport failures, non-2xx statuses and success:false envelopes all
// surface as a single error carrying the server's message when one exists.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
)

// DefaultBaseURL points at a local development server.
const DefaultBaseURL = "http://localhost:8080"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient substitutes the transport; useful for timeouts and tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildURL joins the configured base with a relative endpoint path. The
// endpoint is normalized to carry no leading slash; a malformed base is a
// configuration error, not something handled here.
func (c *Client) BuildURL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// envelope is implemented by every response type via dto.Envelope.
type envelope interface {
	Status() (bool, string)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out envelope) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(endpoint), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Decode even on error statuses; the envelope carries the message.
	decodeErr := json.NewDecoder(resp.Body).Decode(out)

	if decodeErr == nil {
		if success, msg := out.Status(); !success {
			if msg == "" {
				msg = fmt.Sprintf("server returned status %d", resp.StatusCode)
			}
			return errors.New(msg)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	return nil
}

func (c *Client) TeamMembers(ctx context.Context, userID uuid.UUID) ([]dto.TeamMember, error) {
	var resp dto.MembersResponse
	err := c.do(ctx, http.MethodGet, "calendar/team/members/"+userID.String(), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// PendingInvitations narrows by email when the caller knows it; the server
// falls back to the stored address otherwise.
func (c *Client) PendingInvitations(ctx context.Context, userID uuid.UUID, email string) ([]dto.TeamInvitation, error) {
	endpoint := "calendar/team/invitations/" + userID.String()
	if email != "" {
		endpoint += "?email=" + url.QueryEscape(email)
	}

	var resp dto.InvitationsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invitations, nil
}

func (c *Client) SentInvitations(ctx context.Context, userID uuid.UUID) ([]dto.TeamInvitation, error) {
	var resp dto.InvitationsResponse
	endpoint := "calendar/team/invitations/sent/" + userID.String() + "?status=pending"
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invitations, nil
}

func (c *Client) TeamInfo(ctx context.Context, userID uuid.UUID) (dto.TeamInfo, error) {
	var resp dto.TeamInfoResponse
	if err := c.do(ctx, http.MethodGet, "calendar/team/info/"+userID.String(), nil, &resp); err != nil {
		return dto.TeamInfo{}, err
	}
	return resp.TeamInfo, nil
}

// TeamDetails returns nil when the user has no team.
func (c *Client) TeamDetails(ctx context.Context, userID uuid.UUID) (*dto.TeamDetails, error) {
	var resp dto.TeamDetailsResponse
	if err := c.do(ctx, http.MethodGet, "calendar/team/details/"+userID.String(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Team, nil
}

func (c *Client) Invite(ctx context.Context, teamOwnerID uuid.UUID, invitedEmail string) (*dto.TeamInvitation, error) {
	req := dto.InviteRequest{TeamOwnerID: teamOwnerID, InvitedEmail: invitedEmail}
	var resp dto.InviteResponse
	if err := c.do(ctx, http.MethodPost, "calendar/team/invite", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Invitation, nil
}

func (c *Client) AcceptInvitation(ctx context.Context, invitationID, userID uuid.UUID) (dto.TeamInfo, error) {
	req := dto.AcceptInvitationRequest{UserID: userID}
	var resp dto.AcceptInvitationResponse
	endpoint := "calendar/team/invitations/" + invitationID.String() + "/accept"
	if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return dto.TeamInfo{}, err
	}
	return resp.TeamInfo, nil
}

func (c *Client) RejectInvitation(ctx context.Context, invitationID, userID uuid.UUID) error {
	req := dto.RejectInvitationRequest{UserID: userID}
	var resp dto.StatusResponse
	endpoint := "calendar/team/invitations/" + invitationID.String() + "/reject"
	return c.do(ctx, http.MethodPost, endpoint, req, &resp)
}

func (c *Client) RemoveMember(ctx context.Context, memberID, teamOwnerID uuid.UUID) error {
	req := dto.RemoveMemberRequest{TeamOwnerID: teamOwnerID}
	var resp dto.StatusResponse
	return c.do(ctx, http.MethodDelete, "calendar/team/members/"+memberID.String(), req, &resp)
}

// CreateTeam sends teamName as JSON null when name is empty; the server
// substitutes its default.
func (c *Client) CreateTeam(ctx context.Context, userID uuid.UUID, name string) (*dto.TeamSummary, error) {
	req := dto.CreateTeamRequest{UserID: userID, TeamName: nullableName(name)}
	var resp dto.TeamResponse
	if err := c.do(ctx, http.MethodPost, "calendar/team/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

func (c *Client) UpdateTeamName(ctx context.Context, userID uuid.UUID, name string) (*dto.TeamSummary, error) {
	req := dto.UpdateTeamNameRequest{UserID: userID, TeamName: nullableName(name)}
	var resp dto.TeamResponse
	if err := c.do(ctx, http.MethodPut, "calendar/team/update-name", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

func (c *Client) Events(ctx context.Context, userID uuid.UUID) ([]dto.CalendarEvent, error) {
	var resp dto.EventsResponse
	if err := c.do(ctx, http.MethodGet, "calendar/events/"+userID.String(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) CalendarAccount(ctx context.Context, userID uuid.UUID) (*dto.CalendarAccount, error) {
	var resp dto.CalendarAccountResponse
	if err := c.do(ctx, http.MethodGet, "calendar/account/"+userID.String(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Account, nil
}

func (c *Client) Profile(ctx context.Context, userID uuid.UUID) (dto.UserProfile, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "calendar/user/"+userID.String(), nil, &resp); err != nil {
		return dto.UserProfile{}, err
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID uuid.UUID, name, timezone string) (dto.UserProfile, error) {
	req := dto.UpdateProfileRequest{Name: name, Timezone: timezone}
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "calendar/user/"+userID.String(), req, &resp); err != nil {
		return dto.UserProfile{}, err
	}
	return resp.User, nil
}

func (c *Client) SendChatMessage(ctx context.Context, userID uuid.UUID, message string) (dto.ChatMessage, error) {
	req := dto.ChatRequest{UserID: userID, Message: message}
	var resp dto.ChatResponse
	if err := c.do(ctx, http.MethodPost, "calendar/chat", req, &resp); err != nil {
		return dto.ChatMessage{}, err
	}
	return resp.Reply, nil
}

func (c *Client) ChatHistory(ctx context.Context, userID uuid.UUID) ([]dto.ChatMessage, error) {
	var resp dto.ChatHistoryResponse
	if err := c.do(ctx, http.MethodGet, "calendar/chat/history/"+userID.String(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func nullableName(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}
