package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type TeamMember struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Role      string      `json:"role"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

type TeamInvitation struct {
	ID           uuid.UUID   `json:"id"`
	TeamID       uuid.UUID   `json:"teamId"`
	InvitedEmail string      `json:"invitedEmail"`
	Status       string      `json:"status"`
	Inviter      UserSummary `json:"inviter"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type TeamSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TeamInfo splits a user's teams by relationship; the client derives the
// owner/member/none role from it together with the member list.
type TeamInfo struct {
	OwnedTeams  []TeamSummary `json:"ownedTeams"`
	MemberTeams []TeamSummary `json:"memberTeams"`
}

type TeamDetails struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Owner UserSummary `json:"owner"`
}

type InviteRequest struct {
	TeamOwnerID  uuid.UUID `json:"teamOwnerId"`
	InvitedEmail string    `json:"invitedEmail"`
}

type AcceptInvitationRequest struct {
	UserID uuid.UUID `json:"userId"`
}

type RejectInvitationRequest struct {
	UserID uuid.UUID `json:"userId"`
}

type RemoveMemberRequest struct {
	TeamOwnerID uuid.UUID `json:"teamOwnerId"`
}

// TeamName is a pointer so an absent name travels as JSON null, which the
// server replaces with the default name.
type CreateTeamRequest struct {
	UserID   uuid.UUID `json:"userId"`
	TeamName *string   `json:"teamName"`
}

type UpdateTeamNameRequest struct {
	UserID   uuid.UUID `json:"userId"`
	TeamName *string   `json:"teamName"`
}

type MembersResponse struct {
	Envelope
	Members []TeamMember `json:"members"`
}

type InvitationsResponse struct {
	Envelope
	Invitations []TeamInvitation `json:"invitations"`
}

type TeamInfoResponse struct {
	Envelope
	TeamInfo TeamInfo `json:"teamInfo"`
}

type TeamDetailsResponse struct {
	Envelope
	Team *TeamDetails `json:"team"`
}

type InviteResponse struct {
	Envelope
	Invitation TeamInvitation `json:"invitation"`
}

type AcceptInvitationResponse struct {
	Envelope
	TeamInfo TeamInfo `json:"teamInfo"`
}

type TeamResponse struct {
	Envelope
	Team TeamSummary `json:"team"`
}
