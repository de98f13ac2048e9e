package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/internal/services"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type TeamHandler struct {
	teamService TeamServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Members(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	members, err := h.teamService.Members(context.Background(), userID)
	if err != nil {
		log.Printf("failed to get team members: %v", err)
		fail(c, 500, "failed to get team members")
		return
	}

	_ = c.JSON(200, dto.MembersResponse{
		Envelope: ok(),
		Members:  toMemberDTOs(members),
	})
}

func (h *TeamHandler) PendingInvitations(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}
	email := c.QueryParam("email")

	invitations, err := h.teamService.PendingInvitations(context.Background(), userID, email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, 404, "user not found")
			return
		}
		log.Printf("failed to get invitations: %v", err)
		fail(c, 500, "failed to get invitations")
		return
	}

	_ = c.JSON(200, dto.InvitationsResponse{
		Envelope:    ok(),
		Invitations: toInvitationDTOs(invitations),
	})
}

func (h *TeamHandler) SentInvitations(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}
	status := c.QueryParam("status")

	invitations, err := h.teamService.SentInvitations(context.Background(), userID, status)
	if err != nil {
		log.Printf("failed to get sent invitations: %v", err)
		fail(c, 500, "failed to get sent invitations")
		return
	}

	_ = c.JSON(200, dto.InvitationsResponse{
		Envelope:    ok(),
		Invitations: toInvitationDTOs(invitations),
	})
}

func (h *TeamHandler) Info(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	owned, member, err := h.teamService.Info(context.Background(), userID)
	if err != nil {
		log.Printf("failed to get team info: %v", err)
		fail(c, 500, "failed to get team info")
		return
	}

	_ = c.JSON(200, dto.TeamInfoResponse{
		Envelope: ok(),
		TeamInfo: dto.TeamInfo{
			OwnedTeams:  toTeamSummaries(owned),
			MemberTeams: toTeamSummaries(member),
		},
	})
}

// Details reports the user's team with its owner. An unaffiliated user gets
// a null team rather than an error, so clients can poll it unconditionally.
func (h *TeamHandler) Details(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	team, owner, err := h.teamService.Details(context.Background(), userID)
	if errors.Is(err, services.ErrTeamNotFound) {
		_ = c.JSON(200, dto.TeamDetailsResponse{Envelope: ok(), Team: nil})
		return
	}
	if err != nil {
		log.Printf("failed to get team details: %v", err)
		fail(c, 500, "failed to get team details")
		return
	}

	_ = c.JSON(200, dto.TeamDetailsResponse{
		Envelope: ok(),
		Team: &dto.TeamDetails{
			ID:    team.ID,
			Name:  team.Name,
			Owner: toUserSummary(owner),
		},
	})
}

func (h *TeamHandler) Invite(c *drift.Context) {
	var req dto.InviteRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if req.TeamOwnerID == uuid.Nil {
		fail(c, 400, "teamOwnerId is required")
		return
	}
	if req.InvitedEmail == "" {
		fail(c, 400, "invitedEmail is required")
		return
	}

	invitation, err := h.teamService.Invite(context.Background(), req.TeamOwnerID, req.InvitedEmail)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotTeamOwner):
			fail(c, 403, "only the team owner can invite members")
		case errors.Is(err, services.ErrAlreadyMember):
			fail(c, 409, "User is already a team member")
		case errors.Is(err, services.ErrAlreadyInvited):
			fail(c, 409, "Email already invited")
		default:
			log.Printf("failed to create invitation: %v", err)
			fail(c, 500, "failed to create invitation")
		}
		return
	}

	_ = c.JSON(201, dto.InviteResponse{
		Envelope:   ok(),
		Invitation: toInvitationDTO(invitation),
	})
}

func (h *TeamHandler) AcceptInvitation(c *drift.Context) {
	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, 400, "invalid invitation id")
		return
	}

	var req dto.AcceptInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if err := h.teamService.Accept(context.Background(), invitationID, req.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationNotFound), errors.Is(err, services.ErrUserNotFound):
			fail(c, 404, "invitation not found")
		case errors.Is(err, services.ErrAlreadyOnTeam):
			fail(c, 409, "user already belongs to a team")
		default:
			log.Printf("failed to accept invitation: %v", err)
			fail(c, 500, "failed to accept invitation")
		}
		return
	}

	owned, member, err := h.teamService.Info(context.Background(), req.UserID)
	if err != nil {
		log.Printf("failed to get team info after accept: %v", err)
		fail(c, 500, "failed to get team info")
		return
	}

	_ = c.JSON(200, dto.AcceptInvitationResponse{
		Envelope: ok(),
		TeamInfo: dto.TeamInfo{
			OwnedTeams:  toTeamSummaries(owned),
			MemberTeams: toTeamSummaries(member),
		},
	})
}

func (h *TeamHandler) RejectInvitation(c *drift.Context) {
	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, 400, "invalid invitation id")
		return
	}

	var req dto.RejectInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if err := h.teamService.Reject(context.Background(), invitationID, req.UserID); err != nil {
		if errors.Is(err, services.ErrInvitationNotFound) {
			fail(c, 404, "invitation not found")
			return
		}
		log.Printf("failed to reject invitation: %v", err)
		fail(c, 500, "failed to reject invitation")
		return
	}

	_ = c.JSON(200, dto.StatusResponse{Envelope: ok()})
}

func (h *TeamHandler) RemoveMember(c *drift.Context) {
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		fail(c, 400, "invalid member id")
		return
	}

	var req dto.RemoveMemberRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if err := h.teamService.RemoveMember(context.Background(), memberID, req.TeamOwnerID); err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			fail(c, 404, "member not found")
		case errors.Is(err, services.ErrNotTeamOwner):
			fail(c, 403, "not allowed to remove this member")
		case errors.Is(err, services.ErrCannotRemoveOwner):
			fail(c, 400, "cannot remove team owner")
		default:
			log.Printf("failed to remove member: %v", err)
			fail(c, 500, "failed to remove member")
		}
		return
	}

	_ = c.JSON(200, dto.StatusResponse{Envelope: ok()})
}

func (h *TeamHandler) Create(c *drift.Context) {
	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		fail(c, 400, "userId is required")
		return
	}

	name := ""
	if req.TeamName != nil {
		name = *req.TeamName
	}

	team, err := h.teamService.Create(context.Background(), req.UserID, name)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyOnTeam) {
			fail(c, 409, "user already belongs to a team")
			return
		}
		log.Printf("failed to create team: %v", err)
		fail(c, 500, "failed to create team")
		return
	}

	_ = c.JSON(201, dto.TeamResponse{
		Envelope: ok(),
		Team:     dto.TeamSummary{ID: team.ID, Name: team.Name},
	})
}

func (h *TeamHandler) UpdateName(c *drift.Context) {
	var req dto.UpdateTeamNameRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		fail(c, 400, "userId is required")
		return
	}

	name := ""
	if req.TeamName != nil {
		name = *req.TeamName
	}

	team, err := h.teamService.UpdateName(context.Background(), req.UserID, name)
	if err != nil {
		if errors.Is(err, services.ErrNotTeamOwner) {
			fail(c, 403, "only the team owner can rename the team")
			return
		}
		log.Printf("failed to update team name: %v", err)
		fail(c, 500, "failed to update team name")
		return
	}

	_ = c.JSON(200, dto.TeamResponse{
		Envelope: ok(),
		Team:     dto.TeamSummary{ID: team.ID, Name: team.Name},
	})
}

func toUserSummary(u *models.User) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toMemberDTOs(members []models.TeamMember) []dto.TeamMember {
	out := make([]dto.TeamMember, len(members))
	for i, m := range members {
		out[i] = dto.TeamMember{
			ID:        m.ID,
			UserID:    m.UserID,
			Role:      m.Role,
			User:      toUserSummary(m.User),
			CreatedAt: m.CreatedAt,
		}
	}
	return out
}

func toInvitationDTO(inv *models.TeamInvitation) dto.TeamInvitation {
	return dto.TeamInvitation{
		ID:           inv.ID,
		TeamID:       inv.TeamID,
		InvitedEmail: inv.InvitedEmail,
		Status:       inv.Status,
		Inviter:      toUserSummary(inv.Inviter),
		CreatedAt:    inv.CreatedAt,
	}
}

func toInvitationDTOs(invitations []models.TeamInvitation) []dto.TeamInvitation {
	out := make([]dto.TeamInvitation, len(invitations))
	for i := range invitations {
		out[i] = toInvitationDTO(&invitations[i])
	}
	return out
}

func toTeamSummaries(teams []models.Team) []dto.TeamSummary {
	out := make([]dto.TeamSummary, len(teams))
	for i, t := range teams {
		out[i] = dto.TeamSummary{ID: t.ID, Name: t.Name}
	}
	return out
}
