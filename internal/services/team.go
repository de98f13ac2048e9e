package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exportapp2024/cordelia-api/internal/database"
	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrNotTeamOwner       = errors.New("user does not own a team")
	ErrAlreadyOnTeam      = errors.New("user already belongs to a team")
	ErrAlreadyMember      = errors.New("user is already a team member")
	ErrAlreadyInvited     = errors.New("email already invited")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrCannotRemoveOwner  = errors.New("cannot remove team owner")
	ErrMemberNotFound     = errors.New("member not found")
)

// DefaultTeamName is used when the wire carries teamName: null.
const DefaultTeamName = "My Team"

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

// Create makes a team for ownerID and records them as its owner-role member
// in one transaction. A user on any team already cannot create another.
func (s *TeamService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Team, error) {
	if name == "" {
		name = DefaultTeamName
	}

	var onTeam bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_members WHERE user_id = $1)
	`, ownerID).Scan(&onTeam)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if onTeam {
		return nil, ErrAlreadyOnTeam
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team models.Team
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, name, ownerID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, ownerID, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &team, nil
}

func (s *TeamService) UpdateName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Team, error) {
	if name == "" {
		name = DefaultTeamName
	}

	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE teams SET name = $1, updated_at = NOW()
		WHERE owner_id = $2
		RETURNING id, name, owner_id, created_at, updated_at
	`, name, ownerID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotTeamOwner
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update team name: %w", err)
	}
	return &team, nil
}

// TeamForUser returns the team the user owns or belongs to, with their role.
func (s *TeamService) TeamForUser(ctx context.Context, userID uuid.UUID) (*models.Team, string, error) {
	var team models.Team
	var role string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.id, t.name, t.owner_id, t.created_at, t.updated_at, tm.role
		FROM teams t
		JOIN team_members tm ON t.id = tm.team_id
		WHERE tm.user_id = $1
	`, userID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrTeamNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &team, role, nil
}

// Members lists the members of the user's team. An unaffiliated user gets an
// empty list, not an error.
func (s *TeamService) Members(ctx context.Context, userID uuid.UUID) ([]models.TeamMember, error) {
	team, _, err := s.TeamForUser(ctx, userID)
	if errors.Is(err, ErrTeamNotFound) {
		return []models.TeamMember{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT tm.id, tm.team_id, tm.user_id, tm.role, tm.created_at,
		       u.id, u.email, u.name, u.timezone, u.created_at, u.updated_at
		FROM team_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY tm.created_at
	`, team.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var member models.TeamMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.CreatedAt,
			&user.ID, &user.Email, &user.Name, &user.Timezone, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, rows.Err()
}

// Info returns the user's teams split by relationship.
func (s *TeamService) Info(ctx context.Context, userID uuid.UUID) (owned []models.Team, member []models.Team, err error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.name, t.owner_id, t.created_at, t.updated_at, tm.role
		FROM teams t
		JOIN team_members tm ON t.id = tm.team_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	owned = []models.Team{}
	member = []models.Team{}
	for rows.Next() {
		var team models.Team
		var role string
		if err := rows.Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt, &role); err != nil {
			return nil, nil, err
		}
		if role == models.RoleOwner {
			owned = append(owned, team)
		} else {
			member = append(member, team)
		}
	}
	return owned, member, rows.Err()
}

// Details returns the user's team together with its owner.
func (s *TeamService) Details(ctx context.Context, userID uuid.UUID) (*models.Team, *models.User, error) {
	team, _, err := s.TeamForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var owner models.User
	err = s.db.Pool.QueryRow(ctx, `
		SELECT id, email, name, timezone, created_at, updated_at
		FROM users WHERE id = $1
	`, team.OwnerID).Scan(&owner.ID, &owner.Email, &owner.Name, &owner.Timezone, &owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load team owner: %w", err)
	}
	return team, &owner, nil
}

// Invite records a pending invitation from the owner's team to an email.
func (s *TeamService) Invite(ctx context.Context, ownerID uuid.UUID, email string) (*models.TeamInvitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var team models.Team
	var inviter models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.id, t.name, t.owner_id, u.id, u.email, u.name, u.timezone, u.created_at, u.updated_at
		FROM teams t
		JOIN users u ON t.owner_id = u.id
		WHERE t.owner_id = $1
	`, ownerID).Scan(
		&team.ID, &team.Name, &team.OwnerID,
		&inviter.ID, &inviter.Email, &inviter.Name, &inviter.Timezone, &inviter.CreatedAt, &inviter.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotTeamOwner
	}
	if err != nil {
		return nil, err
	}

	var isMember bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM team_members tm
			JOIN users u ON tm.user_id = u.id
			WHERE tm.team_id = $1 AND LOWER(u.email) = $2
		)
	`, team.ID, email).Scan(&isMember)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	var invited bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM team_invitations
			WHERE team_id = $1 AND invited_email = $2 AND status = $3
		)
	`, team.ID, email, models.InviteStatusPending).Scan(&invited)
	if err != nil {
		return nil, err
	}
	if invited {
		return nil, ErrAlreadyInvited
	}

	var invitation models.TeamInvitation
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO team_invitations (team_id, inviter_id, invited_email, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, invited_email) DO UPDATE SET
			inviter_id = EXCLUDED.inviter_id,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, team_id, inviter_id, invited_email, status, created_at, updated_at
	`, team.ID, ownerID, email, models.InviteStatusPending).Scan(
		&invitation.ID, &invitation.TeamID, &invitation.InviterID,
		&invitation.InvitedEmail, &invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	invitation.Team = &team
	invitation.Inviter = &inviter
	return &invitation, nil
}

// PendingInvitations lists pending invitations addressed to the user's email.
// When email is empty it is resolved from the user record.
func (s *TeamService) PendingInvitations(ctx context.Context, userID uuid.UUID, email string) ([]models.TeamInvitation, error) {
	if email == "" {
		err := s.db.Pool.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}
	}
	email = strings.ToLower(strings.TrimSpace(email))

	rows, err := s.db.Pool.Query(ctx, `
		SELECT ti.id, ti.team_id, ti.inviter_id, ti.invited_email, ti.status, ti.created_at, ti.updated_at,
		       t.id, t.name, t.owner_id, t.created_at, t.updated_at,
		       u.id, u.email, u.name, u.timezone, u.created_at, u.updated_at
		FROM team_invitations ti
		JOIN teams t ON ti.team_id = t.id
		JOIN users u ON ti.inviter_id = u.id
		WHERE ti.invited_email = $1 AND ti.status = $2
		ORDER BY ti.created_at DESC
	`, email, models.InviteStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

// SentInvitations lists the invitations issued by the owner's team, filtered
// by status. A user without a team gets an empty list.
func (s *TeamService) SentInvitations(ctx context.Context, ownerID uuid.UUID, status string) ([]models.TeamInvitation, error) {
	if status == "" {
		status = models.InviteStatusPending
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT ti.id, ti.team_id, ti.inviter_id, ti.invited_email, ti.status, ti.created_at, ti.updated_at,
		       t.id, t.name, t.owner_id, t.created_at, t.updated_at,
		       u.id, u.email, u.name, u.timezone, u.created_at, u.updated_at
		FROM team_invitations ti
		JOIN teams t ON ti.team_id = t.id
		JOIN users u ON ti.inviter_id = u.id
		WHERE t.owner_id = $1 AND ti.status = $2
		ORDER BY ti.created_at DESC
	`, ownerID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func scanInvitations(rows pgx.Rows) ([]models.TeamInvitation, error) {
	invitations := []models.TeamInvitation{}
	for rows.Next() {
		var inv models.TeamInvitation
		var team models.Team
		var inviter models.User
		if err := rows.Scan(
			&inv.ID, &inv.TeamID, &inv.InviterID, &inv.InvitedEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
			&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt,
			&inviter.ID, &inviter.Email, &inviter.Name, &inviter.Timezone, &inviter.CreatedAt, &inviter.UpdatedAt,
		); err != nil {
			return nil, err
		}
		inv.Team = &team
		inv.Inviter = &inviter
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// Accept turns a pending invitation into a membership. Every other pending
// invitation addressed to the same email is rejected in the same transaction,
// since a user belongs to at most one team.
func (s *TeamService) Accept(ctx context.Context, invitationID, userID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userEmail string
	err = tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&userEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	var inv models.TeamInvitation
	err = tx.QueryRow(ctx, `
		SELECT id, team_id, invited_email, status FROM team_invitations WHERE id = $1
	`, invitationID).Scan(&inv.ID, &inv.TeamID, &inv.InvitedEmail, &inv.Status)
	if err != nil {
		return ErrInvitationNotFound
	}

	if inv.Status != models.InviteStatusPending {
		return ErrInvitationNotFound
	}
	if !strings.EqualFold(inv.InvitedEmail, userEmail) {
		return ErrInvitationNotFound
	}

	var onTeam bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_members WHERE user_id = $1)
	`, userID).Scan(&onTeam)
	if err != nil {
		return err
	}
	if onTeam {
		return ErrAlreadyOnTeam
	}

	_, err = tx.Exec(ctx, `
		UPDATE team_invitations SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.InviteStatusAccepted, invitationID)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, inv.TeamID, userID, models.RoleMember)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE team_invitations SET status = $1, updated_at = NOW()
		WHERE invited_email = $2 AND status = $3 AND id != $4
	`, models.InviteStatusRejected, inv.InvitedEmail, models.InviteStatusPending, invitationID)
	if err != nil {
		return fmt.Errorf("failed to reject other invitations: %w", err)
	}

	return tx.Commit(ctx)
}

// Reject marks a pending invitation addressed to the user as rejected.
func (s *TeamService) Reject(ctx context.Context, invitationID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE team_invitations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		AND LOWER(invited_email) = (SELECT LOWER(email) FROM users WHERE id = $4)
	`, models.InviteStatusRejected, invitationID, models.InviteStatusPending, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// RemoveMember deletes a member row by its id. The team owner may remove any
// member, and a member may remove their own row to leave the team. Owner rows
// are never deletable.
func (s *TeamService) RemoveMember(ctx context.Context, memberID, requesterID uuid.UUID) error {
	var role string
	var memberUserID, teamOwnerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT tm.role, tm.user_id, t.owner_id
		FROM team_members tm
		JOIN teams t ON tm.team_id = t.id
		WHERE tm.id = $1
	`, memberID).Scan(&role, &memberUserID, &teamOwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrMemberNotFound
	}
	if err != nil {
		return err
	}

	if requesterID != teamOwnerID && requesterID != memberUserID {
		return ErrNotTeamOwner
	}
	if role == models.RoleOwner {
		return ErrCannotRemoveOwner
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, memberID)
	return err
}
