package handlers

import (
	"context"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/google/uuid"
)

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Team, error)
	UpdateName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Team, error)
	Members(ctx context.Context, userID uuid.UUID) ([]models.TeamMember, error)
	Info(ctx context.Context, userID uuid.UUID) (owned []models.Team, member []models.Team, err error)
	Details(ctx context.Context, userID uuid.UUID) (*models.Team, *models.User, error)
	Invite(ctx context.Context, ownerID uuid.UUID, email string) (*models.TeamInvitation, error)
	PendingInvitations(ctx context.Context, userID uuid.UUID, email string) ([]models.TeamInvitation, error)
	SentInvitations(ctx context.Context, ownerID uuid.UUID, status string) ([]models.TeamInvitation, error)
	Accept(ctx context.Context, invitationID, userID uuid.UUID) error
	Reject(ctx context.Context, invitationID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, memberID, requesterID uuid.UUID) error
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, timezone string) (*models.User, error)
}

// CalendarServiceInterface defines the methods used by handlers from CalendarService
type CalendarServiceInterface interface {
	EventsForUser(ctx context.Context, userID uuid.UUID) ([]models.CalendarEvent, error)
	Account(ctx context.Context, userID uuid.UUID) (*models.CalendarAccount, error)
}

// ChatServiceInterface defines the methods used by handlers from ChatService
type ChatServiceInterface interface {
	Send(ctx context.Context, userID uuid.UUID, content string) (*models.ChatMessage, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error)
}
