package testutil

import (
	"context"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Team, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) UpdateName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Team, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Members(ctx context.Context, userID uuid.UUID) ([]models.TeamMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamMember), args.Error(1)
}

func (m *MockTeamService) Info(ctx context.Context, userID uuid.UUID) ([]models.Team, []models.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Team), args.Get(1).([]models.Team), args.Error(2)
}

func (m *MockTeamService) Details(ctx context.Context, userID uuid.UUID) (*models.Team, *models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Team), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockTeamService) Invite(ctx context.Context, ownerID uuid.UUID, email string) (*models.TeamInvitation, error) {
	args := m.Called(ctx, ownerID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamInvitation), args.Error(1)
}

func (m *MockTeamService) PendingInvitations(ctx context.Context, userID uuid.UUID, email string) ([]models.TeamInvitation, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvitation), args.Error(1)
}

func (m *MockTeamService) SentInvitations(ctx context.Context, ownerID uuid.UUID, status string) ([]models.TeamInvitation, error) {
	args := m.Called(ctx, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvitation), args.Error(1)
}

func (m *MockTeamService) Accept(ctx context.Context, invitationID, userID uuid.UUID) error {
	args := m.Called(ctx, invitationID, userID)
	return args.Error(0)
}

func (m *MockTeamService) Reject(ctx context.Context, invitationID, userID uuid.UUID) error {
	args := m.Called(ctx, invitationID, userID)
	return args.Error(0)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, memberID, requesterID uuid.UUID) error {
	args := m.Called(ctx, memberID, requesterID)
	return args.Error(0)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, name, timezone string) (*models.User, error) {
	args := m.Called(ctx, id, name, timezone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCalendarService mocks the CalendarService
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) EventsForUser(ctx context.Context, userID uuid.UUID) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CalendarEvent), args.Error(1)
}

func (m *MockCalendarService) Account(ctx context.Context, userID uuid.UUID) (*models.CalendarAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarAccount), args.Error(1)
}

// MockChatService mocks the ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Send(ctx context.Context, userID uuid.UUID, content string) (*models.ChatMessage, error) {
	args := m.Called(ctx, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}
