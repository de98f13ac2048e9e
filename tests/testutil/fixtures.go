package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/exportapp2024/cordelia-api/internal/database"
	"github.com/exportapp2024/cordelia-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Timezone: "UTC",
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, timezone)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, timezone, created_at, updated_at
	`, user.Email, user.Name, user.Timezone).Scan(
		&user.ID, &user.Email, &user.Name, &user.Timezone, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithTimezone sets the user's timezone
func WithTimezone(tz string) UserOption {
	return func(u *models.User) {
		u.Timezone = tz
	}
}

// CreateTeam creates a test team with the given owner
func (f *Fixtures) CreateTeam(t *testing.T, owner *models.User, opts ...TeamOption) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name:    fmt.Sprintf("Test Team %d", f.counter),
		OwnerID: owner.ID,
	}

	for _, opt := range opts {
		opt(team)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, team.Name, team.OwnerID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, owner.ID, models.RoleOwner)
	if err != nil {
		t.Fatalf("failed to add owner as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return team
}

// TeamOption configures a test team
type TeamOption func(*models.Team)

// WithTeamName sets the team's name
func WithTeamName(name string) TeamOption {
	return func(t *models.Team) {
		t.Name = name
	}
}

// AddTeamMember adds a member to a team
func (f *Fixtures) AddTeamMember(t *testing.T, team *models.Team, user *models.User) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, team.ID, user.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("failed to add team member: %v", err)
	}
}

// CreateInvitation creates a pending invitation from the team to an email
func (f *Fixtures) CreateInvitation(t *testing.T, team *models.Team, inviter *models.User, email string) *models.TeamInvitation {
	t.Helper()
	ctx := context.Background()

	inv := &models.TeamInvitation{
		TeamID:       team.ID,
		InviterID:    inviter.ID,
		InvitedEmail: email,
		Status:       models.InviteStatusPending,
	}

	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO team_invitations (team_id, inviter_id, invited_email, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, team_id, inviter_id, invited_email, status, created_at, updated_at
	`, inv.TeamID, inv.InviterID, inv.InvitedEmail, inv.Status).Scan(
		&inv.ID, &inv.TeamID, &inv.InviterID, &inv.InvitedEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create invitation: %v", err)
	}

	return inv
}

// CreateEvent creates a calendar event for the user
func (f *Fixtures) CreateEvent(t *testing.T, user *models.User, title string, startsAt time.Time) *models.CalendarEvent {
	t.Helper()
	ctx := context.Background()

	event := &models.CalendarEvent{
		UserID:   user.ID,
		Title:    title,
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(time.Hour),
	}

	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO calendar_events (user_id, title, starts_at, ends_at, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, starts_at, ends_at, location, created_at
	`, event.UserID, event.Title, event.StartsAt, event.EndsAt, event.Location).Scan(
		&event.ID, &event.UserID, &event.Title, &event.StartsAt, &event.EndsAt, &event.Location, &event.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	return event
}

// ConnectCalendar records a connected calendar account for the user
func (f *Fixtures) ConnectCalendar(t *testing.T, user *models.User, provider string) *models.CalendarAccount {
	t.Helper()
	ctx := context.Background()

	account := &models.CalendarAccount{
		UserID:   user.ID,
		Provider: provider,
		Email:    user.Email,
	}

	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO calendar_accounts (user_id, provider, email)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, provider, email, connected_at
	`, account.UserID, account.Provider, account.Email).Scan(
		&account.ID, &account.UserID, &account.Provider, &account.Email, &account.ConnectedAt,
	)
	if err != nil {
		t.Fatalf("failed to connect calendar: %v", err)
	}

	return account
}
