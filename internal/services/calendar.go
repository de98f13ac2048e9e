package services

import (
	"context"
	"errors"
	"time"

	"github.com/exportapp2024/cordelia-api/internal/database"
	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CalendarService struct {
	db *database.DB
}

func NewCalendarService(db *database.DB) *CalendarService {
	return &CalendarService{db: db}
}

// EventsForUser lists the user's events together with the events of everyone
// on the user's team. Team membership is what grants shared calendar access.
func (s *CalendarService) EventsForUser(ctx context.Context, userID uuid.UUID) ([]models.CalendarEvent, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT e.id, e.user_id, e.title, e.starts_at, e.ends_at, e.location, e.created_at
		FROM calendar_events e
		WHERE e.user_id = $1
		   OR e.user_id IN (
			SELECT other.user_id
			FROM team_members own
			JOIN team_members other ON own.team_id = other.team_id
			WHERE own.user_id = $1
		)
		ORDER BY e.starts_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Upcoming lists the user's own events starting within the window.
func (s *CalendarService) Upcoming(ctx context.Context, userID uuid.UUID, within time.Duration) ([]models.CalendarEvent, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, title, starts_at, ends_at, location, created_at
		FROM calendar_events
		WHERE user_id = $1 AND starts_at >= NOW() AND starts_at < $2
		ORDER BY starts_at
	`, userID, time.Now().Add(within))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.StartsAt, &e.EndsAt, &e.Location, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Account returns the user's connected calendar account, or nil when no
// calendar is connected.
func (s *CalendarService) Account(ctx context.Context, userID uuid.UUID) (*models.CalendarAccount, error) {
	var account models.CalendarAccount
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, provider, email, connected_at
		FROM calendar_accounts WHERE user_id = $1
	`, userID).Scan(&account.ID, &account.UserID, &account.Provider, &account.Email, &account.ConnectedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
