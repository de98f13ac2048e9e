package services

import (
	"context"
	"testing"
	"time"

	"github.com/exportapp2024/cordelia-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCalendarService(t *testing.T) (*CalendarService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewCalendarService(db), mock
}

func TestCalendarService_EventsForUser(t *testing.T) {
	svc, mock := setupCalendarService(t)
	ctx := context.Background()
	userID := uuid.New()
	teammateID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "starts_at", "ends_at", "location", "created_at"}).
		AddRow(uuid.New(), userID, "Checkup", now.Add(time.Hour), now.Add(2*time.Hour), "Room 2", now).
		AddRow(uuid.New(), teammateID, "Follow-up", now.Add(3*time.Hour), now.Add(4*time.Hour), "Room 1", now)
	mock.ExpectQuery(`FROM calendar_events e`).
		WithArgs(userID).
		WillReturnRows(rows)

	events, err := svc.EventsForUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Checkup", events[0].Title)
	assert.Equal(t, teammateID, events[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarService_EventsForUser_Empty(t *testing.T) {
	svc, mock := setupCalendarService(t)
	ctx := context.Background()
	userID := uuid.New()

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "starts_at", "ends_at", "location", "created_at"})
	mock.ExpectQuery(`FROM calendar_events e`).
		WithArgs(userID).
		WillReturnRows(rows)

	events, err := svc.EventsForUser(ctx, userID)

	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarService_Upcoming(t *testing.T) {
	svc, mock := setupCalendarService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "starts_at", "ends_at", "location", "created_at"}).
		AddRow(uuid.New(), userID, "Dental cleaning", now.Add(24*time.Hour), now.Add(25*time.Hour), "", now)
	mock.ExpectQuery(`FROM calendar_events.+WHERE user_id`).
		WithArgs(userID, pgxmock.AnyArg()).
		WillReturnRows(rows)

	events, err := svc.Upcoming(ctx, userID, 7*24*time.Hour)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Dental cleaning", events[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarService_Account(t *testing.T) {
	svc, mock := setupCalendarService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "user_id", "provider", "email", "connected_at"}).
		AddRow(uuid.New(), userID, "google", "user@example.com", now)
	mock.ExpectQuery(`FROM calendar_accounts WHERE user_id`).
		WithArgs(userID).
		WillReturnRows(rows)

	account, err := svc.Account(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "google", account.Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarService_Account_NotConnected(t *testing.T) {
	svc, mock := setupCalendarService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`FROM calendar_accounts WHERE user_id`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	account, err := svc.Account(ctx, userID)

	require.NoError(t, err)
	assert.Nil(t, account)
	assert.NoError(t, mock.ExpectationsWereMet())
}
