package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/exportapp2024/cordelia-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCalendarTest(t *testing.T) (*testutil.MockCalendarService, http.Handler) {
	t.Helper()
	mockCalendarService := new(testutil.MockCalendarService)
	handler := NewCalendarHandler(mockCalendarService)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/calendar/events/:userId", handler.Events)
	app.Get("/calendar/account/:userId", handler.Account)

	return mockCalendarService, app
}

func TestCalendarHandler_Events_Success(t *testing.T) {
	mockCalendarService, app := setupCalendarTest(t)

	userID := uuid.New()
	events := []models.CalendarEvent{
		{
			ID:       uuid.New(),
			UserID:   userID,
			Title:    "Checkup",
			StartsAt: time.Now().Add(24 * time.Hour),
			EndsAt:   time.Now().Add(25 * time.Hour),
		},
	}

	mockCalendarService.On("EventsForUser", mock.Anything, userID).Return(events, nil)

	req := httptest.NewRequest(http.MethodGet, "/calendar/events/"+userID.String(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.EventsResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	require.Len(t, response.Events, 1)
	assert.Equal(t, "Checkup", response.Events[0].Title)

	mockCalendarService.AssertExpectations(t)
}

func TestCalendarHandler_Account_NotConnected(t *testing.T) {
	mockCalendarService, app := setupCalendarTest(t)

	userID := uuid.New()
	mockCalendarService.On("Account", mock.Anything, userID).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/calendar/account/"+userID.String(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.CalendarAccountResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Nil(t, response.Account)

	mockCalendarService.AssertExpectations(t)
}
