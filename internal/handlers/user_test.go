package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/internal/services"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/exportapp2024/cordelia-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserTest(t *testing.T) (*testutil.MockUserService, http.Handler) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/calendar/user/:userId", handler.Get)
	app.Put("/calendar/user/:userId", handler.Update)

	return mockUserService, app
}

func TestUserHandler_Get_Success(t *testing.T) {
	mockUserService, app := setupUserTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:        userID,
		Email:     "user@example.com",
		Name:      "User",
		Timezone:  "Europe/Belgrade",
		CreatedAt: time.Now(),
	}

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/calendar/user/"+userID.String(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, "user@example.com", response.User.Email)
	assert.Equal(t, "Europe/Belgrade", response.User.Timezone)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	mockUserService, app := setupUserTest(t)

	userID := uuid.New()
	mockUserService.On("GetByID", mock.Anything, userID).Return(nil, services.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/calendar/user/"+userID.String(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_Update_Success(t *testing.T) {
	mockUserService, app := setupUserTest(t)

	userID := uuid.New()
	updated := &models.User{
		ID:       userID,
		Email:    "user@example.com",
		Name:     "New Name",
		Timezone: "UTC",
	}

	mockUserService.On("UpdateProfile", mock.Anything, userID, "New Name", "").Return(updated, nil)

	body := dto.UpdateProfileRequest{Name: "New Name"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPut, "/calendar/user/"+userID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "New Name", response.User.Name)

	mockUserService.AssertExpectations(t)
}
