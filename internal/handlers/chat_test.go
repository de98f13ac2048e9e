package handlers

import (
	"bytes"
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

func setupChatTest(t *testing.T) (*testutil.MockChatService, http.Handler) {
	t.Helper()
	mockChatService := new(testutil.MockChatService)
	handler := NewChatHandler(mockChatService)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/calendar/chat", handler.Send)
	app.Get("/calendar/chat/history/:userId", handler.History)

	return mockChatService, app
}

func TestChatHandler_Send_Success(t *testing.T) {
	mockChatService, app := setupChatTest(t)

	userID := uuid.New()
	reply := &models.ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Sender:    models.SenderAssistant,
		Content:   "Your calendar is clear for the next 7 days.",
		CreatedAt: time.Now(),
	}

	mockChatService.On("Send", mock.Anything, userID, "Am I free this week?").Return(reply, nil)

	body := dto.ChatRequest{UserID: userID, Message: "Am I free this week?"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/calendar/chat", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ChatResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, models.SenderAssistant, response.Reply.Sender)
	assert.Contains(t, response.Reply.Content, "calendar is clear")

	mockChatService.AssertExpectations(t)
}

func TestChatHandler_Send_EmptyMessage(t *testing.T) {
	_, app := setupChatTest(t)

	body := dto.ChatRequest{UserID: uuid.New(), Message: ""}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/calendar/chat", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message is required")
}

func TestChatHandler_History_LimitParam(t *testing.T) {
	mockChatService, app := setupChatTest(t)

	userID := uuid.New()
	messages := []models.ChatMessage{
		{ID: uuid.New(), UserID: userID, Sender: models.SenderUser, Content: "hi"},
		{ID: uuid.New(), UserID: userID, Sender: models.SenderAssistant, Content: "hello"},
	}

	mockChatService.On("History", mock.Anything, userID, 10).Return(messages, nil)

	req := httptest.NewRequest(http.MethodGet, "/calendar/chat/history/"+userID.String()+"?limit=10", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ChatHistoryResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Messages, 2)
	assert.Equal(t, models.SenderUser, response.Messages[0].Sender)

	mockChatService.AssertExpectations(t)
}
