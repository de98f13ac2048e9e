package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ChatHandler struct {
	chatService ChatServiceInterface
}

func NewChatHandler(chatService ChatServiceInterface) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Send(c *drift.Context) {
	var req dto.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		fail(c, 400, "userId is required")
		return
	}
	if req.Message == "" {
		fail(c, 400, "message is required")
		return
	}

	reply, err := h.chatService.Send(context.Background(), req.UserID, req.Message)
	if err != nil {
		log.Printf("failed to process chat message: %v", err)
		fail(c, 500, "failed to process message")
		return
	}

	_ = c.JSON(200, dto.ChatResponse{Envelope: ok(), Reply: toMessageDTO(reply)})
}

func (h *ChatHandler) History(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	messages, err := h.chatService.History(context.Background(), userID, limit)
	if err != nil {
		log.Printf("failed to get chat history: %v", err)
		fail(c, 500, "failed to get chat history")
		return
	}

	out := make([]dto.ChatMessage, len(messages))
	for i := range messages {
		out[i] = toMessageDTO(&messages[i])
	}

	_ = c.JSON(200, dto.ChatHistoryResponse{Envelope: ok(), Messages: out})
}

func toMessageDTO(m *models.ChatMessage) dto.ChatMessage {
	return dto.ChatMessage{
		ID:        m.ID,
		Sender:    m.Sender,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
