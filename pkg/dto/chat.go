package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Message string    `json:"message"`
}

type ChatResponse struct {
	Envelope
	Reply ChatMessage `json:"reply"`
}

type ChatHistoryResponse struct {
	Envelope
	Messages []ChatMessage `json:"messages"`
}
