package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/exportapp2024/cordelia-api/internal/database"
	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/google/uuid"
)

// assistantWindow bounds how far ahead the assistant looks when summarizing
// the calendar in a reply.
const assistantWindow = 7 * 24 * time.Hour

type ChatService struct {
	db       *database.DB
	calendar *CalendarService
}

func NewChatService(db *database.DB, calendar *CalendarService) *ChatService {
	return &ChatService{db: db, calendar: calendar}
}

// Send stores the user message, composes an assistant reply from the user's
// upcoming calendar, stores it and returns it.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, content string) (*models.ChatMessage, error) {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO chat_messages (user_id, sender, content)
		VALUES ($1, $2, $3)
	`, userID, models.SenderUser, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	upcoming, err := s.calendar.Upcoming(ctx, userID, assistantWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}

	reply := composeReply(content, upcoming)

	var msg models.ChatMessage
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO chat_messages (user_id, sender, content)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, sender, content, created_at
	`, userID, models.SenderAssistant, reply).Scan(&msg.ID, &msg.UserID, &msg.Sender, &msg.Content, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}
	return &msg, nil
}

func (s *ChatService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, sender, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func composeReply(question string, upcoming []models.CalendarEvent) string {
	lower := strings.ToLower(question)

	switch {
	case len(upcoming) == 0:
		return "Your calendar is clear for the next 7 days."
	case strings.Contains(lower, "free") || strings.Contains(lower, "available"):
		return fmt.Sprintf(
			"You have %d appointment(s) in the next 7 days; outside of those you are free. The next one is %q on %s.",
			len(upcoming), upcoming[0].Title, upcoming[0].StartsAt.Format("Mon Jan 2 15:04"),
		)
	default:
		return fmt.Sprintf(
			"You have %d appointment(s) in the next 7 days. The next one is %q on %s.",
			len(upcoming), upcoming[0].Title, upcoming[0].StartsAt.Format("Mon Jan 2 15:04"),
		)
	}
}
