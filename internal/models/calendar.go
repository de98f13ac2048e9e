package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarAccount records a connected external calendar. Token exchange
// happens outside this service; only the connection itself is stored.
type CalendarAccount struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Provider    string    `json:"provider"`
	Email       string    `json:"email"`
	ConnectedAt time.Time `json:"connected_at"`
}

type CalendarEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
