package dto

import (
	"time"

	"github.com/google/uuid"
)

type CalendarEvent struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Location string    `json:"location,omitempty"`
}

type CalendarAccount struct {
	ID          uuid.UUID `json:"id"`
	Provider    string    `json:"provider"`
	Email       string    `json:"email"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type EventsResponse struct {
	Envelope
	Events []CalendarEvent `json:"events"`
}

type CalendarAccountResponse struct {
	Envelope
	Account *CalendarAccount `json:"account"`
}
