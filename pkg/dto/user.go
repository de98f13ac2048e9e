package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type UserResponse struct {
	Envelope
	User UserProfile `json:"user"`
}
