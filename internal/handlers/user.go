package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/internal/services"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Get(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, 404, "user not found")
			return
		}
		log.Printf("failed to get user: %v", err)
		fail(c, 500, "failed to get user")
		return
	}

	_ = c.JSON(200, dto.UserResponse{Envelope: ok(), User: toProfileDTO(user)})
}

func (h *UserHandler) Update(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(context.Background(), userID, req.Name, req.Timezone)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, 404, "user not found")
			return
		}
		log.Printf("failed to update user: %v", err)
		fail(c, 500, "failed to update user")
		return
	}

	_ = c.JSON(200, dto.UserResponse{Envelope: ok(), User: toProfileDTO(user)})
}

func toProfileDTO(u *models.User) dto.UserProfile {
	return dto.UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}
