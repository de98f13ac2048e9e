package handlers

import (
	"context"
	"log"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type CalendarHandler struct {
	calendarService CalendarServiceInterface
}

func NewCalendarHandler(calendarService CalendarServiceInterface) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (h *CalendarHandler) Events(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	events, err := h.calendarService.EventsForUser(context.Background(), userID)
	if err != nil {
		log.Printf("failed to get events: %v", err)
		fail(c, 500, "failed to get events")
		return
	}

	out := make([]dto.CalendarEvent, len(events))
	for i, e := range events {
		out[i] = toEventDTO(e)
	}

	_ = c.JSON(200, dto.EventsResponse{Envelope: ok(), Events: out})
}

func (h *CalendarHandler) Account(c *drift.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		fail(c, 400, "invalid user id")
		return
	}

	account, err := h.calendarService.Account(context.Background(), userID)
	if err != nil {
		log.Printf("failed to get calendar account: %v", err)
		fail(c, 500, "failed to get calendar account")
		return
	}

	resp := dto.CalendarAccountResponse{Envelope: ok()}
	if account != nil {
		resp.Account = &dto.CalendarAccount{
			ID:          account.ID,
			Provider:    account.Provider,
			Email:       account.Email,
			ConnectedAt: account.ConnectedAt,
		}
	}
	_ = c.JSON(200, resp)
}

func toEventDTO(e models.CalendarEvent) dto.CalendarEvent {
	return dto.CalendarEvent{
		ID:       e.ID,
		UserID:   e.UserID,
		Title:    e.Title,
		StartsAt: e.StartsAt,
		EndsAt:   e.EndsAt,
		Location: e.Location,
	}
}
