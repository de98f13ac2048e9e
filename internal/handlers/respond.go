package handlers

import (
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// fail writes the protocol's failure envelope. Every error leaves through
// here so clients always find the message in the same place.
func fail(c *drift.Context, status int, msg string) {
	_ = c.JSON(status, dto.StatusResponse{
		Envelope: dto.Envelope{Success: false, Error: msg},
	})
}

func ok() dto.Envelope {
	return dto.Envelope{Success: true}
}
