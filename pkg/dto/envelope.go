package dto

// Envelope is the response wrapper every endpoint uses. Payload-carrying
// responses embed it so the fields marshal flat.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (e Envelope) Status() (bool, string) {
	return e.Success, e.Error
}

// StatusResponse is the bare envelope for endpoints with no payload.
type StatusResponse struct {
	Envelope
}
