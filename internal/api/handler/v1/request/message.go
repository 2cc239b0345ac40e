package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateMessageRequest struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (req *CreateMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Kind, validation.In("invitation", "reminder", "confirmation")),
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Length(0, 5000)),
	)
}

type PreviewMessageRequest struct {
	GuestID uint `json:"guest_id"`
}

func (req *PreviewMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GuestID, validation.Required, validation.Min(uint(1))),
	)
}
