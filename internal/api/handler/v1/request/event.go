package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date" format:"DD/MM/YYYY"`
	Location    string `json:"location"`
	Description string `json:"description"`
	MaxGuests   int    `json:"max_guests"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.MaxGuests, validation.Min(0)),
	)
}

type UpdateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date" format:"DD/MM/YYYY"`
	Location    string `json:"location"`
	Description string `json:"description"`
	MaxGuests   int    `json:"max_guests"`
	Status      string `json:"status"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.MaxGuests, validation.Min(0)),
		validation.Field(&req.Status, validation.In("draft", "active", "archived")),
	)
}
