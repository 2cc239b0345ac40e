package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/secura-qr/secura-qr/internal/pkg/guestimport"
)

var errMissingGuestName = errors.New("a first name or last name is required")

type CreateGuestRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Notes       string `json:"notes"`
	Seats       int    `json:"seats"`
	Category    string `json:"category"`
	TableNumber string `json:"table_number"`
}

func (req *CreateGuestRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Length(0, 100)),
		validation.Field(&req.LastName, validation.Length(0, 100)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Match(guestimport.PhoneRegex).Error("must be a valid phone number")),
		validation.Field(&req.Company, validation.Length(0, 100)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
		validation.Field(&req.Seats, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	if req.FirstName == "" && req.LastName == "" {
		return errMissingGuestName
	}

	return nil
}

type UpdateGuestRequest struct {
	CreateGuestRequest
	Status string `json:"status"`
}

func (req *UpdateGuestRequest) Validate() error {
	if err := req.CreateGuestRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In("pending", "confirmed", "cancelled")),
	)
}

type ScanGuestRequest struct {
	Station string `json:"station"`
}

func (req *ScanGuestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Station, validation.Length(0, 100)),
	)
}
