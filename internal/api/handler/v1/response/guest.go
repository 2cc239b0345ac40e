package response

import "github.com/secura-qr/secura-qr/internal/domain"

type ImportGuestsResponse struct {
	Created int                          `json:"created"`
	Failed  int                          `json:"failed"`
	Errors  []domain.GuestImportRowError `json:"errors"`
	Guests  []domain.Guest               `json:"guests"`
}

type ScanGuestResponse struct {
	Guest          domain.Guest `json:"guest"`
	AlreadyScanned bool         `json:"already_scanned"`
}

type MessagePreviewResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
