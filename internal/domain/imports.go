package domain

// NormalizedGuest is a canonicalized CSV import candidate. It is derived from
// one raw row by the normalizer and is never persisted as-is.
type NormalizedGuest struct {
	EventID     uint
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Company     string
	Notes       string
	Seats       int
	Status      GuestStatus
	Category    string
	TableNumber string
}

func (n NormalizedGuest) Guest() Guest {
	return Guest{
		EventID:   n.EventID,
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Email:     n.Email,
		Phone:     n.Phone,
		Company:   n.Company,
		Notes:     n.Notes,
		Seats:     n.Seats,
		Status:    n.Status,
		Metadata: GuestMetadata{
			Category:    n.Category,
			TableNumber: n.TableNumber,
		},
	}
}

type GuestImportRowError struct {
	Index  int               `json:"index"`
	Row    map[string]string `json:"row"`
	Reason string            `json:"reason"`
}

// GuestImportResult partitions one import batch into created guests and
// per-row failures, both in input order. Created+Failed equals the number of
// input rows.
type GuestImportResult struct {
	Created int                   `json:"created"`
	Failed  int                   `json:"failed"`
	Errors  []GuestImportRowError `json:"errors"`
	Guests  []Guest               `json:"guests"`
}
