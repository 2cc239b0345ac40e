package domain

import "time"

type GuestStatus string

const (
	GuestPending   GuestStatus = "pending"
	GuestConfirmed GuestStatus = "confirmed"
	GuestCancelled GuestStatus = "cancelled"
)

// MaxScanHistory bounds the per-guest scan history, newest entries first.
const MaxScanHistory = 10

type ScanRecord struct {
	ScannedAt time.Time `json:"scanned_at"`
	Station   string    `json:"station,omitempty"`
}

type GuestMetadata struct {
	Category            string `json:"category,omitempty"`
	TableNumber         string `json:"table_number,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
	InvitationSent      bool   `json:"invitation_sent"`
	Confirmed           bool   `json:"confirmed"`
}

type Guest struct {
	ID          uint          `json:"id"`
	EventID     uint          `json:"event_id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Company     string        `json:"company,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Seats       int           `json:"seats"`
	Status      GuestStatus   `json:"status"`
	Scanned     bool          `json:"scanned"`
	ScanCount   int           `json:"scan_count"`
	ScanHistory []ScanRecord  `json:"scan_history,omitempty"`
	Metadata    GuestMetadata `json:"metadata"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (g *Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	default:
		return g.FirstName + " " + g.LastName
	}
}

// RecordScan marks the guest as checked in and prepends a scan record,
// keeping at most MaxScanHistory entries.
func (g *Guest) RecordScan(at time.Time, station string) {
	g.Scanned = true
	g.ScanCount++

	history := make([]ScanRecord, 0, len(g.ScanHistory)+1)
	history = append(history, ScanRecord{ScannedAt: at, Station: station})
	history = append(history, g.ScanHistory...)
	if len(history) > MaxScanHistory {
		history = history[:MaxScanHistory]
	}
	g.ScanHistory = history
}
