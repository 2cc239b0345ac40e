package domain

import "time"

type EventStatus string

const (
	EventDraft    EventStatus = "draft"
	EventActive   EventStatus = "active"
	EventArchived EventStatus = "archived"
)

type Event struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	MaxGuests   int         `json:"max_guests"` // 0 means unlimited
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// EventStats aggregates guest counters for one event.
type EventStats struct {
	EventID    uint  `json:"event_id"`
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Confirmed  int64 `json:"confirmed"`
	Cancelled  int64 `json:"cancelled"`
	Scanned    int64 `json:"scanned"`
	TotalSeats int64 `json:"total_seats"`
}
