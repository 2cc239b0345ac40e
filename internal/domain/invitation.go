package domain

import "time"

type InvitationStatus string

const (
	InvitationCreated InvitationStatus = "created"
	InvitationSent    InvitationStatus = "sent"
	InvitationOpened  InvitationStatus = "opened"
)

type Invitation struct {
	ID        uint             `json:"id"`
	EventID   uint             `json:"event_id"`
	GuestID   uint             `json:"guest_id"`
	Token     string           `json:"token"`
	Status    InvitationStatus `json:"status"`
	SentAt    *time.Time       `json:"sent_at,omitempty"`
	OpenedAt  *time.Time       `json:"opened_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
