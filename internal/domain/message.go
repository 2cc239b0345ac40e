package domain

import (
	"strings"
	"time"
)

type MessageKind string

const (
	MessageInvitation   MessageKind = "invitation"
	MessageReminder     MessageKind = "reminder"
	MessageConfirmation MessageKind = "confirmation"
)

// Message is a per-event email template. Bodies may reference
// {{firstName}}, {{lastName}}, {{fullName}} and {{eventName}}.
type Message struct {
	ID        uint        `json:"id"`
	EventID   uint        `json:"event_id"`
	Kind      MessageKind `json:"kind"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Render substitutes guest and event placeholders into the subject and body.
func (m Message) Render(guest Guest, event Event) (subject, body string) {
	r := strings.NewReplacer(
		"{{firstName}}", guest.FirstName,
		"{{lastName}}", guest.LastName,
		"{{fullName}}", guest.FullName(),
		"{{eventName}}", event.Name,
	)

	return r.Replace(m.Subject), r.Replace(m.Body)
}
