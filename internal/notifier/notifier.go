// Package notifier abstracts the outbound invitation channel. The actual
// email transport lives outside this service; ConsoleNotifier is what runs
// in development and in environments without a mailer.
package notifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/secura-qr/secura-qr/internal/domain"
)

type Notifier interface {
	SendInvitation(ctx context.Context, event domain.Event, guest domain.Guest) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) SendInvitation(_ context.Context, event domain.Event, guest domain.Guest) error {
	zap.L().Info("invitation notification",
		zap.Uint("event_id", event.ID),
		zap.Uint("guest_id", guest.ID),
		zap.String("guest", guest.FullName()),
		zap.String("email", guest.Email),
	)

	return nil
}
