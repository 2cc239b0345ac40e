package service

import (
	"context"
	"fmt"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository"
)

var ErrMessageNotFound = repository.ErrMessageNotFound

type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) (domain.Message, error)
	FindByID(ctx context.Context, id uint) (domain.Message, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Message, error)
	Update(ctx context.Context, message domain.Message) (domain.Message, error)
	Delete(ctx context.Context, id uint) error
}

type MessageEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type MessageGuestRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Guest, error)
}

type MessageService struct {
	repo      MessageRepository
	eventRepo MessageEventRepository
	guestRepo MessageGuestRepository
}

func NewMessageService(repo MessageRepository, eventRepo MessageEventRepository, guestRepo MessageGuestRepository) *MessageService {
	return &MessageService{
		repo:      repo,
		eventRepo: eventRepo,
		guestRepo: guestRepo,
	}
}

func (s *MessageService) CreateMessage(ctx context.Context, message domain.Message) (domain.Message, error) {
	if _, err := s.eventRepo.FindByID(ctx, message.EventID); err != nil {
		return domain.Message{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if message.Kind == "" {
		message.Kind = domain.MessageInvitation
	}

	created, err := s.repo.Create(ctx, message)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id uint) (domain.Message, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return message, nil
}

func (s *MessageService) GetMessages(ctx context.Context, eventID uint) ([]domain.Message, error) {
	messages, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return messages, nil
}

func (s *MessageService) UpdateMessage(ctx context.Context, message domain.Message) (domain.Message, error) {
	existing, err := s.repo.FindByID(ctx, message.ID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	message.EventID = existing.EventID
	if message.Kind == "" {
		message.Kind = existing.Kind
	}

	updated, err := s.repo.Update(ctx, message)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// PreviewMessage renders the template for one concrete guest of the event.
func (s *MessageService) PreviewMessage(ctx context.Context, messageID, guestID uint) (subject, body string, err error) {
	message, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return "", "", fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, message.EventID)
	if err != nil {
		return "", "", fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		return "", "", fmt.Errorf("s.guestRepo.FindByID -> %w", err)
	}
	if guest.EventID != event.ID {
		return "", "", ErrGuestNotInEvent
	}

	subject, body = message.Render(guest, event)

	return subject, body, nil
}
