package repository

import (
	"context"
	"fmt"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository/dao"
)

var ErrMessageNotFound = dao.ErrMessageNotFound

type MessageDAO interface {
	Insert(ctx context.Context, message dao.Message) (dao.Message, error)
	FindByID(ctx context.Context, id uint) (dao.Message, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Message, error)
	Update(ctx context.Context, message dao.Message) (dao.Message, error)
	Delete(ctx context.Context, id uint) error
}

type MessageRepository struct {
	dao MessageDAO
}

func NewMessageRepository(dao MessageDAO) *MessageRepository {
	return &MessageRepository{
		dao: dao,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message domain.Message) (domain.Message, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(message))
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uint) (domain.Message, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MessageRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Message, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	messages := make([]domain.Message, 0, len(found))
	for _, m := range found {
		messages = append(messages, r.daoToDomain(m))
	}

	return messages, nil
}

func (r *MessageRepository) Update(ctx context.Context, message domain.Message) (domain.Message, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(message))
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MessageRepository) daoToDomain(m dao.Message) domain.Message {
	return domain.Message{
		ID:        m.ID,
		EventID:   m.EventID,
		Kind:      domain.MessageKind(m.Kind),
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *MessageRepository) domainToDAO(m domain.Message) dao.Message {
	return dao.Message{
		ID:      m.ID,
		EventID: m.EventID,
		Kind:    string(m.Kind),
		Subject: m.Subject,
		Body:    m.Body,
	}
}
