package repository

import (
	"context"
	"fmt"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository/dao"
)

var (
	ErrInvitationNotFound    = dao.ErrInvitationNotFound
	ErrInvitationTokenExists = dao.ErrInvitationTokenExists
)

type InvitationDAO interface {
	Insert(ctx context.Context, invitation dao.Invitation) (dao.Invitation, error)
	FindByToken(ctx context.Context, token string) (dao.Invitation, error)
	FindByGuestID(ctx context.Context, guestID uint) ([]dao.Invitation, error)
	Update(ctx context.Context, invitation dao.Invitation) (dao.Invitation, error)
}

type InvitationRepository struct {
	dao InvitationDAO
}

func NewInvitationRepository(dao InvitationDAO) *InvitationRepository {
	return &InvitationRepository{
		dao: dao,
	}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(invitation))
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (domain.Invitation, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *InvitationRepository) FindByGuest(ctx context.Context, guestID uint) ([]domain.Invitation, error) {
	found, err := r.dao.FindByGuestID(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByGuestID -> %w", err)
	}

	invitations := make([]domain.Invitation, 0, len(found))
	for _, inv := range found {
		invitations = append(invitations, r.daoToDomain(inv))
	}

	return invitations, nil
}

func (r *InvitationRepository) Update(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(invitation))
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *InvitationRepository) daoToDomain(i dao.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:        i.ID,
		EventID:   i.EventID,
		GuestID:   i.GuestID,
		Token:     i.Token,
		Status:    domain.InvitationStatus(i.Status),
		SentAt:    i.SentAt,
		OpenedAt:  i.OpenedAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (r *InvitationRepository) domainToDAO(i domain.Invitation) dao.Invitation {
	return dao.Invitation{
		ID:       i.ID,
		EventID:  i.EventID,
		GuestID:  i.GuestID,
		Token:    i.Token,
		Status:   string(i.Status),
		SentAt:   i.SentAt,
		OpenedAt: i.OpenedAt,
	}
}
