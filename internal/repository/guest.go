package repository

import (
	"context"
	"fmt"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository/dao"
)

var ErrGuestNotFound = dao.ErrGuestNotFound

type GuestDAO interface {
	Insert(ctx context.Context, guest dao.Guest) (dao.Guest, error)
	FindByID(ctx context.Context, id uint) (dao.Guest, error)
	FindByEventID(ctx context.Context, eventID uint, status string) ([]dao.Guest, error)
	FindByEventIDAndEmail(ctx context.Context, eventID uint, email string) (dao.Guest, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	Update(ctx context.Context, guest dao.Guest) (dao.Guest, error)
	Delete(ctx context.Context, id uint) error
}

type GuestRepository struct {
	dao GuestDAO
}

func NewGuestRepository(dao GuestDAO) *GuestRepository {
	return &GuestRepository{
		dao: dao,
	}
}

func (r *GuestRepository) Create(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(guest))
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id uint) (domain.Guest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GuestRepository) FindByEvent(ctx context.Context, eventID uint, status domain.GuestStatus) ([]domain.Guest, error) {
	found, err := r.dao.FindByEventID(ctx, eventID, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	guests := make([]domain.Guest, 0, len(found))
	for _, g := range found {
		guests = append(guests, r.daoToDomain(g))
	}

	return guests, nil
}

func (r *GuestRepository) FindByEventAndEmail(ctx context.Context, eventID uint, email string) (domain.Guest, error) {
	found, err := r.dao.FindByEventIDAndEmail(ctx, eventID, email)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.FindByEventIDAndEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GuestRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByEventID -> %w", err)
	}

	return count, nil
}

func (r *GuestRepository) Update(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(guest))
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *GuestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GuestRepository) daoToDomain(g dao.Guest) domain.Guest {
	history := make([]domain.ScanRecord, 0, len(g.History))
	for _, e := range g.History {
		history = append(history, domain.ScanRecord{
			ScannedAt: e.ScannedAt,
			Station:   e.Station,
		})
	}

	return domain.Guest{
		ID:          g.ID,
		EventID:     g.EventID,
		FirstName:   g.FirstName,
		LastName:    g.LastName,
		Email:       g.Email,
		Phone:       g.Phone,
		Company:     g.Company,
		Notes:       g.Notes,
		Seats:       g.Seats,
		Status:      domain.GuestStatus(g.Status),
		Scanned:     g.Scanned,
		ScanCount:   g.ScanCount,
		ScanHistory: history,
		Metadata: domain.GuestMetadata{
			Category:            g.Metadata.Category,
			TableNumber:         g.Metadata.TableNumber,
			SpecialRequirements: g.Metadata.SpecialRequirements,
			InvitationSent:      g.Metadata.InvitationSent,
			Confirmed:           g.Metadata.Confirmed,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (r *GuestRepository) domainToDAO(g domain.Guest) dao.Guest {
	history := make(dao.ScanHistory, 0, len(g.ScanHistory))
	for _, e := range g.ScanHistory {
		history = append(history, dao.ScanEntry{
			ScannedAt: e.ScannedAt,
			Station:   e.Station,
		})
	}

	return dao.Guest{
		ID:        g.ID,
		EventID:   g.EventID,
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Email:     g.Email,
		Phone:     g.Phone,
		Company:   g.Company,
		Notes:     g.Notes,
		Seats:     g.Seats,
		Status:    string(g.Status),
		Scanned:   g.Scanned,
		ScanCount: g.ScanCount,
		History:   history,
		Metadata: dao.GuestMetadata{
			Category:            g.Metadata.Category,
			TableNumber:         g.Metadata.TableNumber,
			SpecialRequirements: g.Metadata.SpecialRequirements,
			InvitationSent:      g.Metadata.InvitationSent,
			Confirmed:           g.Metadata.Confirmed,
		},
	}
}
