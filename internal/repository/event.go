package repository

import (
	"context"
	"fmt"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventStatsDAO interface {
	AggregateByEventID(ctx context.Context, eventID uint) (dao.GuestAggregate, error)
}

type EventRepository struct {
	dao      EventDAO
	statsDAO EventStatsDAO
}

func NewEventRepository(dao EventDAO, statsDAO EventStatsDAO) *EventRepository {
	return &EventRepository{
		dao:      dao,
		statsDAO: statsDAO,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) Stats(ctx context.Context, eventID uint) (domain.EventStats, error) {
	agg, err := r.statsDAO.AggregateByEventID(ctx, eventID)
	if err != nil {
		return domain.EventStats{}, fmt.Errorf("r.statsDAO.AggregateByEventID -> %w", err)
	}

	return domain.EventStats{
		EventID:    eventID,
		Total:      agg.Total,
		Pending:    agg.Pending,
		Confirmed:  agg.Confirmed,
		Cancelled:  agg.Cancelled,
		Scanned:    agg.Scanned,
		TotalSeats: agg.TotalSeats,
	}, nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Location:    e.Location,
		Description: e.Description,
		MaxGuests:   e.MaxGuests,
		Status:      domain.EventStatus(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) domainToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Location:    e.Location,
		Description: e.Description,
		MaxGuests:   e.MaxGuests,
		Status:      string(e.Status),
	}
}
