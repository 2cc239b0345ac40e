package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository"
)

type fakeFullEventRepo struct {
	events map[uint]domain.Event
	stats  map[uint]domain.EventStats
	nextID uint
}

func newFakeFullEventRepo() *fakeFullEventRepo {
	return &fakeFullEventRepo{
		events: map[uint]domain.Event{},
		stats:  map[uint]domain.EventStats{},
		nextID: 1,
	}
}

func (r *fakeFullEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event

	return event, nil
}

func (r *fakeFullEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (r *fakeFullEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range r.events {
		events = append(events, event)
	}

	return events, nil
}

func (r *fakeFullEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	r.events[event.ID] = event

	return event, nil
}

func (r *fakeFullEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(r.events, id)

	return nil
}

func (r *fakeFullEventRepo) Stats(_ context.Context, eventID uint) (domain.EventStats, error) {
	return r.stats[eventID], nil
}

func TestCreateEvent_Defaults(t *testing.T) {
	svc := NewEventService(newFakeFullEventRepo())

	created, err := svc.CreateEvent(context.Background(), domain.Event{Name: "Launch Party"})
	require.NoError(t, err)

	assert.Equal(t, domain.EventDraft, created.Status)
	assert.Zero(t, created.MaxGuests)
}

func TestCreateEvent_NegativeMaxGuestsMeansUnlimited(t *testing.T) {
	svc := NewEventService(newFakeFullEventRepo())

	created, err := svc.CreateEvent(context.Background(), domain.Event{Name: "x", MaxGuests: -5})
	require.NoError(t, err)

	assert.Zero(t, created.MaxGuests)
}

func TestUpdateEvent_KeepsStatusWhenOmitted(t *testing.T) {
	repo := newFakeFullEventRepo()
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Name: "x", Status: domain.EventActive,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEvent(context.Background(), domain.Event{
		ID:   created.ID,
		Name: "renamed",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EventActive, updated.Status)
	assert.Equal(t, "renamed", updated.Name)
}

func TestUpdateEvent_Unknown(t *testing.T) {
	svc := NewEventService(newFakeFullEventRepo())

	_, err := svc.UpdateEvent(context.Background(), domain.Event{ID: 99})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetEventStats(t *testing.T) {
	repo := newFakeFullEventRepo()
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), domain.Event{Name: "x"})
	require.NoError(t, err)

	repo.stats[created.ID] = domain.EventStats{
		EventID:    created.ID,
		Total:      10,
		Confirmed:  4,
		Scanned:    3,
		TotalSeats: 17,
	}

	stats, err := svc.GetEventStats(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(4), stats.Confirmed)
	assert.Equal(t, int64(3), stats.Scanned)
	assert.Equal(t, int64(17), stats.TotalSeats)
}

func TestGetEventStats_UnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeFullEventRepo())

	_, err := svc.GetEventStats(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
