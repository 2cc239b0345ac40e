package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository"
)

type fakeGuestRepo struct {
	guests    []domain.Guest
	nextID    uint
	createErr error
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{nextID: 1}
}

func (r *fakeGuestRepo) Create(_ context.Context, guest domain.Guest) (domain.Guest, error) {
	if r.createErr != nil {
		return domain.Guest{}, r.createErr
	}

	guest.ID = r.nextID
	r.nextID++
	r.guests = append(r.guests, guest)

	return guest, nil
}

func (r *fakeGuestRepo) FindByID(_ context.Context, id uint) (domain.Guest, error) {
	for _, g := range r.guests {
		if g.ID == id {
			return g, nil
		}
	}

	return domain.Guest{}, repository.ErrGuestNotFound
}

func (r *fakeGuestRepo) FindByEvent(_ context.Context, eventID uint, status domain.GuestStatus) ([]domain.Guest, error) {
	var found []domain.Guest
	for _, g := range r.guests {
		if g.EventID != eventID {
			continue
		}
		if status != "" && g.Status != status {
			continue
		}
		found = append(found, g)
	}

	return found, nil
}

func (r *fakeGuestRepo) FindByEventAndEmail(_ context.Context, eventID uint, email string) (domain.Guest, error) {
	for _, g := range r.guests {
		if g.EventID == eventID && strings.EqualFold(g.Email, email) {
			return g, nil
		}
	}

	return domain.Guest{}, repository.ErrGuestNotFound
}

func (r *fakeGuestRepo) CountByEvent(_ context.Context, eventID uint) (int64, error) {
	var count int64
	for _, g := range r.guests {
		if g.EventID == eventID {
			count++
		}
	}

	return count, nil
}

func (r *fakeGuestRepo) Update(_ context.Context, guest domain.Guest) (domain.Guest, error) {
	for i, g := range r.guests {
		if g.ID == guest.ID {
			r.guests[i] = guest
			return guest, nil
		}
	}

	return domain.Guest{}, repository.ErrGuestNotFound
}

func (r *fakeGuestRepo) Delete(_ context.Context, id uint) error {
	for i, g := range r.guests {
		if g.ID == id {
			r.guests = append(r.guests[:i], r.guests[i+1:]...)
			return nil
		}
	}

	return repository.ErrGuestNotFound
}

type fakeEventRepo struct {
	events map[uint]domain.Event
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type recordingNotifier struct {
	sent []uint
	err  error
}

func (n *recordingNotifier) SendInvitation(_ context.Context, _ domain.Event, guest domain.Guest) error {
	n.sent = append(n.sent, guest.ID)

	return n.err
}

func newGuestServiceForTest(maxGuests, maxBatchRows int) (*GuestService, *fakeGuestRepo, *recordingNotifier) {
	repo := newFakeGuestRepo()
	events := &fakeEventRepo{events: map[uint]domain.Event{
		1: {ID: 1, Name: "Launch Party", MaxGuests: maxGuests},
	}}
	n := &recordingNotifier{}

	return NewGuestService(repo, events, n, maxBatchRows), repo, n
}

func row(first, last, email string) map[string]string {
	return map[string]string{"firstName": first, "lastName": last, "email": email}
}

func TestImportGuests_AllRowsAccounted(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	rows := []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
		row("", "", ""), // invalid: no name
		row("Bob", "Durand", "bob@example.com"),
		row("Alice", "Again", "alice@example.com"), // duplicate email in batch
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, len(rows), result.Created+result.Failed)
	assert.Len(t, result.Guests, 2)
	assert.Len(t, result.Errors, 2)
}

func TestImportGuests_DuplicateFirstOccurrenceWins(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(0, 1000)

	rows := []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
		row("Alicia", "Martinez", "alice@example.com"),
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "duplicate in batch", result.Errors[0].Reason)

	require.Len(t, repo.guests, 1)
	assert.Equal(t, "Alice", repo.guests[0].FirstName)
}

func TestImportGuests_EmptyEmailsDedupOnName(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	rows := []map[string]string{
		row("Alice", "Martin", ""),
		row("Alice", "Martin", ""),
		row("Alice", "Durand", ""),
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "duplicate in batch", result.Errors[0].Reason)
}

func TestImportGuests_FailedRowDoesNotRegisterAsDuplicate(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	rows := []map[string]string{
		{"email": "alice@example.com"}, // no name, fails validation
		row("Alice", "Martin", "alice@example.com"),
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	// The second row must not be flagged as a duplicate of a row that was
	// never created.
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Index)
}

func TestImportGuests_SkipsPersistedEmailCheck(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(0, 1000)

	seeded, err := repo.Create(context.Background(), domain.Guest{
		EventID: 1, FirstName: "Old", Email: "alice@example.com", Status: domain.GuestPending,
	})
	require.NoError(t, err)
	require.NotZero(t, seeded.ID)

	// Bulk import only dedups within the batch; a guest already in the
	// database with the same email does not block the row.
	result, err := svc.ImportGuests(context.Background(), 1, []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
	}, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Zero(t, result.Failed)
}

func TestImportGuests_MissingEventID(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	_, err := svc.ImportGuests(context.Background(), 0, []map[string]string{row("A", "B", "")}, ImportOptions{})
	assert.ErrorIs(t, err, ErrMissingEventID)
}

func TestImportGuests_UnknownEvent(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	_, err := svc.ImportGuests(context.Background(), 99, []map[string]string{row("A", "B", "")}, ImportOptions{})
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
}

func TestImportGuests_BatchCap(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 3)

	atCap := []map[string]string{
		row("A", "1", ""),
		row("B", "2", ""),
		row("C", "3", ""),
	}
	result, err := svc.ImportGuests(context.Background(), 1, atCap, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)

	overCap := append(atCap, row("D", "4", ""))
	_, err = svc.ImportGuests(context.Background(), 1, overCap, ImportOptions{})
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestImportGuests_CapRejectsWholeBatch(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(0, 2)

	rows := []map[string]string{
		row("A", "1", ""),
		row("B", "2", ""),
		row("C", "3", ""),
	}

	_, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.ErrorIs(t, err, ErrBatchTooLarge)

	// Nothing is persisted when the batch itself is rejected.
	assert.Empty(t, repo.guests)
}

func TestImportGuests_CapacityCheckedPerRow(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(2, 1000)

	rows := []map[string]string{
		row("A", "1", "a@example.com"),
		row("B", "2", "b@example.com"),
		row("C", "3", "c@example.com"),
		row("D", "4", "d@example.com"),
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)

	// Once full, every remaining row fails the same way instead of aborting
	// the batch.
	for _, rowErr := range result.Errors {
		assert.Equal(t, ErrEventFull.Error(), rowErr.Reason)
	}
	assert.Len(t, repo.guests, 2)
}

func TestImportGuests_UnlimitedWhenNoMaxGuests(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	var rows []map[string]string
	for i := 0; i < 50; i++ {
		rows = append(rows, row("Guest", fmt.Sprintf("N%d", i), ""))
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 50, result.Created)
	assert.Zero(t, result.Failed)
}

func TestImportGuests_DeterministicRetry(t *testing.T) {
	rows := []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
		{"firstName": "Bad", "lastName": "Phone", "phone": "abc"},
		row("Alicia", "Martinez", "alice@example.com"),
		row("Bob", "Durand", ""),
	}

	first, _, _ := newGuestServiceForTest(0, 1000)
	resultA, err := first.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	second, _, _ := newGuestServiceForTest(0, 1000)
	resultB, err := second.ImportGuests(context.Background(), 1, rows, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, resultA.Created, resultB.Created)
	assert.Equal(t, resultA.Failed, resultB.Failed)
	assert.Equal(t, resultA.Errors, resultB.Errors)
}

func TestImportGuests_RowDefaults(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(0, 1000)

	result, err := svc.ImportGuests(context.Background(), 1, []map[string]string{
		{"firstName": "Alice", "email": "ALICE@Example.COM"},
	}, ImportOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	created := repo.guests[0]
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, 1, created.Seats)
	assert.Equal(t, domain.GuestPending, created.Status)
}

func TestImportGuests_SendInvitations(t *testing.T) {
	svc, _, n := newGuestServiceForTest(0, 1000)

	rows := []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
		row("", "", ""), // fails, no invitation
		row("Bob", "Durand", "bob@example.com"),
	}

	result, err := svc.ImportGuests(context.Background(), 1, rows, ImportOptions{SendInvitations: true})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Len(t, n.sent, 2)
}

func TestImportGuests_NotifierFailureDoesNotFailRow(t *testing.T) {
	svc, _, n := newGuestServiceForTest(0, 1000)
	n.err = errors.New("smtp down")

	result, err := svc.ImportGuests(context.Background(), 1, []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
	}, ImportOptions{SendInvitations: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Zero(t, result.Failed)
}

func TestImportGuests_NoInvitationsByDefault(t *testing.T) {
	svc, _, n := newGuestServiceForTest(0, 1000)

	_, err := svc.ImportGuests(context.Background(), 1, []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
	}, ImportOptions{})
	require.NoError(t, err)

	assert.Empty(t, n.sent)
}

func TestImportGuestsCSV(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	csvFile := "prénom,nom,email\nAlice,Martin,alice@example.com\nBob,Durand,\n"

	result, err := svc.ImportGuestsCSV(context.Background(), 1, strings.NewReader(csvFile), ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Zero(t, result.Failed)
}

func TestImportGuestsCSV_MixedFailureReasons(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(0, 1000)

	csvFile := "\uFEFFfirstName,lastName,email\n" +
		"Alice,Martin,alice@example.com\n" +
		"Alicia,Martinez,alice@example.com\n" +
		",,\n"

	result, err := svc.ImportGuestsCSV(context.Background(), 1, strings.NewReader(csvFile), ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "duplicate in batch", result.Errors[0].Reason)
	assert.Equal(t, 2, result.Errors[1].Index)
	assert.Contains(t, result.Errors[1].Reason, "first name or last name is required")

	require.Len(t, repo.guests, 1)
	assert.Equal(t, "Alice", repo.guests[0].FirstName)
}

func TestExportGuestsCSV_RoundTrip(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	_, err := svc.ImportGuests(context.Background(), 1, []map[string]string{
		row("Alice", "Martin", "alice@example.com"),
		row("Bob", "Durand", ""),
	}, ImportOptions{})
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, svc.ExportGuestsCSV(context.Background(), 1, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "firstName,lastName,email,phone,company,notes,seats,status,category,tableNumber", lines[0])
	assert.Contains(t, lines[1], "Alice,Martin,alice@example.com")

	// The exported file imports back cleanly into another event's service.
	fresh, _, _ := newGuestServiceForTest(0, 1000)
	result, err := fresh.ImportGuestsCSV(context.Background(), 1, strings.NewReader(buf.String()), ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
}

func TestCreateGuest_EnforcesEmailUniqueness(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	_, err := svc.CreateGuest(context.Background(), domain.Guest{
		EventID: 1, FirstName: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateGuest(context.Background(), domain.Guest{
		EventID: 1, FirstName: "Alicia", Email: "Alice@Example.com",
	})
	assert.ErrorIs(t, err, ErrGuestEmailExists)
}

func TestCreateGuest_EmptyEmailsMayRepeat(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	_, err := svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Alice"})
	require.NoError(t, err)

	_, err = svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Bob"})
	assert.NoError(t, err)
}

func TestCreateGuest_Capacity(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(1, 1000)

	_, err := svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Alice"})
	require.NoError(t, err)

	_, err = svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Bob"})
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestUpdateGuest_PreservesEventAndScanState(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest(0, 1000)

	created, err := svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Alice"})
	require.NoError(t, err)

	scanned, _, err := svc.ScanGuest(context.Background(), created.ID, "gate-1")
	require.NoError(t, err)
	require.True(t, scanned.Scanned)

	updated, err := svc.UpdateGuest(context.Background(), domain.Guest{
		ID:        created.ID,
		EventID:   42, // must be ignored
		FirstName: "Alicia",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), updated.EventID)
	assert.True(t, updated.Scanned)
	assert.Equal(t, 1, updated.ScanCount)
	assert.Equal(t, "Alicia", repo.guests[0].FirstName)
}

func TestScanGuest_ReportsAlreadyScanned(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	created, err := svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Alice"})
	require.NoError(t, err)

	_, already, err := svc.ScanGuest(context.Background(), created.ID, "gate-1")
	require.NoError(t, err)
	assert.False(t, already)

	guest, already, err := svc.ScanGuest(context.Background(), created.ID, "gate-2")
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, 2, guest.ScanCount)
	require.Len(t, guest.ScanHistory, 2)
	assert.Equal(t, "gate-2", guest.ScanHistory[0].Station)
}

func TestConfirmAndCancelGuest(t *testing.T) {
	svc, _, _ := newGuestServiceForTest(0, 1000)

	created, err := svc.CreateGuest(context.Background(), domain.Guest{EventID: 1, FirstName: "Alice"})
	require.NoError(t, err)

	confirmed, err := svc.ConfirmGuest(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GuestConfirmed, confirmed.Status)
	assert.True(t, confirmed.Metadata.Confirmed)

	cancelled, err := svc.CancelGuest(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GuestCancelled, cancelled.Status)
	assert.False(t, cancelled.Metadata.Confirmed)
}
