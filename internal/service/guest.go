package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/notifier"
	"github.com/secura-qr/secura-qr/internal/pkg/guestimport"
	"github.com/secura-qr/secura-qr/internal/repository"
)

var (
	ErrGuestNotFound    = repository.ErrGuestNotFound
	ErrGuestEmailExists = errors.New("a guest with this email already exists in the event")
	ErrEventFull        = errors.New("event guest limit reached")
	ErrBatchTooLarge    = errors.New("import batch exceeds the maximum number of rows")
	ErrMissingEventID   = errors.New("event id is required")
)

const duplicateInBatchReason = "duplicate in batch"

type GuestRepository interface {
	Create(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	FindByID(ctx context.Context, id uint) (domain.Guest, error)
	FindByEvent(ctx context.Context, eventID uint, status domain.GuestStatus) ([]domain.Guest, error)
	FindByEventAndEmail(ctx context.Context, eventID uint, email string) (domain.Guest, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	Update(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	Delete(ctx context.Context, id uint) error
}

type GuestEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// ImportOptions controls optional post-import behavior. Invitations are only
// sent when the caller explicitly asks for them.
type ImportOptions struct {
	SendInvitations bool
}

type GuestService struct {
	repo         GuestRepository
	eventRepo    GuestEventRepository
	notifier     notifier.Notifier
	maxBatchRows int
}

func NewGuestService(repo GuestRepository, eventRepo GuestEventRepository, n notifier.Notifier, maxBatchRows int) *GuestService {
	return &GuestService{
		repo:         repo,
		eventRepo:    eventRepo,
		notifier:     n,
		maxBatchRows: maxBatchRows,
	}
}

// CreateGuest is the single-guest path: unlike bulk import it checks email
// uniqueness against already persisted guests of the event.
func (s *GuestService) CreateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	event, err := s.eventRepo.FindByID(ctx, guest.EventID)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	guest.Email = strings.ToLower(strings.TrimSpace(guest.Email))
	if guest.Email != "" {
		if err = s.checkEmailUniquenessInEvent(ctx, guest.EventID, guest.Email); err != nil {
			return domain.Guest{}, err
		}
	}

	if err = s.checkCapacity(ctx, event); err != nil {
		return domain.Guest{}, err
	}

	if guest.Seats < 1 {
		guest.Seats = 1
	}
	if guest.Status == "" {
		guest.Status = domain.GuestPending
	}

	created, err := s.repo.Create(ctx, guest)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *GuestService) GetGuest(ctx context.Context, id uint) (domain.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return guest, nil
}

func (s *GuestService) ListGuests(ctx context.Context, eventID uint, status domain.GuestStatus) ([]domain.Guest, error) {
	guests, err := s.repo.FindByEvent(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return guests, nil
}

func (s *GuestService) UpdateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	existing, err := s.repo.FindByID(ctx, guest.ID)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Guests cannot move between events; scan state is owned by ScanGuest.
	guest.EventID = existing.EventID
	guest.Scanned = existing.Scanned
	guest.ScanCount = existing.ScanCount
	guest.ScanHistory = existing.ScanHistory
	if guest.Seats < 1 {
		guest.Seats = 1
	}

	updated, err := s.repo.Update(ctx, guest)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *GuestService) DeleteGuest(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *GuestService) ConfirmGuest(ctx context.Context, id uint) (domain.Guest, error) {
	return s.setStatus(ctx, id, domain.GuestConfirmed)
}

func (s *GuestService) CancelGuest(ctx context.Context, id uint) (domain.Guest, error) {
	return s.setStatus(ctx, id, domain.GuestCancelled)
}

func (s *GuestService) setStatus(ctx context.Context, id uint, status domain.GuestStatus) (domain.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	guest.Status = status
	guest.Metadata.Confirmed = status == domain.GuestConfirmed

	updated, err := s.repo.Update(ctx, guest)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// ScanGuest records a check-in scan. The returned bool reports whether the
// guest had already been scanned before this call.
func (s *GuestService) ScanGuest(ctx context.Context, id uint, station string) (domain.Guest, bool, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	alreadyScanned := guest.Scanned
	guest.RecordScan(time.Now().UTC(), station)

	updated, err := s.repo.Update(ctx, guest)
	if err != nil {
		return domain.Guest{}, false, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, alreadyScanned, nil
}

// ImportGuests runs the bulk import reconciliation flow: normalize each row,
// reject intra-batch duplicates, validate, re-check the event capacity and
// persist. Rows are processed strictly in input order and one row's failure
// never aborts the batch; only a missing event id, an unknown event or an
// oversized batch are reported as errors to the caller.
func (s *GuestService) ImportGuests(ctx context.Context, eventID uint, rows []map[string]string, opts ImportOptions) (domain.GuestImportResult, error) {
	var result domain.GuestImportResult

	if eventID == 0 {
		return result, ErrMissingEventID
	}
	if s.maxBatchRows > 0 && len(rows) > s.maxBatchRows {
		return result, fmt.Errorf("%w: %d rows, maximum is %d", ErrBatchTooLarge, len(rows), s.maxBatchRows)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return result, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	dedup := guestimport.NewDedup()

	for index, raw := range rows {
		candidate := guestimport.Normalize(eventID, raw)

		if dedup.IsDuplicate(candidate) {
			result.Failed++
			result.Errors = append(result.Errors, domain.GuestImportRowError{
				Index:  index,
				Row:    raw,
				Reason: duplicateInBatchReason,
			})
			continue
		}

		if messages := guestimport.ValidateRow(candidate); len(messages) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, domain.GuestImportRowError{
				Index:  index,
				Row:    raw,
				Reason: strings.Join(messages, "; "),
			})
			continue
		}

		// The limit is re-evaluated against the live count for every row, so
		// once the event is full every remaining row fails the same way.
		if err := s.checkCapacity(ctx, event); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.GuestImportRowError{
				Index:  index,
				Row:    raw,
				Reason: err.Error(),
			})
			continue
		}

		created, err := s.repo.Create(ctx, candidate.Guest())
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.GuestImportRowError{
				Index:  index,
				Row:    raw,
				Reason: err.Error(),
			})
			continue
		}

		dedup.Register(candidate)
		result.Created++
		result.Guests = append(result.Guests, created)

		if opts.SendInvitations && s.notifier != nil {
			if err := s.notifier.SendInvitation(ctx, event, created); err != nil {
				// The guest is already persisted; a notification failure
				// must not fail the row.
				zap.L().Warn("failed to send invitation",
					zap.Uint("guest_id", created.ID),
					zap.Error(err),
				)
			}
		}
	}

	return result, nil
}

// ImportGuestsCSV parses a CSV stream and feeds it through ImportGuests.
func (s *GuestService) ImportGuestsCSV(ctx context.Context, eventID uint, r io.Reader, opts ImportOptions) (domain.GuestImportResult, error) {
	rows, err := guestimport.ParseCSV(r)
	if err != nil {
		return domain.GuestImportResult{}, fmt.Errorf("guestimport.ParseCSV -> %w", err)
	}

	return s.ImportGuests(ctx, eventID, rows, opts)
}

// exportHeader uses the canonical English headers, which the importer accepts
// back unchanged.
var exportHeader = []string{
	"firstName", "lastName", "email", "phone", "company",
	"notes", "seats", "status", "category", "tableNumber",
}

// ExportGuestsCSV writes the event's guests as CSV to w.
func (s *GuestService) ExportGuestsCSV(ctx context.Context, eventID uint, w io.Writer) error {
	guests, err := s.repo.FindByEvent(ctx, eventID, "")
	if err != nil {
		return fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write header -> %w", err)
	}

	for _, g := range guests {
		record := []string{
			g.FirstName, g.LastName, g.Email, g.Phone, g.Company,
			g.Notes, strconv.Itoa(g.Seats), string(g.Status),
			g.Metadata.Category, g.Metadata.TableNumber,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write guest %d -> %w", g.ID, err)
		}
	}

	writer.Flush()

	return writer.Error()
}

func (s *GuestService) checkEmailUniquenessInEvent(ctx context.Context, eventID uint, email string) error {
	_, err := s.repo.FindByEventAndEmail(ctx, eventID, email)
	if err == nil {
		return ErrGuestEmailExists
	}
	if !errors.Is(err, repository.ErrGuestNotFound) {
		return fmt.Errorf("s.repo.FindByEventAndEmail -> %w", err)
	}

	return nil
}

func (s *GuestService) checkCapacity(ctx context.Context, event domain.Event) error {
	if event.MaxGuests <= 0 {
		return nil
	}

	count, err := s.repo.CountByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("s.repo.CountByEvent -> %w", err)
	}
	if count >= int64(event.MaxGuests) {
		return ErrEventFull
	}

	return nil
}
