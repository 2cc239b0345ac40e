package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository"
)

var (
	ErrInvitationNotFound = repository.ErrInvitationNotFound
	ErrGuestNotInEvent    = errors.New("guest does not belong to this event")
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error)
	FindByToken(ctx context.Context, token string) (domain.Invitation, error)
	FindByGuest(ctx context.Context, guestID uint) ([]domain.Invitation, error)
	Update(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error)
}

type InvitationGuestRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Guest, error)
	Update(ctx context.Context, guest domain.Guest) (domain.Guest, error)
}

type InvitationService struct {
	repo      InvitationRepository
	guestRepo InvitationGuestRepository
	baseURL   string
}

func NewInvitationService(repo InvitationRepository, guestRepo InvitationGuestRepository, baseURL string) *InvitationService {
	return &InvitationService{
		repo:      repo,
		guestRepo: guestRepo,
		baseURL:   baseURL,
	}
}

// CreateInvitation issues a new invitation token for a guest and flags the
// guest as invited.
func (s *InvitationService) CreateInvitation(ctx context.Context, guestID uint) (domain.Invitation, error) {
	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.guestRepo.FindByID -> %w", err)
	}

	invitation := domain.Invitation{
		EventID: guest.EventID,
		GuestID: guest.ID,
		Token:   uuid.NewString(),
		Status:  domain.InvitationCreated,
	}

	created, err := s.repo.Create(ctx, invitation)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if !guest.Metadata.InvitationSent {
		guest.Metadata.InvitationSent = true
		if _, err = s.guestRepo.Update(ctx, guest); err != nil {
			return domain.Invitation{}, fmt.Errorf("s.guestRepo.Update -> %w", err)
		}
	}

	return created, nil
}

func (s *InvitationService) GetByToken(ctx context.Context, token string) (domain.Invitation, error) {
	invitation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	return invitation, nil
}

func (s *InvitationService) GetByGuest(ctx context.Context, guestID uint) ([]domain.Invitation, error) {
	invitations, err := s.repo.FindByGuest(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByGuest -> %w", err)
	}

	return invitations, nil
}

func (s *InvitationService) MarkSent(ctx context.Context, token string) (domain.Invitation, error) {
	invitation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	now := time.Now().UTC()
	invitation.Status = domain.InvitationSent
	invitation.SentAt = &now

	updated, err := s.repo.Update(ctx, invitation)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *InvitationService) MarkOpened(ctx context.Context, token string) (domain.Invitation, error) {
	invitation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	if invitation.OpenedAt == nil {
		now := time.Now().UTC()
		invitation.Status = domain.InvitationOpened
		invitation.OpenedAt = &now

		invitation, err = s.repo.Update(ctx, invitation)
		if err != nil {
			return domain.Invitation{}, fmt.Errorf("s.repo.Update -> %w", err)
		}
	}

	return invitation, nil
}

// CheckInURL is the URL encoded into the invitation QR code.
func (s *InvitationService) CheckInURL(token string) string {
	return fmt.Sprintf("%s/api/v1/invitations/%s/checkin", s.baseURL, token)
}

// QRCodePNG renders the invitation's check-in URL as a PNG QR code.
func (s *InvitationService) QRCodePNG(ctx context.Context, token string, size int) ([]byte, error) {
	invitation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(s.CheckInURL(invitation.Token), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}
