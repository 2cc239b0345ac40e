package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationTokenExists = errors.New("invitation token already exists")
)

type Invitation struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	GuestID   uint   `gorm:"not null;index"`
	Token     string `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"not null;default:created"`
	SentAt    *time.Time
	OpenedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvitationDAO struct {
	db *gorm.DB
}

func NewInvitationDAO(db *gorm.DB) *InvitationDAO {
	return &InvitationDAO{
		db: db,
	}
}

func (d *InvitationDAO) Insert(ctx context.Context, invitation Invitation) (Invitation, error) {
	result := d.db.WithContext(ctx).Create(&invitation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "token") {
			return Invitation{}, ErrInvitationTokenExists
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByToken(ctx context.Context, token string) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).First(&invitation, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByGuestID(ctx context.Context, guestID uint) ([]Invitation, error) {
	var invitations []Invitation

	result := d.db.WithContext(ctx).Where("guest_id = ?", guestID).Order("id ASC").Find(&invitations)
	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

func (d *InvitationDAO) Update(ctx context.Context, invitation Invitation) (Invitation, error) {
	result := d.db.WithContext(ctx).Save(&invitation)
	if result.Error != nil {
		return Invitation{}, result.Error
	}

	return invitation, nil
}
