package dao

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrGuestNotFound = errors.New("guest not found")

// ScanHistory is stored as a jsonb column, newest entries first.
type ScanHistory []ScanEntry

type ScanEntry struct {
	ScannedAt time.Time `json:"scanned_at"`
	Station   string    `json:"station,omitempty"`
}

func (h ScanHistory) Value() (driver.Value, error) {
	if len(h) == 0 {
		return "[]", nil
	}

	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}

	return string(data), nil
}

func (h *ScanHistory) Scan(value any) error {
	if value == nil {
		*h = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("unsupported scan history type %T", value)
	}
}

// GuestMetadata is stored as a jsonb column.
type GuestMetadata struct {
	Category            string `json:"category,omitempty"`
	TableNumber         string `json:"table_number,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
	InvitationSent      bool   `json:"invitation_sent"`
	Confirmed           bool   `json:"confirmed"`
}

func (m GuestMetadata) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	return string(data), nil
}

func (m *GuestMetadata) Scan(value any) error {
	if value == nil {
		*m = GuestMetadata{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported guest metadata type %T", value)
	}
}

type Guest struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	FirstName string
	LastName  string
	Email     string `gorm:"index"`
	Phone     string
	Company   string
	Notes     string
	Seats     int           `gorm:"not null;default:1"`
	Status    string        `gorm:"not null;default:pending"`
	Scanned   bool          `gorm:"not null;default:false"`
	ScanCount int           `gorm:"not null;default:0"`
	History   ScanHistory   `gorm:"column:scan_history;type:jsonb"`
	Metadata  GuestMetadata `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type GuestDAO struct {
	db *gorm.DB
}

func NewGuestDAO(db *gorm.DB) *GuestDAO {
	return &GuestDAO{
		db: db,
	}
}

func (d *GuestDAO) Insert(ctx context.Context, guest Guest) (Guest, error) {
	result := d.db.WithContext(ctx).Create(&guest)
	if result.Error != nil {
		return Guest{}, result.Error
	}

	return guest, nil
}

func (d *GuestDAO) FindByID(ctx context.Context, id uint) (Guest, error) {
	var guest Guest

	result := d.db.WithContext(ctx).First(&guest, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Guest{}, ErrGuestNotFound
		}

		return Guest{}, result.Error
	}

	return guest, nil
}

func (d *GuestDAO) FindByEventID(ctx context.Context, eventID uint, status string) ([]Guest, error) {
	var guests []Guest

	query := d.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("id ASC").Find(&guests)
	if result.Error != nil {
		return nil, result.Error
	}

	return guests, nil
}

func (d *GuestDAO) FindByEventIDAndEmail(ctx context.Context, eventID uint, email string) (Guest, error) {
	var guest Guest

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND LOWER(email) = LOWER(?)", eventID, email).
		First(&guest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Guest{}, ErrGuestNotFound
		}

		return Guest{}, result.Error
	}

	return guest, nil
}

func (d *GuestDAO) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Guest{}).Where("event_id = ?", eventID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *GuestDAO) Update(ctx context.Context, guest Guest) (Guest, error) {
	result := d.db.WithContext(ctx).Save(&guest)
	if result.Error != nil {
		return Guest{}, result.Error
	}

	return guest, nil
}

func (d *GuestDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Guest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuestNotFound
	}

	return nil
}

// GuestAggregate mirrors domain.EventStats at the storage level.
type GuestAggregate struct {
	Total      int64
	Pending    int64
	Confirmed  int64
	Cancelled  int64
	Scanned    int64
	TotalSeats int64
}

func (d *GuestDAO) AggregateByEventID(ctx context.Context, eventID uint) (GuestAggregate, error) {
	var agg GuestAggregate

	result := d.db.WithContext(ctx).Model(&Guest{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE scanned) AS scanned,
			COALESCE(SUM(seats), 0) AS total_seats`).
		Where("event_id = ?", eventID).
		Scan(&agg)
	if result.Error != nil {
		return GuestAggregate{}, result.Error
	}

	return agg, nil
}
