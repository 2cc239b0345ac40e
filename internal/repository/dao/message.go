package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type Message struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	Kind      string `gorm:"not null;default:invitation"`
	Subject   string `gorm:"not null"`
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{
		db: db,
	}
}

func (d *MessageDAO) Insert(ctx context.Context, message Message) (Message, error) {
	result := d.db.WithContext(ctx).Create(&message)
	if result.Error != nil {
		return Message{}, result.Error
	}

	return message, nil
}

func (d *MessageDAO) FindByID(ctx context.Context, id uint) (Message, error) {
	var message Message

	result := d.db.WithContext(ctx).First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Message{}, ErrMessageNotFound
		}

		return Message{}, result.Error
	}

	return message, nil
}

func (d *MessageDAO) FindByEventID(ctx context.Context, eventID uint) ([]Message, error) {
	var messages []Message

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id ASC").Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

func (d *MessageDAO) Update(ctx context.Context, message Message) (Message, error) {
	result := d.db.WithContext(ctx).Save(&message)
	if result.Error != nil {
		return Message{}, result.Error
	}

	return message, nil
}

func (d *MessageDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Message{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
