// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the
// ProcessedDelivery model used to short-circuit webhook redeliveries.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-dedup-backend/internal/domain"
)

// ErrDuplicate indicates that a delivery record already exists for the
// given (chat_id, delivery_id) pair.
var ErrDuplicate = errors.New("duplicate")

// GetDelivery returns a non-expired record or ErrNotFound.
func GetDelivery(ctx context.Context, db *gorm.DB, chatID int64, deliveryID string, now time.Time) (*domain.ProcessedDelivery, error) {
	if strings.TrimSpace(deliveryID) == "" {
		return nil, ErrNotFound
	}
	var rec domain.ProcessedDelivery
	err := db.WithContext(ctx).
		Where("chat_id = ? AND delivery_id = ? AND expires_at > ?", chatID, deliveryID, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// HasDelivery reports whether any chat holds a non-expired record for
// deliveryID. Delivery IDs are unique per source, so this coarse check is
// what the transport middleware uses before the body (and with it the chat
// scope) has been parsed.
func HasDelivery(ctx context.Context, db *gorm.DB, deliveryID string, now time.Time) (bool, error) {
	if strings.TrimSpace(deliveryID) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ProcessedDelivery{}).
		Where("delivery_id = ? AND expires_at > ?", deliveryID, now).
		Count(&n).Error
	return n > 0, err
}

// CreateDelivery inserts a record and returns ErrDuplicate on unique
// violation. The caller supplies now; the repo layer never reads the wall
// clock itself, so expiry behavior stays testable with a fixed instant.
func CreateDelivery(ctx context.Context, db *gorm.DB, chatID int64, deliveryID, outcome string, now time.Time, ttl time.Duration) (*domain.ProcessedDelivery, error) {
	rec := &domain.ProcessedDelivery{
		ID:         uuid.NewString(),
		ChatID:     chatID,
		DeliveryID: deliveryID,
		Outcome:    outcome,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
