// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// MessageRecord model: windowed lookup, conflict-replacing upsert, and
// age-based eviction.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When no live record matches, FindLiveRecord returns ErrNotFound.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Timestamps: recorded_at holds civil-time strings in the fixed storage
// layout ("2006-01-02 15:04:05"), so plain string comparison in WHERE
// clauses is chronological. Callers pass window/horizon bounds already
// formatted by timeutil.Clock.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-dedup-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
//
// It aliases gorm.ErrRecordNotFound so both sentinel checks work.
var ErrNotFound = gorm.ErrRecordNotFound

// FindLiveRecord returns the record for (chatID, fingerprint) only when its
// recorded_at is strictly after windowStart. A stale row (older than the
// dedup window) is ignored, not deleted; eviction is a separate concern.
func FindLiveRecord(ctx context.Context, db *gorm.DB, chatID int64, fingerprint, windowStart string) (*domain.MessageRecord, error) {
	var rec domain.MessageRecord
	err := db.WithContext(ctx).
		Where("chat_id = ? AND fingerprint = ? AND recorded_at > ?", chatID, fingerprint, windowStart).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpsertRecord inserts the record or replaces the existing row for the same
// (chat_id, fingerprint) key in full, including recorded_at. The conflict
// clause rides SQLite's native upsert path, so concurrent upserts on one
// key leave exactly one winner.
func UpsertRecord(ctx context.Context, db *gorm.DB, rec *domain.MessageRecord) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "chat_id"}, {Name: "fingerprint"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"original_text", "author_id", "author_name", "recorded_at",
			}),
		}).
		Create(rec).Error
}

// EvictRecordsBefore permanently deletes every record, across all chats,
// whose recorded_at is before horizon. Returns the number of rows removed.
func EvictRecordsBefore(ctx context.Context, db *gorm.DB, horizon string) (int64, error) {
	res := db.WithContext(ctx).
		Where("recorded_at < ?", horizon).
		Delete(&domain.MessageRecord{})
	return res.RowsAffected, res.Error
}

// CountRecords returns the number of records stored for a chat (live and
// stale alike), for pagination of the listing endpoint.
func CountRecords(ctx context.Context, db *gorm.DB, chatID int64) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.MessageRecord{}).
		Where("chat_id = ?", chatID).
		Count(&total).Error
	return total, err
}

// ListRecordsPage returns a page of a chat's records ordered newest first
// (RecordedAt DESC, ID DESC for a deterministic tiebreak).
func ListRecordsPage(ctx context.Context, db *gorm.DB, chatID int64, offset, limit int) ([]domain.MessageRecord, error) {
	var out []domain.MessageRecord
	err := db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("recorded_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
