// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-dedup-backend/internal/domain"
)

// RecordStats returns aggregate metadata for a chat's dedup records: the
// total number of rows and the greatest recorded_at value among them.
//
// It executes two lightweight queries against message_records scoped to the
// provided chatID. When the chat has no records, the returned count is 0
// and maxRecordedAt is "".
//
// Return values:
//   - count:         total records for chatID
//   - maxRecordedAt: greatest recorded_at (civil storage format), or ""
//   - err:           database error, if any
func RecordStats(ctx context.Context, db *gorm.DB, chatID int64) (count int64, maxRecordedAt string, err error) {
	q := db.WithContext(ctx).Model(&domain.MessageRecord{}).Where("chat_id = ?", chatID)

	if err = q.Count(&count).Error; err != nil {
		return 0, "", err
	}
	if count == 0 {
		return 0, "", nil
	}

	var row struct {
		RecordedAt string
	}
	if err = q.Select("recorded_at").Order("recorded_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, "", err
	}
	return count, row.RecordedAt, nil
}
