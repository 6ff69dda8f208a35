// Package domain defines the persistence models for the deduplication
// store. These types are mapped with GORM and form the core data layer
// of the duplicate-message backend.
package domain

// MessageRecord is the live dedup row for a (chat, fingerprint) pair:
// the first-seen instance of a piece of normalized message content within
// a group chat. At most one row exists per (ChatID, Fingerprint) at any
// instant; re-posts after the dedup window expires replace the row in full.
//
// Fields:
//   - ID: auto-increment surrogate key.
//   - ChatID: group chat scope; dedup never crosses chats.
//   - Fingerprint: 32-char hex digest of the normalized message text.
//   - OriginalText: verbatim text of the stored instance.
//   - AuthorID: sender of the stored instance.
//   - AuthorName: sender display name at storage time; defaults to
//     "Unknown" so databases written before the column existed still load.
//   - RecordedAt: civil timestamp string ("2006-01-02 15:04:05") in the
//     configured local timezone. The column type must stay TEXT: a
//     datetime-flavored declared type makes the sqlite driver parse the
//     stored string into a time.Time on scan, which mangles the value.
//     The value is a naive local timestamp, never UTC-normalized, and the
//     fixed format makes string comparison chronological.
type MessageRecord struct {
	ID           uint   `json:"-"             gorm:"primaryKey;autoIncrement"`
	ChatID       int64  `json:"chat_id"       gorm:"not null;uniqueIndex:ux_chat_fingerprint,priority:1"`
	Fingerprint  string `json:"fingerprint"   gorm:"type:char(32);not null;uniqueIndex:ux_chat_fingerprint,priority:2"`
	OriginalText string `json:"original_text" gorm:"type:text;not null"`
	AuthorID     int64  `json:"author_id"     gorm:"not null"`
	AuthorName   string `json:"author_name"   gorm:"type:varchar(255);not null;default:'Unknown'"`
	RecordedAt   string `json:"recorded_at"   gorm:"type:TEXT;not null;index"`
}

// TableName returns the database table name for MessageRecord.
func (MessageRecord) TableName() string { return "message_records" }
