// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-dedup-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// EnableTracing attaches the GORM OpenTelemetry plugin so store operations
// show up as spans under the HTTP request trace.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate applies the schema migrations. message_records needs special
// handling for databases written by the earlier store version; the backfill
// at the end pins any author_name NULLs left behind by pre-column writers.
func AutoMigrate(db *gorm.DB) error {
	if err := migrateMessageRecords(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(&domain.ProcessedDelivery{}); err != nil {
		return err
	}
	return db.Exec(`UPDATE message_records SET author_name = 'Unknown' WHERE author_name IS NULL`).Error
}

// migrateMessageRecords reconciles the message_records table. Tables created
// by this store carry the named ux_chat_fingerprint index and can be handed
// to GORM's migrator. Legacy tables instead declare an inline
// UNIQUE(chat_id, fingerprint) constraint, which the sqlite migrator's
// table rebuild cannot reproduce (it fails mid-rebuild), so those only ever
// receive additive changes: the author_name column and the recorded_at
// index, mirroring the original store's own ALTER-based migration.
func migrateMessageRecords(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&domain.MessageRecord{}) || m.HasIndex(&domain.MessageRecord{}, "ux_chat_fingerprint") {
		return db.AutoMigrate(&domain.MessageRecord{})
	}
	if !m.HasColumn(&domain.MessageRecord{}, "author_name") {
		if err := db.Exec(`ALTER TABLE message_records ADD COLUMN author_name varchar(255) NOT NULL DEFAULT 'Unknown'`).Error; err != nil {
			return err
		}
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_message_records_recorded_at ON message_records(recorded_at)`).Error
}

// Close flushes and closes the underlying connection pool. Committed writes
// are durable before this returns; in-flight uncommitted work is abandoned.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
