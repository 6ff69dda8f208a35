package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-dedup-backend/internal/domain"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "app.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasTable(&domain.MessageRecord{}) || !m.HasTable(&domain.ProcessedDelivery{}) {
		t.Fatalf("expected tables after migration")
	}
}

func TestAutoMigrate_LegacySchemaGainsAuthorName(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "legacy.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	// Shape of the table before the author_name column existed.
	if err := db.Exec(`CREATE TABLE message_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		original_text TEXT NOT NULL,
		author_id INTEGER NOT NULL,
		recorded_at DATETIME NOT NULL,
		UNIQUE(chat_id, fingerprint)
	)`).Error; err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if err := db.Exec(`INSERT INTO message_records (chat_id, fingerprint, original_text, author_id, recorded_at)
		VALUES (1, '5eb63bbbe01eeed093cb22bb8f5acdc3', 'hello world', 7, '2026-02-22 10:21:23')`).Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate on legacy schema: %v", err)
	}

	// The old row survives and reads back with the sentinel name.
	rec, err := FindLiveRecord(context.Background(), db, 1, "5eb63bbbe01eeed093cb22bb8f5acdc3", "2026-02-22 00:00:00")
	if err != nil {
		t.Fatalf("lookup after migration: %v", err)
	}
	if rec.AuthorName != "Unknown" {
		t.Fatalf("AuthorName = %q; want %q", rec.AuthorName, "Unknown")
	}
	if rec.OriginalText != "hello world" || rec.AuthorID != 7 {
		t.Fatalf("legacy fields damaged: %+v", rec)
	}

	// Running the migration again is a no-op.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("second automigrate: %v", err)
	}

	// The inline unique constraint still guards (chat_id, fingerprint).
	err = db.Exec(`INSERT INTO message_records (chat_id, fingerprint, original_text, author_id, recorded_at)
		VALUES (1, '5eb63bbbe01eeed093cb22bb8f5acdc3', 'hello world again', 8, '2026-02-22 11:00:00')`).Error
	if err == nil {
		t.Fatalf("duplicate (chat_id, fingerprint) insert succeeded on migrated legacy table")
	}
}
