package timeutil

import (
	"testing"
	"time"
)

func TestNewClock_UnknownZone(t *testing.T) {
	if _, err := NewClock("Not/AZone"); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestNow_InConfiguredZone(t *testing.T) {
	c, err := NewClock(DefaultTimezone)
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	fixed := time.Date(2026, 2, 22, 3, 21, 23, 0, time.UTC)
	c.SetNowFunc(func() time.Time { return fixed })

	got := c.Now()
	if got.Location().String() != DefaultTimezone {
		t.Fatalf("Now() zone = %v; want %v", got.Location(), DefaultTimezone)
	}
	// Jakarta is UTC+7 year-round (no DST).
	if got.Hour() != 10 || got.Minute() != 21 || got.Second() != 23 {
		t.Fatalf("Now() = %v; want 10:21:23 local", got)
	}
}

func TestFormats(t *testing.T) {
	c, err := NewClock(DefaultTimezone)
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	ts := time.Date(2026, 2, 22, 10, 21, 23, 0, c.Location())

	if got := c.FormatStorage(ts); got != "2026-02-22 10:21:23" {
		t.Fatalf("FormatStorage = %q", got)
	}
	if got := c.FormatDisplay(ts); got != "2026/02/22 10:21:23" {
		t.Fatalf("FormatDisplay = %q", got)
	}
}

func TestParseStored_NoUTCConversion(t *testing.T) {
	c, err := NewClock(DefaultTimezone)
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}

	got, err := c.ParseStored("2026-02-22 10:21:23")
	if err != nil {
		t.Fatalf("ParseStored: %v", err)
	}
	// The stored value is a naive local timestamp: parsing must keep the
	// wall-clock fields and attach the configured zone.
	if got.Hour() != 10 || got.Location().String() != DefaultTimezone {
		t.Fatalf("ParseStored = %v; want 10:21:23 in %s", got, DefaultTimezone)
	}
	if got.Format(StorageLayout) != "2026-02-22 10:21:23" {
		t.Fatalf("round trip = %q", got.Format(StorageLayout))
	}

	if _, err := c.ParseStored("2026/02/22 10:21:23"); err == nil {
		t.Fatalf("expected error for display-format input")
	}
}

func TestStorageLayout_SortsChronologically(t *testing.T) {
	// The repository compares recorded_at strings directly; the storage
	// layout must order the same way the instants do.
	a := "2026-02-22 10:21:23"
	b := "2026-02-23 09:00:00"
	if !(a < b) {
		t.Fatalf("expected %q < %q", a, b)
	}
}
