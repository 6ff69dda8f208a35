// Package timeutil provides civil-time handling for the dedup store.
//
// All timestamps in this system are "civil" timestamps: wall-clock values
// in one configured IANA zone (Asia/Jakarta by default), persisted as
// naive local strings and never converted to or from UTC. The storage
// format sorts chronologically under plain string comparison, which the
// repository layer relies on for windowed queries and eviction.
package timeutil

import "time"

const (
	// StorageLayout is the format persisted in message_records.recorded_at.
	StorageLayout = "2006-01-02 15:04:05"
	// DisplayLayout is the format shown to chat participants in notices.
	DisplayLayout = "2006/01/02 15:04:05"

	// DefaultTimezone is the civil zone used when none is configured.
	DefaultTimezone = "Asia/Jakarta"
)

// Clock produces and renders civil timestamps in a fixed zone.
// The zero value is not usable; construct with NewClock.
type Clock struct {
	loc *time.Location

	// nowFn is a test seam; defaults to time.Now.
	nowFn func() time.Time
}

// NewClock returns a Clock bound to the named IANA timezone.
func NewClock(tz string) (*Clock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc, nowFn: time.Now}, nil
}

// Location exposes the configured zone.
func (c *Clock) Location() *time.Location { return c.loc }

// Now returns the current instant expressed in the configured zone.
func (c *Clock) Now() time.Time {
	return c.nowFn().In(c.loc)
}

// FormatStorage renders t in the persisted civil format.
func (c *Clock) FormatStorage(t time.Time) string {
	return t.In(c.loc).Format(StorageLayout)
}

// FormatDisplay renders t in the user-facing civil format.
func (c *Clock) FormatDisplay(t time.Time) string {
	return t.In(c.loc).Format(DisplayLayout)
}

// ParseStored reads a persisted civil timestamp. The value is interpreted
// as already being in the configured zone; no UTC conversion happens.
func (c *Clock) ParseStored(s string) (time.Time, error) {
	return time.ParseInLocation(StorageLayout, s, c.loc)
}

// SetNowFunc overrides the time source (tests only).
func (c *Clock) SetNowFunc(fn func() time.Time) { c.nowFn = fn }
